package dto

// StudentLoginRequest is the login payload for students.
type StudentLoginRequest struct {
	RollNumber string `json:"rollNumber" binding:"required" example:"S100"`
	Password   string `json:"password" binding:"required"`
}

// TeacherLoginRequest is the login payload for teachers and admins.
type TeacherLoginRequest struct {
	Username string `json:"username" binding:"required" example:"profsmith"`
	Password string `json:"password" binding:"required"`
}

// RegisterStudentRequest creates a new student account.
type RegisterStudentRequest struct {
	RollNumber string `json:"rollNumber" binding:"required,max=20" example:"S100"`
	Password   string `json:"password" binding:"required,min=8"`
}

// RegisterTeacherRequest provisions a new teacher account. Admin only.
type RegisterTeacherRequest struct {
	Username   string `json:"username" binding:"required,max=30" example:"profsmith"`
	RollNumber string `json:"rollNumber" binding:"required,max=20" example:"T-0042"`
	Password   string `json:"password" binding:"required,min=8"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse is returned after a successful login, register or refresh.
type TokenResponse struct {
	AccessToken      string      `json:"accessToken"`
	RefreshToken     string      `json:"refreshToken"`
	ExpiresIn        int         `json:"expiresIn"`        // Seconds
	RefreshExpiresIn int         `json:"refreshExpiresIn"` // Seconds
	User             UserProfile `json:"user"`
}

// UserProfile is the public view of an identity.
type UserProfile struct {
	ID          int64   `json:"id"`
	RollNumber  string  `json:"rollNumber"`
	Username    *string `json:"username,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"isActive"`
	DateJoined  string  `json:"dateJoined"`
	LastLoginAt *string `json:"lastLoginAt,omitempty"`
}
