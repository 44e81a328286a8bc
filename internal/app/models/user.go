package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Students are keyed
// by roll number, teachers and admins by username.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	RollNumber  string     `json:"rollNumber" db:"roll_number" example:"S100"`
	Username    *string    `json:"username,omitempty" db:"username" example:"profsmith"` // Nullable, required for teachers/admins
	Password    string     `json:"-" db:"password"`                                      // Hashed, excluded from JSON
	Role        RoleType   `json:"role" db:"role" example:"STUDENT"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	DateJoined  time.Time  `json:"dateJoined" db:"date_joined" example:"2024-01-01T10:00:00Z"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// IsTeacher reports whether the user holds teacher capabilities. Admins are
// provisioned as teaching staff and count here.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}

// IsStudent reports whether the user is a student.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsAdmin reports whether the user holds superuser privilege.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the username when present, the roll number otherwise.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.RollNumber
}
