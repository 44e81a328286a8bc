package services

import (
	"context"
	"time"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
	"github.com/oguzk/noteshub/internal/pkg/auth"
	"github.com/oguzk/noteshub/internal/pkg/logger"
)

// AuthService handles login, registration and token refresh.
type AuthService struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// LoginStudent authenticates a student by roll number. Unknown roll numbers,
// wrong passwords and wrong-role accounts all surface as
// apperrors.ErrInvalidCredentials.
func (s *AuthService) LoginStudent(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByRollNumber(ctx, req.RollNumber)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsStudent() {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.completeLogin(ctx, user, req.Password)
}

// LoginTeacher authenticates a teacher or admin by username. Failures are
// indistinguishable, as with student login.
func (s *AuthService) LoginTeacher(ctx context.Context, req *dto.TeacherLoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsTeacher() {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.completeLogin(ctx, user, req.Password)
}

func (s *AuthService) completeLogin(ctx context.Context, user *models.User, password string) (*dto.TokenResponse, error) {
	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	expiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, expiry); err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store refresh token")
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             NewUserProfile(user),
	}, nil
}

// RefreshToken exchanges a stored refresh token for a fresh token pair. The
// used token is revoked, so each refresh token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}

	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, req.RefreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to revoke used refresh token")
	}

	return s.issueTokens(ctx, user)
}

// RegisterStudent creates a new student account and logs it in. Open to the
// public.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.TokenResponse, error) {
	user := &models.User{
		RollNumber: req.RollNumber,
		Role:       models.RoleStudent,
		IsActive:   true,
	}

	if err := s.createUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RegisterTeacher provisions a new teacher account. The caller must be an
// admin; the authorization check lives here so every entry point enforces it.
func (s *AuthService) RegisterTeacher(ctx context.Context, caller *models.User, req *dto.RegisterTeacherRequest) (*dto.UserProfile, error) {
	if caller == nil || !caller.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}

	username := req.Username
	user := &models.User{
		RollNumber: req.RollNumber,
		Username:   &username,
		Role:       models.RoleTeacher,
		IsActive:   true,
	}

	if err := s.createUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	profile := NewUserProfile(user)
	return &profile, nil
}

// createUser hashes the password, enforces the role identifier invariant and
// inserts the user.
func (s *AuthService) createUser(ctx context.Context, user *models.User, password string) error {
	if !user.Role.Valid() {
		return apperrors.ErrInvalidRole
	}

	// Teachers and admins log in by username; it must be present for them
	// and absent for students.
	hasUsername := user.Username != nil && *user.Username != ""
	if user.IsTeacher() && !hasUsername {
		return apperrors.ErrMissingIdentifier
	}
	if user.IsStudent() && hasUsername {
		return apperrors.NewValidationError("students must not have a username")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return err
	}
	user.Password = hashed
	user.DateJoined = time.Now()

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return err
	}
	user.ID = id

	logger.Info().Int64("userID", id).Str("role", string(user.Role)).Msg("User registered")
	return nil
}

// NewUserProfile maps a user to its public profile view.
func NewUserProfile(user *models.User) dto.UserProfile {
	profile := dto.UserProfile{
		ID:         user.ID,
		RollNumber: user.RollNumber,
		Username:   user.Username,
		Role:       string(user.Role),
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined.Format(time.RFC3339),
	}
	if user.LastLoginAt != nil {
		formatted := user.LastLoginAt.Format(time.RFC3339)
		profile.LastLoginAt = &formatted
	}
	return profile
}
