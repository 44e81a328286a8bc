package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
	"github.com/oguzk/noteshub/internal/pkg/auth"
)

func setupTestAuthService(t *testing.T) (*AuthService, *mockUserRepo, *mockTokenRepo) {
	t.Helper()
	userRepo := newMockUserRepo()
	tokenRepo := newMockTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "noteshub-test",
	})
	return NewAuthService(userRepo, tokenRepo, jwtService), userRepo, tokenRepo
}

func registerStudent(t *testing.T, svc *AuthService, rollNumber, password string) *dto.TokenResponse {
	t.Helper()
	resp, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		RollNumber: rollNumber,
		Password:   password,
	})
	if err != nil {
		t.Fatalf("registering student: %v", err)
	}
	return resp
}

func registerTeacher(t *testing.T, svc *AuthService, userRepo *mockUserRepo, username, password string) *dto.UserProfile {
	t.Helper()
	adminUser := admin(0)
	id, err := userRepo.Create(context.Background(), adminUser)
	if err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	adminUser.ID = id

	profile, err := svc.RegisterTeacher(context.Background(), adminUser, &dto.RegisterTeacherRequest{
		Username:   username,
		RollNumber: "T-" + username,
		Password:   password,
	})
	if err != nil {
		t.Fatalf("registering teacher: %v", err)
	}
	return profile
}

func TestRegisterStudentAndLogin(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	ctx := context.Background()

	reg := registerStudent(t, svc, "S100", "correct-horse")
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatal("registration must return a token pair")
	}
	if reg.User.Role != string(models.RoleStudent) {
		t.Errorf("want role STUDENT, got %s", reg.User.Role)
	}

	resp, err := svc.LoginStudent(ctx, &dto.StudentLoginRequest{RollNumber: "S100", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.User.RollNumber != "S100" {
		t.Errorf("want roll number S100, got %s", resp.User.RollNumber)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	ctx := context.Background()

	registerStudent(t, svc, "S100", "correct-horse")
	registerTeacher(t, svc, userRepo, "profsmith", "chalk-dust")

	cases := []struct {
		name string
		err  error
	}{
		{"unknown roll number", func() error {
			_, err := svc.LoginStudent(ctx, &dto.StudentLoginRequest{RollNumber: "S999", Password: "whatever"})
			return err
		}()},
		{"wrong password", func() error {
			_, err := svc.LoginStudent(ctx, &dto.StudentLoginRequest{RollNumber: "S100", Password: "wrong"})
			return err
		}()},
		{"teacher via student endpoint", func() error {
			_, err := svc.LoginStudent(ctx, &dto.StudentLoginRequest{RollNumber: "T-profsmith", Password: "chalk-dust"})
			return err
		}()},
		{"unknown username", func() error {
			_, err := svc.LoginTeacher(ctx, &dto.TeacherLoginRequest{Username: "nobody", Password: "whatever"})
			return err
		}()},
	}

	for _, tc := range cases {
		if !errors.Is(tc.err, apperrors.ErrInvalidCredentials) {
			t.Errorf("%s: want ErrInvalidCredentials, got %v", tc.name, tc.err)
		}
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	ctx := context.Background()

	reg := registerStudent(t, svc, "S100", "correct-horse")
	userRepo.users[reg.User.ID].IsActive = false

	_, err := svc.LoginStudent(ctx, &dto.StudentLoginRequest{RollNumber: "S100", Password: "correct-horse"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("want ErrAccountDisabled, got %v", err)
	}
}

func TestLoginRecordsLastLogin(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	ctx := context.Background()

	reg := registerStudent(t, svc, "S100", "correct-horse")
	if _, err := svc.LoginStudent(ctx, &dto.StudentLoginRequest{RollNumber: "S100", Password: "correct-horse"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if userRepo.users[reg.User.ID].LastLoginAt == nil {
		t.Error("login must stamp last login time")
	}
}

func TestRegisterStudentDuplicateRollNumber(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)

	registerStudent(t, svc, "S100", "correct-horse")
	_, err := svc.RegisterStudent(context.Background(), &dto.RegisterStudentRequest{
		RollNumber: "S100",
		Password:   "other-password",
	})
	if !errors.Is(err, apperrors.ErrRollNumberExists) {
		t.Fatalf("want ErrRollNumberExists, got %v", err)
	}
}

func TestRegisterTeacherRequiresAdmin(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	ctx := context.Background()
	req := &dto.RegisterTeacherRequest{Username: "profsmith", RollNumber: "T-1", Password: "chalk-dust"}

	if _, err := svc.RegisterTeacher(ctx, student(1), req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student provisioning teacher: want ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.RegisterTeacher(ctx, teacher(3), req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("teacher provisioning teacher: want ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.RegisterTeacher(ctx, nil, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("anonymous provisioning teacher: want ErrPermissionDenied, got %v", err)
	}
}

func TestRegisteredTeacherCanLogin(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	ctx := context.Background()

	profile := registerTeacher(t, svc, userRepo, "profsmith", "chalk-dust")
	if profile.Role != string(models.RoleTeacher) {
		t.Errorf("want role TEACHER, got %s", profile.Role)
	}

	resp, err := svc.LoginTeacher(ctx, &dto.TeacherLoginRequest{Username: "profsmith", Password: "chalk-dust"})
	if err != nil {
		t.Fatalf("teacher login failed: %v", err)
	}
	if resp.User.Username == nil || *resp.User.Username != "profsmith" {
		t.Errorf("want username profsmith in profile, got %+v", resp.User)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, tokenRepo := setupTestAuthService(t)
	ctx := context.Background()

	reg := registerStudent(t, svc, "S100", "correct-horse")

	refreshed, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Error("refresh must rotate the refresh token")
	}
	if !tokenRepo.tokens[reg.RefreshToken].isRevoked {
		t.Error("used refresh token must be revoked")
	}

	// The old token is spent.
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	if !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("reusing a spent token: want ErrTokenRevoked, got %v", err)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, _, tokenRepo := setupTestAuthService(t)
	ctx := context.Background()

	reg := registerStudent(t, svc, "S100", "correct-horse")
	tokenRepo.tokens[reg.RefreshToken].expiryDate = time.Now().Add(-time.Hour)

	_, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: reg.RefreshToken})
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)
	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "no-such-token"})
	if !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("want ErrTokenNotFound, got %v", err)
	}
}
