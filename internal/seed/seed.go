// Package seed provisions the initial admin account. Teachers can only be
// created by an admin, so a fresh database needs one bootstrapped here.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/config"
	"github.com/oguzk/noteshub/internal/pkg/auth"
	"github.com/oguzk/noteshub/internal/pkg/logger"
)

// EnsureAdminUser creates the configured admin account if it does not exist.
// A blank admin password disables seeding.
func EnsureAdminUser(ctx context.Context, userRepo repositories.UserRepository, cfg *config.Config) error {
	if cfg.Admin.Password == "" {
		logger.Warn().Msg("Admin password not configured, skipping admin seed")
		return nil
	}

	exists, err := userRepo.UsernameExists(ctx, cfg.Admin.Username)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		logger.Debug().Str("username", cfg.Admin.Username).Msg("Admin account already present")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	username := cfg.Admin.Username
	admin := &models.User{
		RollNumber: cfg.Admin.RollNumber,
		Username:   &username,
		Password:   hashed,
		Role:       models.RoleAdmin,
		IsActive:   true,
		DateJoined: time.Now(),
	}

	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info().Int64("userID", id).Str("username", username).Msg("Seeded admin account")
	return nil
}
