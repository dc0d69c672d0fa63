// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlindgren/vitrine/internal"
	"github.com/mlindgren/vitrine/internal/auth"
	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

// EnsurePrivilegedUsers creates the configured manager and staff accounts if
// they do not exist yet. Idempotent - safe to call on every startup. When a
// role's credentials are not configured the role is skipped with a warning,
// which allows running without privileged accounts in dev.
func EnsurePrivilegedUsers(ctx context.Context, repo repository.Querier, cfg internal.SeedConfig, logger *slog.Logger) error {
	seeds := []struct {
		role     string
		username string
		email    string
		password string
	}{
		{domain.RoleManager, cfg.ManagerUsername, cfg.ManagerEmail, cfg.ManagerPassword},
		{domain.RoleStaff, cfg.StaffUsername, cfg.StaffEmail, cfg.StaffPassword},
	}

	for _, seed := range seeds {
		if seed.username == "" || seed.email == "" || seed.password == "" {
			logger.Warn("bootstrap: skipping account creation - credentials not set",
				"role", seed.role,
			)
			continue
		}

		if err := ensureUser(ctx, repo, seed.role, seed.username, seed.email, seed.password, logger); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, repo repository.Querier, role, username, email, password string, logger *slog.Logger) error {
	_, err := repo.GetUserByUsername(ctx, username)
	if err == nil {
		logger.Debug("bootstrap: account already exists", "role", role, "username", username)
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("bootstrap: failed to look up %s account: %w", role, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap: invalid %s password: %w", role, err)
	}

	if _, err := repo.CreateUser(ctx, repository.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}); err != nil {
		return fmt.Errorf("bootstrap: failed to create %s account: %w", role, err)
	}

	logger.Info("bootstrap: created account", "role", role, "username", username)
	return nil
}
