package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mlindgren/vitrine/internal/auth"
	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

var errRefreshInvalid = domain.Unauthorized("token.refresh", "Refresh token is invalid or expired")

type tokenService struct {
	repo       repository.Querier
	tokens     *auth.TokenManager
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService instance
func NewTokenService(repo repository.Querier, tokens *auth.TokenManager, refreshTTL time.Duration) domain.TokenService {
	return &tokenService{repo: repo, tokens: tokens, refreshTTL: refreshTTL}
}

// issuePair signs an access token and mints a fresh refresh token whose hash
// is persisted. The plaintext refresh token exists only in the response.
func (s *tokenService) issuePair(ctx context.Context, op string, user repository.User) (*domain.TokenPair, error) {
	access, err := s.tokens.Sign(repository.FromPgUUID(user.ID), user.Role)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to sign access token")
	}

	refresh, err := auth.NewRefreshToken()
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate refresh token")
	}

	_, err = s.repo.CreateRefreshToken(ctx, repository.CreateRefreshTokenParams{
		UserID:    user.ID,
		TokenHash: auth.HashRefreshToken(refresh),
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(s.refreshTTL), Valid: true},
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to store refresh token")
	}

	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *tokenService) Issue(ctx context.Context, creds domain.Credentials) (*domain.TokenPair, error) {
	const op = "token.issue"

	if err := validateStruct(op, creds); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	if err := auth.VerifyPassword(creds.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal(err, op, "failed to verify password")
	}

	return s.issuePair(ctx, op, user)
}

// lookup resolves a plaintext refresh token to its live stored row. Revoked
// and expired tokens are rejected; a revoked token showing up again is
// treated the same as an unknown one.
func (s *tokenService) lookup(ctx context.Context, op, refreshToken string) (repository.RefreshToken, error) {
	row, err := s.repo.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.RefreshToken{}, errRefreshInvalid
		}
		return repository.RefreshToken{}, domain.Internal(err, op, "failed to load refresh token")
	}
	if row.Revoked || row.ExpiresAt.Time.Before(time.Now()) {
		return repository.RefreshToken{}, errRefreshInvalid
	}
	return row, nil
}

func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	const op = "token.refresh"

	row, err := s.lookup(ctx, op, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errRefreshInvalid
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}

	// Rotation: the presented token dies the moment a new pair is issued.
	if err := s.repo.RevokeRefreshToken(ctx, row.ID); err != nil {
		return nil, domain.Internal(err, op, "failed to revoke refresh token")
	}

	return s.issuePair(ctx, op, user)
}

func (s *tokenService) Revoke(ctx context.Context, refreshToken string) error {
	const op = "token.revoke"

	row, err := s.lookup(ctx, op, refreshToken)
	if err != nil {
		return err
	}
	if err := s.repo.RevokeRefreshToken(ctx, row.ID); err != nil {
		return domain.Internal(err, op, "failed to revoke refresh token")
	}
	return nil
}
