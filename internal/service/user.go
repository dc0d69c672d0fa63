package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mlindgren/vitrine/internal/auth"
	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

type userService struct {
	repo       repository.Querier
	sessionTTL time.Duration
}

// NewUserService creates a new UserService instance
func NewUserService(repo repository.Querier, sessionTTL time.Duration) domain.UserService {
	return &userService{repo: repo, sessionTTL: sessionTTL}
}

func toAccount(row repository.User) *domain.Account {
	return &domain.Account{
		ID:       repository.FromPgUUID(row.ID),
		Username: row.Username,
		Email:    row.Email,
		Role:     row.Role,
		Profile: domain.Profile{
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Address:    row.Address,
			City:       row.City,
			PostalCode: row.PostalCode,
			Phone:      row.Phone,
		},
	}
}

func toUser(row repository.User) *domain.User {
	return &domain.User{
		ID:       repository.FromPgUUID(row.ID),
		Username: row.Username,
		Email:    row.Email,
		Role:     row.Role,
	}
}

func (s *userService) Signup(ctx context.Context, in domain.SignupInput) (*domain.Account, error) {
	const op = "user.signup"

	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	// Duplicates surface as field errors so signup forms can point at the
	// offending input.
	if _, err := s.repo.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, domain.NewValidationError(op, "username", "This username is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Internal(err, op, "failed to check username")
	}
	if _, err := s.repo.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, domain.NewValidationError(op, "email", "This email is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.Internal(err, op, "failed to check email")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.NewValidationError(op, "password", "Must be at least 8 characters")
		}
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	row, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create user")
	}

	return toAccount(row), nil
}

// createSession inserts a fresh session row, optionally bound to a user.
func (s *userService) createSession(ctx context.Context, op string, userID pgtype.UUID) (*domain.Session, error) {
	token, err := GenerateSessionID()
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate session token")
	}

	row, err := s.repo.CreateSession(ctx, repository.CreateSessionParams{
		Token:     token,
		UserID:    userID,
		Data:      []byte(`{}`),
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(s.sessionTTL), Valid: true},
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create session")
	}

	return &domain.Session{ID: repository.FromPgUUID(row.ID), Token: row.Token}, nil
}

func (s *userService) Login(ctx context.Context, creds domain.Credentials) (*domain.Account, *domain.Session, error) {
	const op = "user.login"

	if err := validateStruct(op, creds); err != nil {
		return nil, nil, err
	}

	row, err := s.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, domain.Internal(err, op, "failed to load user")
	}

	if err := auth.VerifyPassword(creds.Password, row.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, domain.Internal(err, op, "failed to verify password")
	}

	// A fresh session is bound to the user. The caller's previous anonymous
	// session is left alone so its cart can still be merged.
	session, err := s.createSession(ctx, op, row.ID)
	if err != nil {
		return nil, nil, err
	}

	return toAccount(row), session, nil
}

func (s *userService) Logout(ctx context.Context) error {
	const op = "user.logout"

	sess := domain.SessionFromContext(ctx)
	if sess == nil {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, repository.PgUUID(sess.ID)); err != nil {
		return domain.Internal(err, op, "failed to delete session")
	}
	return nil
}

func (s *userService) EnsureSession(ctx context.Context) (*domain.Session, bool, error) {
	const op = "user.ensure_session"

	if sess := domain.SessionFromContext(ctx); sess != nil {
		return sess, false, nil
	}

	session, err := s.createSession(ctx, op, pgtype.UUID{})
	if err != nil {
		return nil, false, err
	}
	return session, true, nil
}

func (s *userService) ResolveSession(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	const op = "user.resolve_session"

	row, err := s.repo.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, domain.ErrSessionNotFound
		}
		return nil, nil, domain.Internal(err, op, "failed to load session")
	}

	session := &domain.Session{ID: repository.FromPgUUID(row.ID), Token: row.Token}
	if !row.UserID.Valid {
		return session, nil, nil
	}

	userRow, err := s.repo.GetUserByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The user was deleted out from under the session.
			return session, nil, nil
		}
		return nil, nil, domain.Internal(err, op, "failed to load user")
	}

	return session, toUser(userRow), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "user.get"

	row, err := s.repo.GetUserByID(ctx, repository.PgUUID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}
	return toUser(row), nil
}

func (s *userService) GetAccount(ctx context.Context) (*domain.Account, error) {
	const op = "user.get_account"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized(op, "Authentication required")
	}

	row, err := s.repo.GetUserByID(ctx, repository.PgUUID(user.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}
	return toAccount(row), nil
}

func (s *userService) UpdateProfile(ctx context.Context, p domain.Profile) (*domain.Account, error) {
	const op = "user.update_profile"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized(op, "Authentication required")
	}
	if err := validateStruct(op, p); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateUserProfile(ctx, repository.UpdateUserProfileParams{
		ID:         repository.PgUUID(user.ID),
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
		Phone:      p.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, op, "failed to update profile")
	}
	return toAccount(row), nil
}
