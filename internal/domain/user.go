package domain

import (
	"context"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid username or password"}
)

// Profile holds the shipping defaults used to prefill the checkout form.
type Profile struct {
	FirstName  string `json:"first_name" validate:"max=50"`
	LastName   string `json:"last_name" validate:"max=50"`
	Address    string `json:"address" validate:"max=250"`
	City       string `json:"city" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Phone      string `json:"phone" validate:"max=20"`
}

// Account is the full user record as seen by the user themselves.
type Account struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     string
	Profile  Profile
}

// SignupInput carries the registration fields.
type SignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Credentials is a username/password pair.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserService provides registration, authentication and web sessions.
type UserService interface {
	// Signup creates a user account. Duplicate usernames and emails are
	// conflicts surfaced as field-level validation errors.
	Signup(ctx context.Context, in SignupInput) (*Account, error)

	// Login verifies credentials and binds a fresh session to the user.
	// The previous anonymous session, if any, stays untouched so its cart
	// can still be merged by the caller.
	Login(ctx context.Context, creds Credentials) (*Account, *Session, error)

	// Logout deletes the session in ctx.
	Logout(ctx context.Context) error

	// EnsureSession returns the session in ctx, creating a new anonymous
	// session when there is none. The second return reports creation, so
	// handlers know to set the cookie.
	EnsureSession(ctx context.Context) (*Session, bool, error)

	// ResolveSession loads the session for a cookie token along with the
	// bound user, if any. Expired or unknown tokens yield ErrSessionNotFound.
	ResolveSession(ctx context.Context, token string) (*Session, *User, error)

	// GetUser loads the minimal user record by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	// GetAccount loads the caller's full account record.
	GetAccount(ctx context.Context) (*Account, error)

	// UpdateProfile overwrites the caller's shipping defaults.
	UpdateProfile(ctx context.Context, p Profile) (*Account, error)
}

// TokenPair is the credential-exchange result for API clients.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and rotates bearer tokens for the API surface.
type TokenService interface {
	// Issue exchanges credentials for an access/refresh pair.
	Issue(ctx context.Context, creds Credentials) (*TokenPair, error)

	// Refresh rotates a refresh token, returning a new pair and revoking
	// the old refresh token.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Revoke invalidates a refresh token (logout).
	Revoke(ctx context.Context, refreshToken string) error
}
