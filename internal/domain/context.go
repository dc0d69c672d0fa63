// Package domain provides core business types and context helpers for Vitrine.
//
// Context helpers centralize request-scoped data access so every cart and
// checkout operation receives the caller identity and session handle
// explicitly instead of reading ambient state.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// userContextKey stores user information in context.
	userContextKey contextKey = iota

	// sessionContextKey stores the browsing-session handle in context.
	sessionContextKey

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey
)

// Roles a user can hold. Staff may manage order status; managers additionally
// manage the catalog and pending order items.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleManager  = "manager"
)

// User represents user information stored in context.
// This is a minimal struct for context storage - the full user
// record can be fetched from the database if needed.
type User struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     string
}

// IsStaff reports whether the user holds staff or manager privileges.
func (u *User) IsStaff() bool {
	return u != nil && (u.Role == RoleStaff || u.Role == RoleManager)
}

// IsManager reports whether the user holds manager privileges.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// Session is the browsing-session handle stored in context. It identifies the
// session row that carries the anonymous cart map and, after login, the
// authenticated web session.
type Session struct {
	ID    uuid.UUID
	Token string
}

// --- User context helpers ---

// NewContextWithUser returns a new context with the user attached.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user from context.
// Returns nil if no user is present.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// UserIDFromContext retrieves the user ID from context.
// Returns uuid.Nil if no user is present.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if user := UserFromContext(ctx); user != nil {
		return user.ID
	}
	return uuid.Nil
}

// IsAuthenticated returns true if there is a user in context.
func IsAuthenticated(ctx context.Context) bool {
	return UserFromContext(ctx) != nil
}

// --- Session context helpers ---

// NewContextWithSession returns a new context with the session handle attached.
func NewContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext retrieves the session handle from context.
// Returns nil if no session is present.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey).(*Session)
	return session
}

// --- Request ID context helpers ---

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
