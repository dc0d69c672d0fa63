package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mlindgren/vitrine/internal/auth"
	"github.com/mlindgren/vitrine/internal/domain"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	// The token is the only client-side state; everything else lives on the
	// session row.
	SessionCookieName = "vitrine_session"
)

// WithSession resolves the session cookie and attaches the session handle
// and, when the session is bound, the user to the request context.
// This middleware is optional - requests without a valid cookie continue
// anonymously.
func WithSession(users domain.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, user, err := users.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				// Unknown or expired token, continue without a session
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithSession(r.Context(), session)
			if user != nil {
				ctx = domain.NewContextWithUser(ctx, user)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the user is authenticated, redirecting to login if not
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.UserFromContext(r.Context())
		if user == nil {
			returnTo := r.URL.Path
			if r.URL.RawQuery != "" {
				returnTo += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, "/login?return_to="+url.QueryEscape(returnTo), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireStaff ensures the user holds the staff or manager role.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.UserFromContext(r.Context())
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !user.IsStaff() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BearerAuth authenticates API requests via an Authorization: Bearer header.
// Like WithSession it is optional; per-route guards reject anonymous callers.
func BearerAuth(tokens *auth.TokenManager, users domain.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			userID, _, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// The role comes from the user row, not the token claims, so a
			// role change takes effect before the token expires.
			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAPIAuth rejects unauthenticated API requests with a JSON 401.
func RequireAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.UserFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
