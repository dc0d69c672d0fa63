package storefront

import (
	"context"
	"net/http"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/middleware"
)

// SetSessionCookie sets the session cookie with appropriate security settings.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ensureSession guarantees the request has a browsing session, minting one
// and setting its cookie when the caller arrived without. The returned
// context carries the session handle.
func ensureSession(w http.ResponseWriter, r *http.Request, users domain.UserService, secure bool) (context.Context, error) {
	ctx := r.Context()
	session, created, err := users.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}
	if created {
		SetSessionCookie(w, session.Token, secure)
		ctx = domain.NewContextWithSession(ctx, session)
	}
	return ctx, nil
}

// isAsyncRequest reports whether the request came from an async fetch and
// wants a JSON response instead of a redirect.
func isAsyncRequest(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// baseData builds the template data every page shares.
func baseData(ctx context.Context, cart domain.CartService) map[string]interface{} {
	data := map[string]interface{}{
		"User": domain.UserFromContext(ctx),
	}
	if cart != nil {
		if count, err := cart.ItemCount(ctx); err == nil && count > 0 {
			data["CartCount"] = count
		}
	}
	return data
}
