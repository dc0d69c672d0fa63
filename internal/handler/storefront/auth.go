package storefront

import (
	"log/slog"
	"net/http"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
	"github.com/mlindgren/vitrine/internal/middleware"
)

// AuthHandler handles signup, login and logout for the web surface.
type AuthHandler struct {
	users    domain.UserService
	cart     domain.CartService
	renderer *handler.Renderer
	secure   bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users domain.UserService, cart domain.CartService, renderer *handler.Renderer, secure bool) *AuthHandler {
	return &AuthHandler{users: users, cart: cart, renderer: renderer, secure: secure}
}

// ShowSignup handles GET /signup
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	data := baseData(r.Context(), h.cart)
	data["Form"] = domain.SignupInput{}
	h.renderer.RenderHTTP(w, "signup", data)
}

// Signup handles POST /signup. A successful signup logs the new user in and
// merges any anonymous cart they built up before registering.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	in := domain.SignupInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if _, err := h.users.Signup(r.Context(), in); err != nil {
		data := baseData(r.Context(), h.cart)
		data["Form"] = in
		data["Errors"] = validationErrors(err)
		h.renderer.RenderHTTP(w, "signup", data)
		return
	}

	h.establishSession(w, r, domain.Credentials{Username: in.Username, Password: in.Password}, "/products")
}

// ShowLogin handles GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	data := baseData(r.Context(), h.cart)
	data["ReturnTo"] = r.URL.Query().Get("return_to")
	h.renderer.RenderHTTP(w, "login", data)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	creds := domain.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	returnTo := r.URL.Query().Get("return_to")
	if returnTo == "" || returnTo[0] != '/' {
		returnTo = "/products"
	}

	h.establishSession(w, r, creds, returnTo)
}

// establishSession authenticates, merges the anonymous cart into the user's
// persisted cart, retires the anonymous session and hands out the new
// session cookie.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, creds domain.Credentials, returnTo string) {
	ctx := r.Context()

	account, session, err := h.users.Login(ctx, creds)
	if err != nil {
		data := baseData(ctx, h.cart)
		data["ReturnTo"] = returnTo
		data["Errors"] = validationErrors(err)
		h.renderer.RenderHTTP(w, "login", data)
		return
	}

	user := &domain.User{ID: account.ID, Username: account.Username, Email: account.Email, Role: account.Role}

	// Merge runs against the old anonymous session still present in ctx. A
	// failed merge loses a guest cart but never blocks the login.
	if domain.SessionFromContext(ctx) != nil {
		mergeCtx := domain.NewContextWithUser(ctx, user)
		if err := h.cart.MergeSessionCart(mergeCtx); err != nil {
			middleware.GetLogger(ctx).Warn("cart merge failed", slog.String("error", err.Error()))
		}
		if err := h.users.Logout(ctx); err != nil {
			middleware.GetLogger(ctx).Warn("failed to retire anonymous session", slog.String("error", err.Error()))
		}
	}

	SetSessionCookie(w, session.Token, h.secure)
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context()); err != nil {
		middleware.GetLogger(r.Context()).Warn("logout failed", slog.String("error", err.Error()))
	}
	ClearSessionCookie(w, h.secure)
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

// validationErrors flattens an error into the field map the form templates
// expect.
func validationErrors(err error) map[string]string {
	if fields := domain.GetValidationFields(err); fields != nil {
		return fields
	}
	return map[string]string{"form": domain.ErrorMessage(err)}
}
