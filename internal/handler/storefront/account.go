package storefront

import (
	"net/http"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// AccountHandler handles the shipping-defaults profile page
type AccountHandler struct {
	users    domain.UserService
	cart     domain.CartService
	renderer *handler.Renderer
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(users domain.UserService, cart domain.CartService, renderer *handler.Renderer) *AccountHandler {
	return &AccountHandler{users: users, cart: cart, renderer: renderer}
}

// ShowProfile handles GET /account/profile
func (h *AccountHandler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account, err := h.users.GetAccount(ctx)
	if err != nil {
		http.Error(w, "Failed to load account", http.StatusInternalServerError)
		return
	}

	data := baseData(ctx, h.cart)
	data["Account"] = account

	h.renderer.RenderHTTP(w, "profile", data)
}

// UpdateProfile handles POST /account/profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	profile := domain.Profile{
		FirstName:  r.FormValue("first_name"),
		LastName:   r.FormValue("last_name"),
		Address:    r.FormValue("address"),
		City:       r.FormValue("city"),
		PostalCode: r.FormValue("postal_code"),
		Phone:      r.FormValue("phone"),
	}

	account, err := h.users.UpdateProfile(ctx, profile)
	if err != nil {
		stale, accErr := h.users.GetAccount(ctx)
		if accErr != nil {
			http.Error(w, "Failed to load account", http.StatusInternalServerError)
			return
		}
		data := baseData(ctx, h.cart)
		data["Account"] = stale
		data["Errors"] = validationErrors(err)
		h.renderer.RenderHTTP(w, "profile", data)
		return
	}

	data := baseData(ctx, h.cart)
	data["Account"] = account
	data["Messages"] = []string{"Profile updated"}

	h.renderer.RenderHTTP(w, "profile", data)
}
