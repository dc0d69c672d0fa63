package storefront

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// CheckoutHandler drives the cart-to-order transition on the web surface.
type CheckoutHandler struct {
	cart     domain.CartService
	checkout domain.CheckoutService
	orders   domain.OrderService
	users    domain.UserService
	renderer *handler.Renderer
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cart domain.CartService, checkout domain.CheckoutService, orders domain.OrderService, users domain.UserService, renderer *handler.Renderer) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, checkout: checkout, orders: orders, users: users, renderer: renderer}
}

// Page handles GET /checkout. The form is prefilled from the caller's saved
// shipping profile.
func (h *CheckoutHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.cart.Summary(ctx)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	if len(summary.Items) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	form := domain.ShippingDetails{}
	if account, err := h.users.GetAccount(ctx); err == nil {
		form = domain.ShippingDetails{
			FirstName:  account.Profile.FirstName,
			LastName:   account.Profile.LastName,
			Address:    account.Profile.Address,
			City:       account.Profile.City,
			PostalCode: account.Profile.PostalCode,
			Phone:      account.Profile.Phone,
		}
	}

	data := baseData(ctx, h.cart)
	data["Summary"] = summary
	data["Form"] = form

	h.renderer.RenderHTTP(w, "checkout", data)
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	shipping := domain.ShippingDetails{
		FirstName:  r.FormValue("first_name"),
		LastName:   r.FormValue("last_name"),
		Address:    r.FormValue("address"),
		City:       r.FormValue("city"),
		PostalCode: r.FormValue("postal_code"),
		Phone:      r.FormValue("phone"),
	}

	order, err := h.checkout.Checkout(ctx, shipping)
	if err != nil {
		if errors.Is(err, domain.ErrCartEmpty) {
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}

		summary, sumErr := h.cart.Summary(ctx)
		if sumErr != nil {
			http.Error(w, "Failed to load cart", http.StatusInternalServerError)
			return
		}

		data := baseData(ctx, h.cart)
		data["Summary"] = summary
		data["Form"] = shipping
		data["Errors"] = validationErrors(err)
		h.renderer.RenderHTTP(w, "checkout", data)
		return
	}

	http.Redirect(w, r, "/checkout/confirmation?order="+order.ID.String(), http.StatusSeeOther)
}

// Confirmation handles GET /checkout/confirmation
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := uuid.Parse(r.URL.Query().Get("order"))
	if err != nil {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	data := baseData(ctx, h.cart)
	data["Order"] = order

	h.renderer.RenderHTTP(w, "confirmation", data)
}
