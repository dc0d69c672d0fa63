package storefront

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// CartHandler handles all cart-related storefront routes
type CartHandler struct {
	cart     domain.CartService
	users    domain.UserService
	renderer *handler.Renderer
	secure   bool
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart domain.CartService, users domain.UserService, renderer *handler.Renderer, secure bool) *CartHandler {
	return &CartHandler{cart: cart, users: users, renderer: renderer, secure: secure}
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.cart.Summary(ctx)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	data := baseData(ctx, h.cart)
	data["Summary"] = summary

	h.renderer.RenderHTTP(w, "cart", data)
}

// Add handles POST /cart/add/{product_id}. It increments the line by one.
// Async callers get JSON; everyone else a redirect to the cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("product_id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Anonymous callers need a session row to carry the cart map.
	ctx, err := ensureSession(w, r, h.users, h.secure)
	if err != nil {
		http.Error(w, "Cart error", http.StatusInternalServerError)
		return
	}

	summary, err := h.cart.AddItem(ctx, productID, 1)
	if err != nil {
		if isAsyncRequest(r) {
			handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
				"success": false,
				"error":   domain.ErrorMessage(err),
			})
			return
		}
		if domain.IsCode(err, domain.ENOTFOUND) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if isAsyncRequest(r) {
		handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"cart_url":        "/cart",
			"cart_item_count": summary.ItemCount,
		})
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type updateItemRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// AjaxUpdate handles POST /cart/ajax/update-item. The body carries
// {item_id, quantity}; the response echoes the recalculated line subtotal
// and cart totals, or {success:false, error} on a stock violation.
func (h *CartHandler) AjaxUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	summary, err := h.cart.SetItemQuantity(ctx, req.ItemID, req.Quantity)
	if err != nil {
		handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   domain.ErrorMessage(err),
		})
		return
	}

	var itemSubtotal domain.Cents
	for _, item := range summary.Items {
		if item.ID == req.ItemID {
			itemSubtotal = item.Subtotal
			break
		}
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"item_subtotal":   itemSubtotal.String(),
		"cart_total":      summary.Total.String(),
		"cart_item_count": summary.ItemCount,
	})
}

// Remove handles POST /cart/remove/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.cart.RemoveItem(ctx, itemID); err != nil && !domain.IsCode(err, domain.ENOTFOUND) {
		http.Error(w, "Failed to remove item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Clear handles POST /cart/clear
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.cart.Clear(ctx); err != nil && !domain.IsCode(err, domain.ENOTFOUND) {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
