package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// CartHandler serves /api/cart for authenticated API clients.
type CartHandler struct {
	cart domain.CartService
}

// NewCartHandler creates a new cart API handler
func NewCartHandler(cart domain.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cart.Summary(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toCartJSON(summary))
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// AddItem handles POST /api/cart/items. Quantity defaults to one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	summary, err := h.cart.AddItem(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, toCartJSON(summary))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PATCH /api/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrCartItemNotFound)
		return
	}

	var req setQuantityRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	summary, err := h.cart.SetItemQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toCartJSON(summary))
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrCartItemNotFound)
		return
	}

	if err := h.cart.RemoveItem(r.Context(), id); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
