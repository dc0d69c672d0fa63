package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// OrderHandler serves /api/orders. Visibility and role rules live in the
// services; the handler adds the wire-level payload rules.
type OrderHandler struct {
	orders   domain.OrderService
	checkout domain.CheckoutService
}

// NewOrderHandler creates a new order API handler
func NewOrderHandler(orders domain.OrderService, checkout domain.CheckoutService) *OrderHandler {
	return &OrderHandler{orders: orders, checkout: checkout}
}

// List handles GET /api/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	orderPage, err := h.orders.ListOrders(r.Context(), page)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	results := make([]orderJSON, len(orderPage.Orders))
	for i := range orderPage.Orders {
		results[i] = toOrderJSON(&orderPage.Orders[i])
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"results":     results,
		"page":        orderPage.Page,
		"total_pages": orderPage.TotalPages,
	})
}

// Get handles GET /api/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrOrderNotFound)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toOrderJSON(order))
}

// Create handles POST /api/orders: checkout of the caller's cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var shipping domain.ShippingDetails
	if err := handler.DecodeJSON(r, &shipping); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), shipping)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, toOrderJSON(order))
}

// UpdateStatus handles PATCH /api/orders/{id}. The payload may contain the
// status key and nothing else: any extra key rejects the whole request, so
// a privileged client cannot sneak item or total edits through this path.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrOrderNotFound)
		return
	}

	var payload map[string]json.RawMessage
	if err := handler.DecodeJSON(r, &payload); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	for key := range payload {
		if key != "status" {
			handler.RespondError(w, r, domain.Invalid("order.update_status",
				"Only the status field may be updated"))
			return
		}
	}

	// An empty payload is a valid partial update that changes nothing.
	raw, ok := payload["status"]
	if !ok {
		order, err := h.orders.GetOrder(r.Context(), id)
		if err != nil {
			handler.RespondError(w, r, err)
			return
		}
		handler.RespondJSON(w, http.StatusOK, toOrderJSON(order))
		return
	}

	var status string
	if err := json.Unmarshal(raw, &status); err != nil {
		handler.RespondError(w, r, domain.NewValidationError("order.update_status", "status", "Must be a string"))
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toOrderJSON(order))
}

// Delete handles DELETE /api/orders/{id}. Orders are permanent: deletion is
// denied for every caller, staff included.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handler.RespondError(w, r, domain.Forbidden("order.delete", "Orders cannot be deleted"))
}

type updateItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PATCH /api/orders/{id}/items/{item_id}
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrOrderNotFound)
		return
	}
	itemID, err := uuidPathValue(r, "item_id")
	if err != nil {
		handler.RespondError(w, r, domain.NotFound("order.update_item", "order item", r.PathValue("item_id")))
		return
	}

	var req updateItemQuantityRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	order, err := h.orders.UpdateItemQuantity(r.Context(), orderID, itemID, req.Quantity)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toOrderJSON(order))
}
