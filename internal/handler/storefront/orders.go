package storefront

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// OrderHandler handles the owner-scoped order history
type OrderHandler struct {
	orders   domain.OrderService
	cart     domain.CartService
	renderer *handler.Renderer
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders domain.OrderService, cart domain.CartService, renderer *handler.Renderer) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart, renderer: renderer}
}

// List handles GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	orderPage, err := h.orders.ListOrders(ctx, page)
	if err != nil {
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	data := baseData(ctx, h.cart)
	data["Page"] = orderPage

	h.renderer.RenderHTTP(w, "orders", data)
}

// Detail handles GET /orders/{id}
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := h.orders.GetOrder(ctx, id)
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

	h.renderer.RenderHTTP(w, "order_detail", data)
}
