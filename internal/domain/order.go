package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order statuses. No transition graph is enforced: a privileged actor may
// set any status from any status.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the four order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

var (
	ErrOrderNotFound = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrCartEmpty     = &Error{Code: EINVALID, Message: "Cart is empty"}
)

// Orders per history page.
const OrderPageSize = 10

// ShippingDetails is the denormalized shipping snapshot captured on the
// order at checkout. It never changes afterwards.
type ShippingDetails struct {
	FirstName  string `json:"first_name" validate:"required,max=50"`
	LastName   string `json:"last_name" validate:"required,max=50"`
	Address    string `json:"address" validate:"required,max=250"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Phone      string `json:"phone" validate:"max=20"`
}

// OrderItem is one purchased line. PriceAtOrder is a frozen copy of the
// product's price at the moment the order was created; later price changes
// never touch it.
type OrderItem struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	Quantity     int
	PriceAtOrder Cents
	Subtotal     Cents
}

// Order is an immutable-on-creation record of a purchase. Only status (and,
// while PENDING, item quantities via a manager) mutate post-creation.
type Order struct {
	ID        uuid.UUID
	Number    string
	UserID    uuid.UUID
	Shipping  ShippingDetails
	Status    string
	Total     Cents
	OrderedAt time.Time
	Items     []OrderItem
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Orders     []Order
	Page       int
	TotalPages int
}

// CheckoutService converts the authenticated caller's cart into an order.
type CheckoutService interface {
	// Checkout validates every cart line against live stock, creates the
	// order with a frozen total and per-line price snapshots, decrements
	// stock and empties the cart - all as one unit of work. An empty cart
	// yields ErrCartEmpty; any stock violation aborts the whole attempt
	// naming the offending product.
	Checkout(ctx context.Context, shipping ShippingDetails) (*Order, error)
}

// OrderService provides read access and the post-creation lifecycle.
type OrderService interface {
	// GetOrder returns an order visible to the caller: owners see their own
	// orders, staff see any order.
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrders returns the caller's orders, newest first. Staff callers
	// get all orders.
	ListOrders(ctx context.Context, page int) (*OrderPage, error)

	// UpdateStatus sets the order status. Staff only; owners can never
	// mutate an order post-creation.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error)

	// UpdateItemQuantity edits an order line. Manager only, and only while
	// the parent order's status is exactly PENDING.
	UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (*Order, error)
}
