package domain

import (
	"context"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrSessionNotFound  = &Error{Code: ENOTFOUND, Message: "Session not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartLine is the abstract unit both cart representations share: the
// persisted cart rows of an authenticated user and the anonymous session's
// product -> quantity map both reduce to a sequence of lines.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartItem is a cart line joined with its product for display and
// validation. For the anonymous representation ID equals ProductID, since
// the session map carries no row identity of its own.
type CartItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   Cents
	Quantity    int
	Stock       int
	Subtotal    Cents
}

// CartSummary aggregates cart information with items and calculated totals.
type CartSummary struct {
	Items     []CartItem
	Total     Cents
	ItemCount int
}

// CartService provides business logic for shopping cart operations over both
// representations. The concrete backing store is selected by the caller
// identity in ctx: an authenticated user works against persisted cart rows,
// an anonymous session against its session map.
type CartService interface {
	// Summary returns the caller's cart with items and calculated totals.
	// A caller with no cart yet gets an empty summary, not an error.
	Summary(ctx context.Context) (*CartSummary, error)

	// AddItem increments the line for the product by delta, creating the
	// line if absent. The resulting quantity is validated against stock.
	AddItem(ctx context.Context, productID uuid.UUID, delta int) (*CartSummary, error)

	// SetItemQuantity overwrites a line's quantity. Fails with a validation
	// error when quantity < 1 or quantity exceeds the product's stock.
	// itemID is the cart item ID for authenticated callers and the product
	// ID for anonymous ones.
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*CartSummary, error)

	// RemoveItem deletes a line unconditionally.
	RemoveItem(ctx context.Context, itemID uuid.UUID) error

	// Clear removes every line unconditionally.
	Clear(ctx context.Context) error

	// ItemCount returns the summed quantity across all lines.
	ItemCount(ctx context.Context) (int, error)

	// MergeSessionCart folds the anonymous session cart into the
	// authenticated caller's persisted cart, then discards the session map.
	// Requires both a user and a session in ctx. Products that no longer
	// exist are skipped silently; merged quantities are clamped to stock.
	MergeSessionCart(ctx context.Context) error
}
