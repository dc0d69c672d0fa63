package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Row types mirror the relational schema in migrations/.

type Category struct {
	ID   pgtype.UUID
	Name string
	Slug string
}

type Product struct {
	ID          pgtype.UUID
	CategoryID  pgtype.UUID
	Name        string
	Description string
	PriceCents  int64
	Stock       int32
	ImageUrl    string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

// ProductRow is a product joined with its category name for listings.
type ProductRow struct {
	Product
	CategoryName string
}

type User struct {
	ID           pgtype.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	Address      string
	City         string
	PostalCode   string
	Phone        string
	CreatedAt    pgtype.Timestamptz
}

// Session is a browsing session. Data holds a small JSON document; for
// anonymous sessions it carries the cart map under the "cart" key. UserID is
// null until the session is bound by login.
type Session struct {
	ID        pgtype.UUID
	Token     string
	UserID    pgtype.UUID
	Data      []byte
	ExpiresAt pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
}

type Cart struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	CreatedAt pgtype.Timestamptz
}

type CartItem struct {
	ID        pgtype.UUID
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
}

// CartItemRow is a cart item joined with its product for display and
// stock validation.
type CartItemRow struct {
	CartItem
	ProductName string
	PriceCents  int64
	Stock       int32
}

type Order struct {
	ID          pgtype.UUID
	OrderNumber string
	UserID      pgtype.UUID
	FirstName   string
	LastName    string
	Address     string
	City        string
	PostalCode  string
	Phone       string
	Status      string
	TotalCents  int64
	OrderedAt   pgtype.Timestamptz
}

type OrderItem struct {
	ID                pgtype.UUID
	OrderID           pgtype.UUID
	ProductID         pgtype.UUID
	Quantity          int32
	PriceAtOrderCents int64
}

// OrderItemRow is an order item joined with its product name.
type OrderItemRow struct {
	OrderItem
	ProductName string
}

type RefreshToken struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	TokenHash string
	ExpiresAt pgtype.Timestamptz
	Revoked   bool
	CreatedAt pgtype.Timestamptz
}

// PgUUID converts a uuid.UUID into its pgtype representation.
func PgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// FromPgUUID converts a pgtype.UUID back to uuid.UUID (uuid.Nil when null).
func FromPgUUID(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return uuid.UUID(id.Bytes)
}
