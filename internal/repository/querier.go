package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = pgx.ErrNoRows

type CreateCategoryParams struct {
	Name string
	Slug string
}

type UpdateCategoryParams struct {
	ID   pgtype.UUID
	Name string
	Slug string
}

type ListProductsParams struct {
	// Query matches name or description (ILIKE), empty for no text filter.
	Query      string
	CategoryID pgtype.UUID
	// MinPriceCents/MaxPriceCents bound the price range; negative means unset.
	MinPriceCents int64
	MaxPriceCents int64
	InStockOnly   bool
	Limit         int32
	Offset        int32
}

type CountProductsParams struct {
	Query         string
	CategoryID    pgtype.UUID
	MinPriceCents int64
	MaxPriceCents int64
	InStockOnly   bool
}

type CreateProductParams struct {
	CategoryID  pgtype.UUID
	Name        string
	Description string
	PriceCents  int64
	Stock       int32
	ImageUrl    string
}

type UpdateProductParams struct {
	ID          pgtype.UUID
	CategoryID  pgtype.UUID
	Name        string
	Description string
	PriceCents  int64
	Stock       int32
	ImageUrl    string
}

// DecrementProductStockParams guard the decrement: the update only applies
// when stock >= quantity, so stock can never go negative.
type DecrementProductStockParams struct {
	ID       pgtype.UUID
	Quantity int32
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

type UpdateUserProfileParams struct {
	ID         pgtype.UUID
	FirstName  string
	LastName   string
	Address    string
	City       string
	PostalCode string
	Phone      string
}

type CreateSessionParams struct {
	Token     string
	UserID    pgtype.UUID
	Data      []byte
	ExpiresAt pgtype.Timestamptz
}

type UpdateSessionDataParams struct {
	ID   pgtype.UUID
	Data []byte
}

type GetCartItemByProductParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
}

type CreateCartItemParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
}

type UpdateCartItemQuantityParams struct {
	ID       pgtype.UUID
	Quantity int32
}

type CreateOrderParams struct {
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

type ListOrdersByUserParams struct {
	UserID pgtype.UUID
	Limit  int32
	Offset int32
}

type ListOrdersParams struct {
	Limit  int32
	Offset int32
}

type UpdateOrderStatusParams struct {
	ID     pgtype.UUID
	Status string
}

type CreateOrderItemParams struct {
	OrderID           pgtype.UUID
	ProductID         pgtype.UUID
	Quantity          int32
	PriceAtOrderCents int64
}

type UpdateOrderItemQuantityParams struct {
	ID       pgtype.UUID
	Quantity int32
}

type CreateRefreshTokenParams struct {
	UserID    pgtype.UUID
	TokenHash string
	ExpiresAt pgtype.Timestamptz
}

// Querier is the storage contract consumed by the service layer. The
// production implementation is the pgx-backed Store; tests substitute an
// in-memory fake.
type Querier interface {
	// Categories
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByID(ctx context.Context, id pgtype.UUID) (Category, error)
	CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error)
	UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error)
	DeleteCategory(ctx context.Context, id pgtype.UUID) error

	// Products
	ListProducts(ctx context.Context, arg ListProductsParams) ([]ProductRow, error)
	CountProducts(ctx context.Context, arg CountProductsParams) (int64, error)
	GetProductByID(ctx context.Context, id pgtype.UUID) (ProductRow, error)
	CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id pgtype.UUID) error

	// DecrementProductStock returns the number of rows updated: zero means
	// the guard failed (insufficient stock) and nothing changed.
	DecrementProductStock(ctx context.Context, arg DecrementProductStockParams) (int64, error)

	// Users
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error)

	// Sessions
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	GetSessionByToken(ctx context.Context, token string) (Session, error)
	UpdateSessionData(ctx context.Context, arg UpdateSessionDataParams) error
	DeleteSession(ctx context.Context, id pgtype.UUID) error

	// Carts
	GetCartByUserID(ctx context.Context, userID pgtype.UUID) (Cart, error)
	CreateCart(ctx context.Context, userID pgtype.UUID) (Cart, error)
	GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]CartItemRow, error)
	GetCartItem(ctx context.Context, id pgtype.UUID) (CartItemRow, error)
	GetCartItemByProduct(ctx context.Context, arg GetCartItemByProductParams) (CartItem, error)
	CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) error
	DeleteCartItem(ctx context.Context, id pgtype.UUID) error
	ClearCartItems(ctx context.Context, cartID pgtype.UUID) error

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error)
	ListOrdersByUser(ctx context.Context, arg ListOrdersByUserParams) ([]Order, error)
	CountOrdersByUser(ctx context.Context, userID pgtype.UUID) (int64, error)
	ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error)
	CountOrders(ctx context.Context) (int64, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItemRow, error)
	GetOrderItem(ctx context.Context, id pgtype.UUID) (OrderItem, error)
	UpdateOrderItemQuantity(ctx context.Context, arg UpdateOrderItemQuantityParams) error

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, arg CreateRefreshTokenParams) (RefreshToken, error)
	GetRefreshTokenByHash(ctx context.Context, hash string) (RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id pgtype.UUID) error

	// BeginTx starts a transaction. Queries issued through the returned
	// Tx's Querier commit or roll back together.
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx is a storage transaction.
type Tx interface {
	Queries() Querier
	Commit(ctx context.Context) error

	// Rollback is safe to call after Commit.
	Rollback(ctx context.Context) error
}
