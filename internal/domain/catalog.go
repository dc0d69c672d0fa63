package domain

import (
	"context"

	"github.com/google/uuid"
)

// Products per listing page, matching the storefront grid.
const ProductPageSize = 6

var (
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// Category groups products for filtering and navigation.
type Category struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// Product is a catalog entry. Stock is decremented by checkout and must
// never go negative; enforcement happens at validation time and through the
// guarded decrement, not a database constraint.
type Product struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Name         string
	Description  string
	Price        Cents
	Stock        int
	ImageURL     string
}

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	// Query matches name or description, case-insensitively.
	Query string

	CategoryID uuid.UUID

	// MinPrice/MaxPrice bound the price range when non-nil.
	MinPrice *Cents
	MaxPrice *Cents

	// InStockOnly keeps only products with stock > 0.
	InStockOnly bool

	// Page is 1-based. Out-of-range pages clamp to the nearest valid page.
	Page int
}

// ProductPage is one page of a filtered listing.
type ProductPage struct {
	Products   []Product
	Page       int
	TotalPages int
	TotalCount int64
}

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"required,max=100"`
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=200"`
	Description string    `json:"description"`
	Price       Cents     `json:"price" validate:"min=0"`
	Stock       int       `json:"stock" validate:"min=0"`
	ImageURL    string    `json:"image"`
}

// CatalogService provides read access to the catalog for everyone and
// mutations for managers only.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)

	// Mutations require the manager role.
	CreateCategory(ctx context.Context, in CategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
