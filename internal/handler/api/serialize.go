// Package api implements the JSON surface mounted under /api.
package api

import (
	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
)

// Money fields serialize through domain.Cents, which renders as a quoted
// two-decimal string.

type categoryJSON struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func toCategoryJSON(c domain.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

type productJSON struct {
	ID          uuid.UUID    `json:"id"`
	CategoryID  uuid.UUID    `json:"category_id"`
	Category    string       `json:"category"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       domain.Cents `json:"price"`
	Stock       int          `json:"stock"`
	ImageURL    string       `json:"image,omitempty"`
	InStock     bool         `json:"in_stock"`
}

func toProductJSON(p domain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Category:    p.CategoryName,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		InStock:     p.Stock > 0,
	}
}

type cartItemJSON struct {
	ID        uuid.UUID    `json:"id"`
	ProductID uuid.UUID    `json:"product_id"`
	Product   string       `json:"product"`
	UnitPrice domain.Cents `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Subtotal  domain.Cents `json:"subtotal"`
}

type cartJSON struct {
	Items     []cartItemJSON `json:"items"`
	Total     domain.Cents   `json:"total"`
	ItemCount int            `json:"item_count"`
}

func toCartJSON(s *domain.CartSummary) cartJSON {
	out := cartJSON{Items: make([]cartItemJSON, 0, len(s.Items)), Total: s.Total, ItemCount: s.ItemCount}
	for _, item := range s.Items {
		out.Items = append(out.Items, cartItemJSON{
			ID:        item.ID,
			ProductID: item.ProductID,
			Product:   item.ProductName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		})
	}
	return out
}

type orderItemJSON struct {
	ID           uuid.UUID    `json:"id"`
	ProductID    uuid.UUID    `json:"product_id"`
	Product      string       `json:"product"`
	Quantity     int          `json:"quantity"`
	PriceAtOrder domain.Cents `json:"price_at_order"`
	Subtotal     domain.Cents `json:"subtotal"`
}

type orderJSON struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	PostalCode string          `json:"postal_code"`
	Phone      string          `json:"phone,omitempty"`
	Status     string          `json:"status"`
	Total      domain.Cents    `json:"total_price"`
	OrderedAt  string          `json:"ordered_at"`
	Items      []orderItemJSON `json:"items"`
}

func toOrderJSON(o *domain.Order) orderJSON {
	out := orderJSON{
		ID:         o.ID,
		Number:     o.Number,
		FirstName:  o.Shipping.FirstName,
		LastName:   o.Shipping.LastName,
		Address:    o.Shipping.Address,
		City:       o.Shipping.City,
		PostalCode: o.Shipping.PostalCode,
		Phone:      o.Shipping.Phone,
		Status:     o.Status,
		Total:      o.Total,
		OrderedAt:  o.OrderedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Items:      make([]orderItemJSON, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		out.Items = append(out.Items, orderItemJSON{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Product:      item.ProductName,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Subtotal:     item.Subtotal,
		})
	}
	return out
}
