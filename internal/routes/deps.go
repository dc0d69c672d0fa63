package routes

import (
	"github.com/mlindgren/vitrine/internal/handler/api"
	"github.com/mlindgren/vitrine/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for the HTML storefront routes
type StorefrontDeps struct {
	ProductHandler  *storefront.ProductHandler
	CartHandler     *storefront.CartHandler
	AuthHandler     *storefront.AuthHandler
	CheckoutHandler *storefront.CheckoutHandler
	OrderHandler    *storefront.OrderHandler
	AccountHandler  *storefront.AccountHandler
}

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	CatalogHandler *api.CatalogHandler
	CartHandler    *api.CartHandler
	OrderHandler   *api.OrderHandler
	TokenHandler   *api.TokenHandler
}
