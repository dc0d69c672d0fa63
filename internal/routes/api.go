package routes

import (
	"github.com/mlindgren/vitrine/internal/middleware"
	"github.com/mlindgren/vitrine/internal/router"
)

// RegisterAPIRoutes registers the JSON API. Catalog reads are open; catalog
// mutations are role-checked inside the services; cart and order routes
// require a bearer token.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Credential exchange
	r.Post("/api/token", deps.TokenHandler.Issue)
	r.Post("/api/token/refresh", deps.TokenHandler.Refresh)
	r.Post("/api/token/logout", deps.TokenHandler.Revoke)

	// Catalog
	r.Get("/api/categories", deps.CatalogHandler.ListCategories)
	r.Get("/api/categories/{id}", deps.CatalogHandler.GetCategory)
	r.Post("/api/categories", deps.CatalogHandler.CreateCategory)
	r.Put("/api/categories/{id}", deps.CatalogHandler.UpdateCategory)
	r.Delete("/api/categories/{id}", deps.CatalogHandler.DeleteCategory)

	r.Get("/api/products", deps.CatalogHandler.ListProducts)
	r.Get("/api/products/{id}", deps.CatalogHandler.GetProduct)
	r.Post("/api/products", deps.CatalogHandler.CreateProduct)
	r.Put("/api/products/{id}", deps.CatalogHandler.UpdateProduct)
	r.Delete("/api/products/{id}", deps.CatalogHandler.DeleteProduct)

	// Cart and orders
	authed := r.Group(middleware.RequireAPIAuth)
	authed.Get("/api/cart", deps.CartHandler.Get)
	authed.Post("/api/cart/items", deps.CartHandler.AddItem)
	authed.Patch("/api/cart/items/{id}", deps.CartHandler.UpdateItem)
	authed.Delete("/api/cart/items/{id}", deps.CartHandler.RemoveItem)
	authed.Delete("/api/cart", deps.CartHandler.Clear)

	authed.Get("/api/orders", deps.OrderHandler.List)
	authed.Post("/api/orders", deps.OrderHandler.Create)
	authed.Get("/api/orders/{id}", deps.OrderHandler.Get)
	authed.Patch("/api/orders/{id}", deps.OrderHandler.UpdateStatus)
	authed.Delete("/api/orders/{id}", deps.OrderHandler.Delete)
	authed.Patch("/api/orders/{id}/items/{item_id}", deps.OrderHandler.UpdateItem)
}
