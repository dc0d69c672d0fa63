package routes

import (
	"net/http"

	"github.com/mlindgren/vitrine/internal/middleware"
	"github.com/mlindgren/vitrine/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing storefront routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Home redirects to the product listing
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/products", http.StatusSeeOther)
	})

	// Product browsing
	r.Get("/products", deps.ProductHandler.List)
	r.Get("/products/{id}", deps.ProductHandler.Detail)

	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/add/{product_id}", deps.CartHandler.Add)
	r.Post("/cart/ajax/update-item", deps.CartHandler.AjaxUpdate)
	r.Post("/cart/remove/{id}", deps.CartHandler.Remove)
	r.Post("/cart/clear", deps.CartHandler.Clear)

	// Authentication
	r.Get("/signup", deps.AuthHandler.ShowSignup)
	r.Post("/signup", deps.AuthHandler.Signup)
	r.Get("/login", deps.AuthHandler.ShowLogin)
	r.Post("/login", deps.AuthHandler.Login)
	r.Post("/logout", deps.AuthHandler.Logout)

	// Checkout and order history (require authentication)
	authed := r.Group(middleware.RequireAuth)
	authed.Get("/checkout", deps.CheckoutHandler.Page)
	authed.Post("/checkout", deps.CheckoutHandler.Submit)
	authed.Get("/checkout/confirmation", deps.CheckoutHandler.Confirmation)
	authed.Get("/orders", deps.OrderHandler.List)
	authed.Get("/orders/{id}", deps.OrderHandler.Detail)
	authed.Get("/account/profile", deps.AccountHandler.ShowProfile)
	authed.Post("/account/profile", deps.AccountHandler.UpdateProfile)
}
