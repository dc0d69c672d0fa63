package storefront

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// ProductHandler handles catalog browsing routes
type ProductHandler struct {
	catalog  domain.CatalogService
	cart     domain.CartService
	renderer *handler.Renderer
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog domain.CatalogService, cart domain.CartService, renderer *handler.Renderer) *ProductHandler {
	return &ProductHandler{catalog: catalog, cart: cart, renderer: renderer}
}

// parseFilter reads the listing filters from the query string. Unparseable
// values are dropped rather than rejected; a bad filter is not worth a 400
// on a browse page.
func parseFilter(r *http.Request) domain.ProductFilter {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Query:       q.Get("q"),
		InStockOnly: q.Get("in_stock") == "on",
	}
	if id, err := uuid.Parse(q.Get("category")); err == nil {
		filter.CategoryID = id
	}
	if min, err := domain.ParseCents(q.Get("min_price")); err == nil && q.Get("min_price") != "" {
		filter.MinPrice = &min
	}
	if max, err := domain.ParseCents(q.Get("max_price")); err == nil && q.Get("max_price") != "" {
		filter.MaxPrice = &max
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	return filter
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseFilter(r)
	page, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	data := baseData(ctx, h.cart)
	data["Filter"] = filter
	data["Categories"] = categories
	data["Page"] = page

	h.renderer.RenderHTTP(w, "products", data)
}

// Detail handles GET /products/{id}
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	data := baseData(ctx, h.cart)
	data["Product"] = product
	if summary, err := h.cart.Summary(ctx); err == nil {
		for _, item := range summary.Items {
			if item.ProductID == product.ID {
				data["InCartQuantity"] = item.Quantity
				break
			}
		}
	}

	h.renderer.RenderHTTP(w, "product_detail", data)
}
