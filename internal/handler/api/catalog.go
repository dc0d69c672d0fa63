package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// CatalogHandler serves /api/categories and /api/products. Reads are open;
// mutations are gated to managers by the service.
type CatalogHandler struct {
	catalog domain.CatalogService
}

// NewCatalogHandler creates a new catalog API handler
func NewCatalogHandler(catalog domain.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func uuidPathValue(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	out := make([]categoryJSON, len(categories))
	for i, c := range categories {
		out[i] = toCategoryJSON(c)
	}
	handler.RespondJSON(w, http.StatusOK, out)
}

// GetCategory handles GET /api/categories/{id}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrCategoryNotFound)
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toCategoryJSON(*category))
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in domain.CategoryInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), in)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, toCategoryJSON(*category))
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrCategoryNotFound)
		return
	}

	var in domain.CategoryInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), id, in)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toCategoryJSON(*category))
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrCategoryNotFound)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProducts handles GET /api/products with the same filters as the web
// listing.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListProducts(r.Context(), parseProductFilter(r))
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}

	items := make([]productJSON, len(page.Products))
	for i, p := range page.Products {
		items[i] = toProductJSON(p)
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"results":     items,
		"page":        page.Page,
		"total_pages": page.TotalPages,
		"count":       page.TotalCount,
	})
}

func parseProductFilter(r *http.Request) domain.ProductFilter {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Query:       q.Get("q"),
		InStockOnly: q.Get("in_stock") == "on" || q.Get("in_stock") == "true",
	}
	if id, err := uuid.Parse(q.Get("category")); err == nil {
		filter.CategoryID = id
	}
	if v := q.Get("min_price"); v != "" {
		if min, err := domain.ParseCents(v); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := q.Get("max_price"); v != "" {
		if max, err := domain.ParseCents(v); err == nil {
			filter.MaxPrice = &max
		}
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	return filter
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrProductNotFound)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toProductJSON(*product))
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), in)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, toProductJSON(*product))
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrProductNotFound)
		return
	}

	var in domain.ProductInput
	if err := handler.DecodeJSON(r, &in); err != nil {
		handler.RespondError(w, r, err)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, in)
	if err != nil {
		handler.RespondError(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, toProductJSON(*product))
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handler.RespondError(w, r, domain.ErrProductNotFound)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		handler.RespondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
