package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

type catalogService struct {
	repo repository.Querier
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(repo repository.Querier) domain.CatalogService {
	return &catalogService{repo: repo}
}

func toCategory(row repository.Category) domain.Category {
	return domain.Category{
		ID:   repository.FromPgUUID(row.ID),
		Name: row.Name,
		Slug: row.Slug,
	}
}

func toProduct(row repository.ProductRow) domain.Product {
	return domain.Product{
		ID:           repository.FromPgUUID(row.ID),
		CategoryID:   repository.FromPgUUID(row.CategoryID),
		CategoryName: row.CategoryName,
		Name:         row.Name,
		Description:  row.Description,
		Price:        domain.Cents(row.PriceCents),
		Stock:        int(row.Stock),
		ImageURL:     row.ImageUrl,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to list categories")
	}

	categories := make([]domain.Category, len(rows))
	for i, row := range rows {
		categories[i] = toCategory(row)
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	row, err := s.repo.GetCategoryByID(ctx, repository.PgUUID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Internal(err, "catalog.get_category", "failed to get category")
	}

	c := toCategory(row)
	return &c, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	const op = "catalog.list_products"

	countParams := repository.CountProductsParams{
		Query:         filter.Query,
		MinPriceCents: -1,
		MaxPriceCents: -1,
		InStockOnly:   filter.InStockOnly,
	}
	if filter.CategoryID != uuid.Nil {
		countParams.CategoryID = repository.PgUUID(filter.CategoryID)
	}
	if filter.MinPrice != nil {
		countParams.MinPriceCents = int64(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		countParams.MaxPriceCents = int64(*filter.MaxPrice)
	}

	total, err := s.repo.CountProducts(ctx, countParams)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count products")
	}

	totalPages := int((total + domain.ProductPageSize - 1) / domain.ProductPageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	// Out-of-range pages clamp to the nearest valid page.
	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
		Query:         countParams.Query,
		CategoryID:    countParams.CategoryID,
		MinPriceCents: countParams.MinPriceCents,
		MaxPriceCents: countParams.MaxPriceCents,
		InStockOnly:   countParams.InStockOnly,
		Limit:         domain.ProductPageSize,
		Offset:        int32((page - 1) * domain.ProductPageSize),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list products")
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = toProduct(row)
	}

	return &domain.ProductPage{
		Products:   products,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row, err := s.repo.GetProductByID(ctx, repository.PgUUID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get_product", "failed to get product")
	}

	p := toProduct(row)
	return &p, nil
}

// requireManager gates catalog mutations.
func requireManager(ctx context.Context, op string) error {
	user := domain.UserFromContext(ctx)
	if user == nil {
		return domain.Unauthorized(op, "Authentication required")
	}
	if !user.IsManager() {
		return domain.Forbidden(op, "Manager role required")
	}
	return nil
}

func (s *catalogService) CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	const op = "catalog.create_category"
	if err := requireManager(ctx, op); err != nil {
		return nil, err
	}
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	row, err := s.repo.CreateCategory(ctx, repository.CreateCategoryParams{Name: in.Name, Slug: in.Slug})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create category")
	}

	c := toCategory(row)
	return &c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, in domain.CategoryInput) (*domain.Category, error) {
	const op = "catalog.update_category"
	if err := requireManager(ctx, op); err != nil {
		return nil, err
	}
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateCategory(ctx, repository.UpdateCategoryParams{
		ID:   repository.PgUUID(id),
		Name: in.Name,
		Slug: in.Slug,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Internal(err, op, "failed to update category")
	}

	c := toCategory(row)
	return &c, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "catalog.delete_category"
	if err := requireManager(ctx, op); err != nil {
		return err
	}

	if err := s.repo.DeleteCategory(ctx, repository.PgUUID(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return domain.Internal(err, op, "failed to delete category")
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	const op = "catalog.create_product"
	if err := requireManager(ctx, op); err != nil {
		return nil, err
	}
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	row, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		CategoryID:  repository.PgUUID(in.CategoryID),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  int64(in.Price),
		Stock:       int32(in.Stock),
		ImageUrl:    in.ImageURL,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create product")
	}

	return s.GetProduct(ctx, repository.FromPgUUID(row.ID))
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	const op = "catalog.update_product"
	if err := requireManager(ctx, op); err != nil {
		return nil, err
	}
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	_, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:          repository.PgUUID(id),
		CategoryID:  repository.PgUUID(in.CategoryID),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  int64(in.Price),
		Stock:       int32(in.Stock),
		ImageUrl:    in.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to update product")
	}

	return s.GetProduct(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "catalog.delete_product"
	if err := requireManager(ctx, op); err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, repository.PgUUID(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrProductNotFound
		}
		return domain.Internal(err, op, fmt.Sprintf("failed to delete product %s", id))
	}
	return nil
}
