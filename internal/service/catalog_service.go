package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/persistence"
	"github.com/spec-kit/print-shop/internal/store"
	apperrors "github.com/spec-kit/print-shop/pkg/util"
)

const (
	productListCacheKey = "catalog:products"
	productListCacheTTL = 5 * time.Minute
)

// CatalogService coordinates product and category management. Product
// listings are served through Redis when it is reachable; cache failures are
// logged and ignored.
type CatalogService struct {
	products store.ProductStore
	cats     store.CategoryStore
	cache    *persistence.Redis
	logger   *zap.Logger
}

// NewCatalogService builds the service. cache may be nil to disable caching.
func NewCatalogService(products store.ProductStore, cats store.CategoryStore, cache *persistence.Redis, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, cats: cats, cache: cache, logger: logger}
}

// ListProducts returns the full catalog, preferring the cache.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.cachedProducts(ctx); ok {
		return cached, nil
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.fillProductCache(ctx, products)
	return products, nil
}

// GetProductBySlug returns a single product for the storefront detail page.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFound("product", map[string]any{"slug": slug})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return product, nil
}

// CreateProduct validates and stores a new catalog product.
func (s *CatalogService) CreateProduct(ctx context.Context, draft domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(draft.Name) == "" || strings.TrimSpace(draft.Slug) == "" {
		return nil, apperrors.NewValidationError("product name and slug required", nil)
	}
	if draft.Price < 0 {
		return nil, apperrors.NewValidationError("price must be non-negative", nil)
	}

	product, err := s.products.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			return nil, apperrors.NewConflict("product slug already in use", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	s.invalidateProductCache(ctx)
	return product, nil
}

// UpdateProduct applies an admin patch.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		case errors.Is(err, store.ErrSlugTaken):
			return nil, apperrors.NewConflict("product slug already in use", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("product updated", zap.String("product_id", product.ID))
	s.invalidateProductCache(ctx)
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("product", map[string]any{"id": id})
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	s.invalidateProductCache(ctx)
	return nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.cats.All(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return categories, nil
}

// CreateCategory validates and stores a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, draft domain.Category) (*domain.Category, error) {
	if strings.TrimSpace(draft.Name) == "" || strings.TrimSpace(draft.Slug) == "" {
		return nil, apperrors.NewValidationError("category name and slug required", nil)
	}

	category, err := s.cats.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			return nil, apperrors.NewConflict("category slug already in use", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("category created", zap.String("category_id", category.ID), zap.String("slug", category.Slug))
	return category, nil
}

// UpdateCategory applies an admin patch.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	category, err := s.cats.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		case errors.Is(err, store.ErrSlugTaken):
			return nil, apperrors.NewConflict("category slug already in use", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("category updated", zap.String("category_id", category.ID))
	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	deleted, err := s.cats.Delete(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("category", map[string]any{"id": id})
	}
	s.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}

func (s *CatalogService) cachedProducts(ctx context.Context) ([]domain.Product, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, productListCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *CatalogService) fillProductCache(ctx context.Context, products []domain.Product) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, productListCacheKey, data, productListCacheTTL).Err(); err != nil {
		s.logger.Debug("product cache fill failed", zap.Error(err))
	}
}

func (s *CatalogService) invalidateProductCache(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, productListCacheKey).Err(); err != nil {
		s.logger.Debug("product cache invalidation failed", zap.Error(err))
	}
}
