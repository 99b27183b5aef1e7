package store

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

const (
	productsFile   = "products.json"
	categoriesFile = "categories.json"
)

// ProductStore defines persistence access for catalog products.
type ProductStore interface {
	Create(ctx context.Context, draft domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	All(ctx context.Context) ([]domain.Product, error)
	Mode() PersistenceMode
}

// CategoryStore defines persistence access for catalog categories.
type CategoryStore interface {
	Create(ctx context.Context, draft domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
	All(ctx context.Context) ([]domain.Category, error)
	Mode() PersistenceMode
}

type productStore struct {
	*collection[domain.Product]
}

// NewProductStore returns a JSON-file-backed implementation rooted at dataDir.
func NewProductStore(dataDir string, logger *zap.Logger) ProductStore {
	return &productStore{collection: newCollection[domain.Product](dataDir, productsFile, logger)}
}

func (s *productStore) Create(_ context.Context, draft domain.Product) (*domain.Product, error) {
	now := time.Now()
	product := draft
	product.ID = newRecordID("PROD")
	product.Name = strings.TrimSpace(draft.Name)
	product.Slug = normalizeSlug(draft.Slug)
	product.Description = strings.TrimSpace(draft.Description)
	if product.Price < 0 {
		product.Price = 0
	}
	if product.Stock < 0 {
		product.Stock = 0
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	err := s.update(func(records []domain.Product) ([]domain.Product, error) {
		for _, existing := range records {
			if existing.Slug == product.Slug {
				return nil, ErrSlugTaken
			}
		}
		return append(records, product), nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productStore) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, product := range s.snapshot() {
		if product.ID == id {
			p := product
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *productStore) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	normalized := normalizeSlug(slug)
	for _, product := range s.snapshot() {
		if product.Slug == normalized {
			p := product
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *productStore) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	var updated *domain.Product
	err := s.update(func(records []domain.Product) ([]domain.Product, error) {
		idx := -1
		for i, product := range records {
			if product.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNotFound
		}

		product := records[idx]
		if patch.Name != nil {
			product.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Slug != nil {
			slug := normalizeSlug(*patch.Slug)
			for i, other := range records {
				if i != idx && other.Slug == slug {
					return nil, ErrSlugTaken
				}
			}
			product.Slug = slug
		}
		if patch.Description != nil {
			product.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Price != nil && *patch.Price >= 0 {
			product.Price = *patch.Price
		}
		if patch.ImageURL != nil {
			product.ImageURL = strings.TrimSpace(*patch.ImageURL)
		}
		if patch.CategoryID != nil {
			product.CategoryID = *patch.CategoryID
		}
		if patch.Stock != nil && *patch.Stock >= 0 {
			product.Stock = *patch.Stock
		}
		if patch.Featured != nil {
			product.Featured = *patch.Featured
		}
		product.UpdatedAt = time.Now()

		records[idx] = product
		updated = &product
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *productStore) Delete(_ context.Context, id string) (bool, error) {
	deleted := false
	err := s.update(func(records []domain.Product) ([]domain.Product, error) {
		for i, product := range records {
			if product.ID == id {
				deleted = true
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return records, nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *productStore) All(_ context.Context) ([]domain.Product, error) {
	return s.snapshot(), nil
}

type categoryStore struct {
	*collection[domain.Category]
}

// NewCategoryStore returns a JSON-file-backed implementation rooted at dataDir.
func NewCategoryStore(dataDir string, logger *zap.Logger) CategoryStore {
	return &categoryStore{collection: newCollection[domain.Category](dataDir, categoriesFile, logger)}
}

func (s *categoryStore) Create(_ context.Context, draft domain.Category) (*domain.Category, error) {
	now := time.Now()
	category := draft
	category.ID = newRecordID("CAT")
	category.Name = strings.TrimSpace(draft.Name)
	category.Slug = normalizeSlug(draft.Slug)
	category.Description = strings.TrimSpace(draft.Description)
	category.CreatedAt = now
	category.UpdatedAt = now

	err := s.update(func(records []domain.Category) ([]domain.Category, error) {
		for _, existing := range records {
			if existing.Slug == category.Slug {
				return nil, ErrSlugTaken
			}
		}
		return append(records, category), nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *categoryStore) FindByID(_ context.Context, id string) (*domain.Category, error) {
	for _, category := range s.snapshot() {
		if category.ID == id {
			c := category
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *categoryStore) Update(_ context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	var updated *domain.Category
	err := s.update(func(records []domain.Category) ([]domain.Category, error) {
		idx := -1
		for i, category := range records {
			if category.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNotFound
		}

		category := records[idx]
		if patch.Name != nil {
			category.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Slug != nil {
			slug := normalizeSlug(*patch.Slug)
			for i, other := range records {
				if i != idx && other.Slug == slug {
					return nil, ErrSlugTaken
				}
			}
			category.Slug = slug
		}
		if patch.Description != nil {
			category.Description = strings.TrimSpace(*patch.Description)
		}
		category.UpdatedAt = time.Now()

		records[idx] = category
		updated = &category
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *categoryStore) Delete(_ context.Context, id string) (bool, error) {
	deleted := false
	err := s.update(func(records []domain.Category) ([]domain.Category, error) {
		for i, category := range records {
			if category.ID == id {
				deleted = true
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return records, nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (s *categoryStore) All(_ context.Context) ([]domain.Category, error) {
	return s.snapshot(), nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
