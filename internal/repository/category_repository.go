package repository

import (
	"context"
	"sync"

	"stockroom/internal/domain"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindSubcategories(ctx context.Context, parentCategoryID string) ([]*domain.Category, error)
}

type inMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
}

// NewInMemoryCategoryRepository creates an empty in-memory category store.
func NewInMemoryCategoryRepository() CategoryRepository {
	return &inMemoryCategoryRepository{
		categories: make(map[string]domain.Category),
	}
}

func (r *inMemoryCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[category.ID] = *category
	stored := r.categories[category.ID]
	return &stored, nil
}

func (r *inMemoryCategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.ID]; !exists {
		return nil, &domain.CategoryNotFoundError{CategoryID: category.ID}
	}
	r.categories[category.ID] = *category
	stored := r.categories[category.ID]
	return &stored, nil
}

func (r *inMemoryCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[id]; !exists {
		return &domain.CategoryNotFoundError{CategoryID: id}
	}
	delete(r.categories, id)
	return nil
}

func (r *inMemoryCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, &domain.CategoryNotFoundError{CategoryID: id}
	}
	return &category, nil
}

func (r *inMemoryCategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		c := category
		categories = append(categories, &c)
	}
	return categories, nil
}

func (r *inMemoryCategoryRepository) FindSubcategories(ctx context.Context, parentCategoryID string) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []*domain.Category{}
	for _, category := range r.categories {
		if category.ParentCategoryID == parentCategoryID {
			c := category
			categories = append(categories, &c)
		}
	}
	return categories, nil
}
