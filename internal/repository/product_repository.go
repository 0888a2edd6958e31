package repository

import (
	"context"
	"sync"

	"stockroom/internal/domain"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
}

// inMemoryProductRepository keeps products in a mutex-guarded map. The map
// holds the canonical copy of each entity; reads and writes exchange
// snapshots, never aliases into the map.
type inMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewInMemoryProductRepository creates an empty in-memory product store.
func NewInMemoryProductRepository() ProductRepository {
	return &inMemoryProductRepository{
		products: make(map[string]domain.Product),
	}
}

// Create stores a product. An id collision overwrites the previous entry
// (last write wins).
func (r *inMemoryProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = *product
	stored := r.products[product.ID]
	return &stored, nil
}

// Update replaces an existing product. It never resurrects a deleted entity:
// the key must be present at the time of the write.
func (r *inMemoryProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return nil, &domain.ProductNotFoundError{ProductID: product.ID}
	}
	r.products[product.ID] = *product
	stored := r.products[product.ID]
	return &stored, nil
}

// Delete removes a product by id.
func (r *inMemoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	delete(r.products, id)
	return nil
}

// FindByID returns a snapshot of the product with the given id.
func (r *inMemoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	return &product, nil
}

// FindAll returns snapshots of every stored product in unspecified order.
func (r *inMemoryProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		p := product
		products = append(products, &p)
	}
	return products, nil
}

// FindByCategory returns snapshots of products in the given category.
func (r *inMemoryProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []*domain.Product{}
	for _, product := range r.products {
		if product.CategoryID == categoryID {
			p := product
			products = append(products, &p)
		}
	}
	return products, nil
}
