package repository

import (
	"context"
	"sync"
	"time"

	"stockroom/internal/domain"
)

// SaleRepository defines the interface for sale data access.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Sale, error)
	FindAll(ctx context.Context) ([]*domain.Sale, error)
	FindByProduct(ctx context.Context, productID string) ([]*domain.Sale, error)
	FindBetweenDates(ctx context.Context, start, end *time.Time) ([]*domain.Sale, error)
}

type inMemorySaleRepository struct {
	mu    sync.RWMutex
	sales map[string]domain.Sale
}

// NewInMemorySaleRepository creates an empty in-memory sale store.
func NewInMemorySaleRepository() SaleRepository {
	return &inMemorySaleRepository{
		sales: make(map[string]domain.Sale),
	}
}

func (r *inMemorySaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sales[sale.ID] = *sale
	stored := r.sales[sale.ID]
	return &stored, nil
}

func (r *inMemorySaleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sales[id]; !exists {
		return &domain.SaleNotFoundError{SaleID: id}
	}
	delete(r.sales, id)
	return nil
}

func (r *inMemorySaleRepository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, exists := r.sales[id]
	if !exists {
		return nil, &domain.SaleNotFoundError{SaleID: id}
	}
	return &sale, nil
}

func (r *inMemorySaleRepository) FindAll(ctx context.Context) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := make([]*domain.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		s := sale
		sales = append(sales, &s)
	}
	return sales, nil
}

func (r *inMemorySaleRepository) FindByProduct(ctx context.Context, productID string) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := []*domain.Sale{}
	for _, sale := range r.sales {
		if sale.ProductID == productID {
			s := sale
			sales = append(sales, &s)
		}
	}
	return sales, nil
}

// FindBetweenDates returns sales whose date falls inside the given window.
// Both bounds are inclusive and optional; a nil bound leaves that side open.
func (r *inMemorySaleRepository) FindBetweenDates(ctx context.Context, start, end *time.Time) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := []*domain.Sale{}
	for _, sale := range r.sales {
		if start != nil && sale.SaleDate.Before(*start) {
			continue
		}
		if end != nil && sale.SaleDate.After(*end) {
			continue
		}
		s := sale
		sales = append(sales, &s)
	}
	return sales, nil
}
