package service

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

// SaleService defines the interface for sale business logic.
//
// RecordSale persists the record only; the orchestrator has already
// validated and decremented product stock. The product's category id is
// stamped onto the sale so reports can filter by category directly.
type SaleService interface {
	RecordSale(ctx context.Context, productID, categoryID string, quantity domain.Quantity) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	GetSalesByProduct(ctx context.Context, productID string) ([]*domain.Sale, error)
	GetSalesReport(ctx context.Context, start, end *time.Time, categoryID string) ([]*domain.Sale, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(saleRepo repository.SaleRepository) SaleService {
	return &saleService{saleRepo: saleRepo}
}

// RecordSale constructs and persists a sale dated now.
func (s *saleService) RecordSale(ctx context.Context, productID, categoryID string, quantity domain.Quantity) (*domain.Sale, error) {
	sale := domain.NewSale(productID, categoryID, quantity)

	stored, err := s.saleRepo.Create(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}
	return stored, nil
}

// GetSaleByID retrieves a sale by id.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindByID(ctx, saleID)
}

// GetSalesByProduct retrieves all sales for a product.
func (s *saleService) GetSalesByProduct(ctx context.Context, productID string) ([]*domain.Sale, error) {
	return s.saleRepo.FindByProduct(ctx, productID)
}

// GetSalesReport returns sales within the inclusive date window, optionally
// narrowed to one category. Nil bounds leave that side of the window open.
func (s *saleService) GetSalesReport(ctx context.Context, start, end *time.Time, categoryID string) ([]*domain.Sale, error) {
	sales, err := s.saleRepo.FindBetweenDates(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if categoryID == "" {
		return sales, nil
	}

	filtered := []*domain.Sale{}
	for _, sale := range sales {
		if sale.CategoryID == categoryID {
			filtered = append(filtered, sale)
		}
	}
	return filtered, nil
}
