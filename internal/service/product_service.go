package service

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/events"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
)

// CreateProductInput is the canonical command shape for product creation.
type CreateProductInput struct {
	Name       string
	CategoryID string
	Price      float64
	Stock      int
}

// UpdateProductInput carries a partial update; nil fields keep the stored
// value.
type UpdateProductInput struct {
	Name       *string
	CategoryID *string
	Price      *float64
	Stock      *int
	Discount   *float64
}

// ProductService orchestrates stock movement across products, reservations
// and sales. It owns the per-product serialization of stock mutation: every
// write to a product happens under that product's lock, so the stock
// check-and-decrement is atomic and the counter can never go negative.
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, input UpdateProductInput) (*domain.Product, error)
	UpdatePrice(ctx context.Context, productID string, newPrice float64) (*domain.Product, error)
	StartPromotion(ctx context.Context, productID string, discountPercentage float64) (*domain.Product, error)
	ReserveProduct(ctx context.Context, productID string, quantity int) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)
	SellProduct(ctx context.Context, productID string, quantity int) (*domain.Sale, error)
	GetAvailableProducts(ctx context.Context, categoryID string) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type productService struct {
	productRepo  repository.ProductRepository
	reservations ReservationService
	sales        SaleService
	publisher    events.Publisher
	stockLocks   *keyedMutex
}

// NewProductService creates a new instance of ProductService.
func NewProductService(
	productRepo repository.ProductRepository,
	reservations ReservationService,
	sales SaleService,
	publisher events.Publisher,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		reservations: reservations,
		sales:        sales,
		publisher:    publisher,
		stockLocks:   newKeyedMutex(),
	}
}

// CreateProduct validates the command and persists a new product.
func (s *productService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	price, err := domain.NewPrice(input.Price)
	if err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, domain.ErrNegativeStock
	}

	product, err := s.productRepo.Create(ctx, domain.NewProduct(input.Name, input.CategoryID, price, input.Stock))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreatedTotal.Inc()
	return product, nil
}

// UpdateProduct merges the non-nil fields of the update into the stored
// product. Runs under the product lock so a field update can never clobber a
// concurrent stock movement.
func (s *productService) UpdateProduct(ctx context.Context, productID string, input UpdateProductInput) (*domain.Product, error) {
	unlock := s.stockLocks.lock(productID)
	defer unlock()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Price != nil {
		price, err := domain.NewPrice(*input.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domain.ErrNegativeStock
		}
		product.Stock = *input.Stock
	}
	if input.Discount != nil {
		if err := product.ApplyDiscount(*input.Discount); err != nil {
			return nil, err
		}
	}

	return s.productRepo.Update(ctx, product)
}

// UpdatePrice replaces the product's price.
func (s *productService) UpdatePrice(ctx context.Context, productID string, newPrice float64) (*domain.Product, error) {
	price, err := domain.NewPrice(newPrice)
	if err != nil {
		return nil, err
	}

	unlock := s.stockLocks.lock(productID)
	defer unlock()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Price = price
	return s.productRepo.Update(ctx, product)
}

// StartPromotion applies a discount to the product. The percentage is
// validated before the product lookup, so a bad discount on a nonexistent
// product reports the discount error.
func (s *productService) StartPromotion(ctx context.Context, productID string, discountPercentage float64) (*domain.Product, error) {
	discount, err := domain.NewDiscount(discountPercentage)
	if err != nil {
		return nil, err
	}

	unlock := s.stockLocks.lock(productID)
	defer unlock()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Discount = discount
	return s.productRepo.Update(ctx, product)
}

// ReserveProduct places a hold against the product's stock: check, decrement,
// persist, then record the reservation. If recording fails the decrement is
// rolled back, so stock is never lost without a matching reservation.
func (s *productService) ReserveProduct(ctx context.Context, productID string, quantity int) (*domain.Reservation, error) {
	qty, err := domain.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	unlock := s.stockLocks.lock(productID)
	defer unlock()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < int(qty) {
		metrics.InsufficientStockTotal.WithLabelValues("reserve").Inc()
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: int(qty),
			Available: product.Stock,
		}
	}

	product.Stock -= int(qty)
	if _, err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	reservation, err := s.reservations.CreateReservation(ctx, productID, qty)
	if err != nil {
		s.restoreStock(ctx, product, int(qty), "reserve")
		return nil, err
	}

	metrics.ReservationsCreatedTotal.Inc()
	s.publisher.PublishStockEvent(ctx, events.StockEvent{
		Type:          events.TypeStockReserved,
		ProductID:     productID,
		ReservationID: reservation.ID,
		Quantity:      reservation.Quantity,
		OccurredAt:    time.Now(),
	})
	return reservation, nil
}

// CancelReservation reverses a hold: the product gets its units back and the
// reservation transitions to cancelled. Cancelling a reservation whose
// product no longer exists fails and leaves the reservation untouched;
// cancelling twice fails.
func (s *productService) CancelReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	unlock := s.stockLocks.lock(reservation.ProductID)
	defer unlock()

	// Re-read under the lock; a concurrent cancel may have won the race.
	reservation, err = s.reservations.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != domain.ReservationStatusReserved {
		return nil, &domain.CannotCancelReservationError{
			ReservationID: reservation.ID,
			Status:        reservation.Status,
		}
	}

	product, err := s.productRepo.FindByID(ctx, reservation.ProductID)
	if err != nil {
		return nil, err
	}

	product.Stock += reservation.Quantity
	if _, err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	cancelled, err := s.reservations.CancelReservation(ctx, reservationID)
	if err != nil {
		// Take the restored units back out so none are minted.
		product.Stock -= reservation.Quantity
		s.productRepo.Update(ctx, product)
		metrics.StockCompensationsTotal.WithLabelValues("cancel").Inc()
		return nil, err
	}

	metrics.ReservationsCancelledTotal.Inc()
	s.publisher.PublishStockEvent(ctx, events.StockEvent{
		Type:          events.TypeStockReleased,
		ProductID:     product.ID,
		ReservationID: cancelled.ID,
		Quantity:      cancelled.Quantity,
		OccurredAt:    time.Now(),
	})
	return cancelled, nil
}

// SellProduct draws units from the same stock pool reservations use: check,
// decrement, persist, then record the sale, rolling the decrement back if
// recording fails.
func (s *productService) SellProduct(ctx context.Context, productID string, quantity int) (*domain.Sale, error) {
	qty, err := domain.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	unlock := s.stockLocks.lock(productID)
	defer unlock()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < int(qty) {
		metrics.InsufficientStockTotal.WithLabelValues("sell").Inc()
		return nil, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: int(qty),
			Available: product.Stock,
		}
	}

	product.Stock -= int(qty)
	if _, err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	sale, err := s.sales.RecordSale(ctx, productID, product.CategoryID, qty)
	if err != nil {
		s.restoreStock(ctx, product, int(qty), "sell")
		return nil, err
	}

	metrics.SalesRecordedTotal.Inc()
	s.publisher.PublishStockEvent(ctx, events.StockEvent{
		Type:       events.TypeStockSold,
		ProductID:  productID,
		SaleID:     sale.ID,
		Quantity:   sale.Quantity,
		OccurredAt: time.Now(),
	})
	return sale, nil
}

// GetAvailableProducts returns products with stock remaining, optionally
// narrowed to one category.
func (s *productService) GetAvailableProducts(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	var (
		products []*domain.Product
		err      error
	)
	if categoryID != "" {
		products, err = s.productRepo.FindByCategory(ctx, categoryID)
	} else {
		products, err = s.productRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	available := []*domain.Product{}
	for _, product := range products {
		if product.IsAvailable() {
			available = append(available, product)
		}
	}
	return available, nil
}

// GetProductByID retrieves a product by id.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

// DeleteProduct removes a product. Reservations against it stay in the
// store but can no longer be cancelled.
func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	unlock := s.stockLocks.lock(productID)
	defer unlock()

	return s.productRepo.Delete(ctx, productID)
}

// restoreStock is the compensating action for a failed record step. The
// caller still holds the product lock.
func (s *productService) restoreStock(ctx context.Context, product *domain.Product, quantity int, operation string) {
	product.Stock += quantity
	s.productRepo.Update(ctx, product)
	metrics.StockCompensationsTotal.WithLabelValues(operation).Inc()
}
