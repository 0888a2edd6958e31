package domain

import (
	"errors"
	"fmt"
)

// Value object construction failures. These are validation errors, not
// defects: callers surface them the same way as the typed errors below.
var (
	ErrNegativePrice       = errors.New("price must be non-negative")
	ErrNonPositiveQuantity = errors.New("quantity must be a positive integer")
	ErrNegativeStock       = errors.New("stock must be non-negative")
)

// ProductNotFoundError indicates a lookup by product id failed.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ProductID)
}

// CategoryNotFoundError indicates a lookup by category id failed.
type CategoryNotFoundError struct {
	CategoryID string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category with ID %s not found", e.CategoryID)
}

// ReservationNotFoundError indicates a lookup by reservation id failed.
type ReservationNotFoundError struct {
	ReservationID string
}

func (e *ReservationNotFoundError) Error() string {
	return fmt.Sprintf("reservation with ID %s not found", e.ReservationID)
}

// SaleNotFoundError indicates a lookup by sale id failed.
type SaleNotFoundError struct {
	SaleID string
}

func (e *SaleNotFoundError) Error() string {
	return fmt.Sprintf("sale with ID %s not found", e.SaleID)
}

// InvalidDiscountError indicates a discount percentage outside [0, 100].
type InvalidDiscountError struct {
	Percentage float64
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount percentage: %g, must be between 0 and 100", e.Percentage)
}

// InsufficientStockError indicates a reserve or sell request for more units
// than the product has available. Carries both numbers for diagnostics.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, but only %d available",
		e.ProductID, e.Requested, e.Available)
}

// CannotCancelReservationError indicates an illegal reservation status
// transition. Only reserved -> cancelled is permitted.
type CannotCancelReservationError struct {
	ReservationID string
	Status        ReservationStatus
}

func (e *CannotCancelReservationError) Error() string {
	return fmt.Sprintf("cannot cancel reservation %s with status %q", e.ReservationID, e.Status)
}

// IsNotFound reports whether err is any of the not-found error kinds.
func IsNotFound(err error) bool {
	var (
		productErr     *ProductNotFoundError
		categoryErr    *CategoryNotFoundError
		reservationErr *ReservationNotFoundError
		saleErr        *SaleNotFoundError
	)
	return errors.As(err, &productErr) ||
		errors.As(err, &categoryErr) ||
		errors.As(err, &reservationErr) ||
		errors.As(err, &saleErr)
}

// IsValidation reports whether err is a rejected-input failure: value object
// construction errors, out-of-range discounts, or insufficient stock.
func IsValidation(err error) bool {
	var (
		discountErr *InvalidDiscountError
		stockErr    *InsufficientStockError
	)
	return errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrNonPositiveQuantity) ||
		errors.Is(err, ErrNegativeStock) ||
		errors.As(err, &discountErr) ||
		errors.As(err, &stockErr)
}
