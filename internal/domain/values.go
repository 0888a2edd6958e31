package domain

import "math"

// Price is a non-negative monetary amount.
type Price float64

// NewPrice validates and constructs a Price.
func NewPrice(value float64) (Price, error) {
	if value < 0 {
		return 0, ErrNegativePrice
	}
	return Price(value), nil
}

// Quantity is a positive unit count used for stock movements. Zero stock is
// entity-level state on Product, never a Quantity.
type Quantity int

// NewQuantity validates and constructs a Quantity.
func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return 0, ErrNonPositiveQuantity
	}
	return Quantity(value), nil
}

// Discount is a flat percentage in [0, 100].
type Discount float64

// NewDiscount validates and constructs a Discount.
func NewDiscount(percentage float64) (Discount, error) {
	if percentage < 0 || percentage > 100 {
		return 0, &InvalidDiscountError{Percentage: percentage}
	}
	return Discount(percentage), nil
}

// ApplyTo returns the price reduced by the discount percentage.
func (d Discount) ApplyTo(price Price) float64 {
	return float64(price) * (1 - float64(d)/100)
}

// roundToCents rounds a monetary amount to 2 decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
