package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item with a single available-stock counter.
// Stock holds the count of unreserved, unsold units; zero is a legal value.
type Product struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	CategoryID string    `json:"category_id" db:"category_id"`
	Price      Price     `json:"price" db:"price"`
	Stock      int       `json:"stock" db:"stock"`
	Discount   Discount  `json:"discount" db:"discount"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// NewProduct constructs a Product with a fresh id. initialStock may be zero;
// zero stock is entity-level state, not a Quantity.
func NewProduct(name, categoryID string, price Price, initialStock int) *Product {
	return &Product{
		ID:         uuid.NewString(),
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
		Stock:      initialStock,
		CreatedAt:  time.Now(),
	}
}

// IsAvailable reports whether the product has any stock left.
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// ApplyDiscount sets the product's discount without altering the price.
func (p *Product) ApplyDiscount(percentage float64) error {
	discount, err := NewDiscount(percentage)
	if err != nil {
		return err
	}
	p.Discount = discount
	return nil
}

// PriceAfterDiscount returns the effective price rounded to 2 decimals.
func (p *Product) PriceAfterDiscount() float64 {
	return roundToCents(p.Discount.ApplyTo(p.Price))
}
