package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sale is a permanent record of stock leaving the system. CategoryID is
// stamped from the product at record time so sales reports can filter by
// category without joining back through the product store.
type Sale struct {
	ID         string    `json:"id" db:"id"`
	ProductID  string    `json:"product_id" db:"product_id"`
	CategoryID string    `json:"category_id" db:"category_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	SaleDate   time.Time `json:"sale_date" db:"sale_date"`
}

// NewSale constructs a Sale dated now.
func NewSale(productID, categoryID string, quantity Quantity) *Sale {
	return &Sale{
		ID:         uuid.NewString(),
		ProductID:  productID,
		CategoryID: categoryID,
		Quantity:   int(quantity),
		SaleDate:   time.Now(),
	}
}
