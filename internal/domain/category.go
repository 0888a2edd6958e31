package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a product category. Categories form a tree through
// ParentCategoryID; cycle prevention is the caller's responsibility.
type Category struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	ParentCategoryID string    `json:"parent_category_id,omitempty" db:"parent_category_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// NewCategory constructs a Category with a fresh id. parentCategoryID may be
// empty for a root category.
func NewCategory(name, parentCategoryID string) *Category {
	return &Category{
		ID:               uuid.NewString(),
		Name:             name,
		ParentCategoryID: parentCategoryID,
		CreatedAt:        time.Now(),
	}
}
