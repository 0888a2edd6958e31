package service

import (
	"context"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

// CreateCategoryInput is the canonical command shape for category creation.
type CreateCategoryInput struct {
	Name             string
	ParentCategoryID string
}

// UpdateCategoryInput carries a partial update; nil fields keep the stored
// value.
type UpdateCategoryInput struct {
	Name             *string
	ParentCategoryID *string
}

// CategoryService defines the interface for category business logic.
type CategoryService interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, input UpdateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	GetAllCategories(ctx context.Context) ([]*domain.Category, error)
	GetSubcategories(ctx context.Context, parentCategoryID string) ([]*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory constructs and persists a category.
func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := domain.NewCategory(input.Name, input.ParentCategoryID)

	stored, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return stored, nil
}

// UpdateCategory merges the non-nil fields of the update into the stored
// category and persists the result.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.ParentCategoryID != nil {
		category.ParentCategoryID = *input.ParentCategoryID
	}

	return s.categoryRepo.Update(ctx, category)
}

// DeleteCategory removes a category. Products referencing it are left
// untouched; referential integrity is the caller's concern.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.Delete(ctx, categoryID)
}

// GetCategoryByID retrieves a category by id.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, categoryID)
}

// GetAllCategories retrieves every category.
func (s *categoryService) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

// GetSubcategories retrieves the direct children of a category.
func (s *categoryService) GetSubcategories(ctx context.Context, parentCategoryID string) ([]*domain.Category, error) {
	return s.categoryRepo.FindSubcategories(ctx, parentCategoryID)
}
