package service

import (
	"context"
	"testing"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

func TestCategoryServiceCreateAndSubcategories(t *testing.T) {
	service := NewCategoryService(repository.NewInMemoryCategoryRepository())
	ctx := context.Background()

	root, err := service.CreateCategory(ctx, CreateCategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("failed to create root category: %v", err)
	}
	if root.ParentCategoryID != "" {
		t.Errorf("expected root category to have no parent, got %s", root.ParentCategoryID)
	}

	child, err := service.CreateCategory(ctx, CreateCategoryInput{Name: "Phones", ParentCategoryID: root.ID})
	if err != nil {
		t.Fatalf("failed to create child category: %v", err)
	}

	subs, err := service.GetSubcategories(ctx, root.ID)
	if err != nil {
		t.Fatalf("failed to list subcategories: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != child.ID {
		t.Errorf("expected the child category, got %d categories", len(subs))
	}
}

func TestCategoryServiceUpdatePartialMerge(t *testing.T) {
	service := NewCategoryService(repository.NewInMemoryCategoryRepository())
	ctx := context.Background()

	parent, _ := service.CreateCategory(ctx, CreateCategoryInput{Name: "Home"})
	category, _ := service.CreateCategory(ctx, CreateCategoryInput{Name: "Kitchen", ParentCategoryID: parent.ID})

	newName := "Kitchenware"
	updated, err := service.UpdateCategory(ctx, category.ID, UpdateCategoryInput{Name: &newName})
	if err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	if updated.Name != "Kitchenware" {
		t.Errorf("expected renamed category, got %s", updated.Name)
	}
	if updated.ParentCategoryID != parent.ID {
		t.Errorf("expected parent to survive a name-only update, got %q", updated.ParentCategoryID)
	}

	// Reparenting to the root uses an explicit empty string, not nil.
	empty := ""
	updated, err = service.UpdateCategory(ctx, category.ID, UpdateCategoryInput{ParentCategoryID: &empty})
	if err != nil {
		t.Fatalf("failed to reparent category: %v", err)
	}
	if updated.ParentCategoryID != "" {
		t.Errorf("expected category moved to the root, got %q", updated.ParentCategoryID)
	}
	if updated.Name != "Kitchenware" {
		t.Errorf("expected name to survive a parent-only update, got %s", updated.Name)
	}
}

func TestCategoryServiceNotFound(t *testing.T) {
	service := NewCategoryService(repository.NewInMemoryCategoryRepository())
	ctx := context.Background()

	if _, err := service.GetCategoryByID(ctx, "missing"); !domain.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}

	name := "X"
	if _, err := service.UpdateCategory(ctx, "missing", UpdateCategoryInput{Name: &name}); !domain.IsNotFound(err) {
		t.Errorf("expected not-found on update, got %v", err)
	}

	if err := service.DeleteCategory(ctx, "missing"); !domain.IsNotFound(err) {
		t.Errorf("expected not-found on delete, got %v", err)
	}
}
