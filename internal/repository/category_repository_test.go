package repository

import (
	"context"
	"testing"

	"stockroom/internal/domain"
)

func TestInMemoryCategoryRepositoryFindSubcategories(t *testing.T) {
	repo := NewInMemoryCategoryRepository()
	ctx := context.Background()

	root, _ := repo.Create(ctx, domain.NewCategory("Electronics", ""))
	child1, _ := repo.Create(ctx, domain.NewCategory("Phones", root.ID))
	child2, _ := repo.Create(ctx, domain.NewCategory("Laptops", root.ID))
	repo.Create(ctx, domain.NewCategory("Furniture", ""))

	subs, err := repo.FindSubcategories(ctx, root.ID)
	if err != nil {
		t.Fatalf("failed to find subcategories: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subcategories, got %d", len(subs))
	}

	ids := map[string]bool{subs[0].ID: true, subs[1].ID: true}
	if !ids[child1.ID] || !ids[child2.ID] {
		t.Errorf("expected both children to be returned")
	}
}

func TestInMemoryCategoryRepositoryCRUD(t *testing.T) {
	repo := NewInMemoryCategoryRepository()
	ctx := context.Background()

	category, err := repo.Create(ctx, domain.NewCategory("Books", ""))
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	category.Name = "Used Books"
	if _, err := repo.Update(ctx, category); err != nil {
		t.Fatalf("failed to update category: %v", err)
	}

	found, err := repo.FindByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("failed to find category: %v", err)
	}
	if found.Name != "Used Books" {
		t.Errorf("expected renamed category, got %s", found.Name)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}
	if _, err := repo.FindByID(ctx, category.ID); !domain.IsNotFound(err) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
}
