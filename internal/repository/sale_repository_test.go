package repository

import (
	"context"
	"testing"
	"time"

	"stockroom/internal/domain"
)

func saleDatedAt(productID string, date time.Time) *domain.Sale {
	qty, _ := domain.NewQuantity(1)
	sale := domain.NewSale(productID, "cat-1", qty)
	sale.SaleDate = date
	return sale
}

func TestInMemorySaleRepositoryFindBetweenDates(t *testing.T) {
	repo := NewInMemorySaleRepository()
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
	}

	early, _ := repo.Create(ctx, saleDatedAt("p1", day(1)))
	middle, _ := repo.Create(ctx, saleDatedAt("p2", day(10)))
	repo.Create(ctx, saleDatedAt("p3", day(20)))

	start := day(10)
	end := day(20)

	sales, err := repo.FindBetweenDates(ctx, &start, &end)
	if err != nil {
		t.Fatalf("failed to query window: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 sales in window, got %d", len(sales))
	}
	for _, sale := range sales {
		if sale.ID == early.ID {
			t.Errorf("expected sale before the window to be excluded")
		}
	}

	// Both bounds are inclusive.
	exactly := day(10)
	sales, err = repo.FindBetweenDates(ctx, &exactly, &exactly)
	if err != nil {
		t.Fatalf("failed to query point window: %v", err)
	}
	if len(sales) != 1 || sales[0].ID != middle.ID {
		t.Errorf("expected the boundary sale to be included, got %d sales", len(sales))
	}

	// Open-ended windows.
	sales, err = repo.FindBetweenDates(ctx, &start, nil)
	if err != nil {
		t.Fatalf("failed to query open-ended window: %v", err)
	}
	if len(sales) != 2 {
		t.Errorf("expected 2 sales from start onward, got %d", len(sales))
	}

	sales, err = repo.FindBetweenDates(ctx, nil, nil)
	if err != nil {
		t.Fatalf("failed to query unbounded window: %v", err)
	}
	if len(sales) != 3 {
		t.Errorf("expected all 3 sales with no bounds, got %d", len(sales))
	}
}

func TestInMemorySaleRepositoryFindByProduct(t *testing.T) {
	repo := NewInMemorySaleRepository()
	ctx := context.Background()

	now := time.Now()
	repo.Create(ctx, saleDatedAt("p1", now))
	repo.Create(ctx, saleDatedAt("p1", now))
	repo.Create(ctx, saleDatedAt("p2", now))

	sales, err := repo.FindByProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("failed to find by product: %v", err)
	}
	if len(sales) != 2 {
		t.Errorf("expected 2 sales for p1, got %d", len(sales))
	}
}

func TestInMemorySaleRepositoryNotFound(t *testing.T) {
	repo := NewInMemorySaleRepository()
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "missing"); !domain.IsNotFound(err) {
		t.Errorf("expected not-found for missing sale, got %v", err)
	}
}
