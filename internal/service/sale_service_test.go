package service

import (
	"context"
	"testing"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

func recordSaleAt(t *testing.T, service SaleService, repo repository.SaleRepository, categoryID string, date time.Time) *domain.Sale {
	t.Helper()
	qty, _ := domain.NewQuantity(1)
	sale, err := service.RecordSale(context.Background(), "p1", categoryID, qty)
	if err != nil {
		t.Fatalf("failed to record sale: %v", err)
	}

	// Backdate the stored record for windowed report assertions.
	sale.SaleDate = date
	if _, err := repo.Create(context.Background(), sale); err != nil {
		t.Fatalf("failed to backdate sale: %v", err)
	}
	return sale
}

func TestSaleServiceReportFiltersByWindowAndCategory(t *testing.T) {
	repo := repository.NewInMemorySaleRepository()
	service := NewSaleService(repo)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2026, time.April, d, 9, 0, 0, 0, time.UTC)
	}

	inWindow := recordSaleAt(t, service, repo, "cat-1", day(5))
	recordSaleAt(t, service, repo, "cat-2", day(5))
	recordSaleAt(t, service, repo, "cat-1", day(25))

	start := day(1)
	end := day(10)

	report, err := service.GetSalesReport(ctx, &start, &end, "cat-1")
	if err != nil {
		t.Fatalf("failed to build report: %v", err)
	}
	if len(report) != 1 || report[0].ID != inWindow.ID {
		t.Fatalf("expected exactly the in-window cat-1 sale, got %d sales", len(report))
	}

	// Window and category filters are conjunctive; dropping the category
	// widens the result.
	report, err = service.GetSalesReport(ctx, &start, &end, "")
	if err != nil {
		t.Fatalf("failed to build unfiltered report: %v", err)
	}
	if len(report) != 2 {
		t.Errorf("expected 2 sales in window without category filter, got %d", len(report))
	}

	report, err = service.GetSalesReport(ctx, nil, nil, "cat-1")
	if err != nil {
		t.Fatalf("failed to build category-only report: %v", err)
	}
	if len(report) != 2 {
		t.Errorf("expected 2 cat-1 sales with no window, got %d", len(report))
	}
}

func TestSaleServiceGetSaleByID(t *testing.T) {
	repo := repository.NewInMemorySaleRepository()
	service := NewSaleService(repo)
	ctx := context.Background()

	qty, _ := domain.NewQuantity(3)
	sale, err := service.RecordSale(ctx, "p1", "cat-1", qty)
	if err != nil {
		t.Fatalf("failed to record sale: %v", err)
	}

	found, err := service.GetSaleByID(ctx, sale.ID)
	if err != nil {
		t.Fatalf("failed to find sale: %v", err)
	}
	if found.Quantity != 3 || found.CategoryID != "cat-1" {
		t.Errorf("unexpected stored sale: %+v", found)
	}

	if _, err := service.GetSaleByID(ctx, "missing"); !domain.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}
