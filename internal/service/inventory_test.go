package service

import (
	"errors"
	"testing"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
)

func stockTestProduct(id uint, status string, stock int, allowBackorder bool) *models.Product {
	product := &models.Product{
		Name:           "库存测试商品",
		Status:         status,
		StockQuantity:  stock,
		AllowBackorder: allowBackorder,
	}
	product.ID = id
	return product
}

func TestCheckProductStock(t *testing.T) {
	cases := []struct {
		name          string
		product       *models.Product
		quantity      int
		wantStatus    string
		wantAvailable bool
	}{
		{"missing", nil, 1, StockStatusNotFound, false},
		{"draft", stockTestProduct(1, constants.ProductStatusDraft, 10, false), 1, StockStatusUnavailable, false},
		{"discontinued", stockTestProduct(2, constants.ProductStatusDiscontinued, 10, false), 1, StockStatusUnavailable, false},
		{"short", stockTestProduct(3, constants.ProductStatusActive, 2, false), 3, StockStatusInsufficient, false},
		{"exact", stockTestProduct(4, constants.ProductStatusActive, 3, false), 3, StockStatusAvailable, true},
		{"backorder", stockTestProduct(5, constants.ProductStatusActive, 0, true), 5, StockStatusAvailable, true},
	}
	for _, tc := range cases {
		got := CheckProductStock(tc.product, tc.quantity)
		if got.Status != tc.wantStatus || got.Available != tc.wantAvailable {
			t.Fatalf("%s: got status=%s available=%v, want status=%s available=%v",
				tc.name, got.Status, got.Available, tc.wantStatus, tc.wantAvailable)
		}
	}
}

func TestCheckStockReport(t *testing.T) {
	productByID := map[uint]*models.Product{
		10: stockTestProduct(10, constants.ProductStatusActive, 5, false),
		11: stockTestProduct(11, constants.ProductStatusActive, 1, false),
	}
	report := CheckStock(productByID, []StockRequest{
		{ProductID: 10, Quantity: 2},
		{ProductID: 11, Quantity: 3},
		{ProductID: 99, Quantity: 1},
	})
	if len(report) != 3 {
		t.Fatalf("expected 3 report items, got %d", len(report))
	}
	if !report[0].Available || report[0].AvailableQuantity != 5 {
		t.Fatalf("unexpected first item: %+v", report[0])
	}
	if report[1].Available || report[1].Status != StockStatusInsufficient || report[1].AvailableQuantity != 1 {
		t.Fatalf("unexpected second item: %+v", report[1])
	}
	if report[2].Available || report[2].Status != StockStatusNotFound || report[2].ProductID != 99 {
		t.Fatalf("unexpected third item: %+v", report[2])
	}
}

func TestGateProductStock(t *testing.T) {
	if err := gateProductStock(nil, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got: %v", err)
	}
	if err := gateProductStock(stockTestProduct(1, constants.ProductStatusInactive, 5, false), 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected product unavailable, got: %v", err)
	}
	if err := gateProductStock(stockTestProduct(2, constants.ProductStatusActive, 1, false), 2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
	if err := gateProductStock(stockTestProduct(3, constants.ProductStatusActive, 2, false), 2); err != nil {
		t.Fatalf("expected nil, got: %v", err)
	}
}
