package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductTestService(t *testing.T, name string) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	return svc, db
}

func createProductTestCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := models.Category{Slug: slug, Name: "测试分类", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return &category
}

func TestProductCreateValidation(t *testing.T) {
	svc, db := newProductTestService(t, "create")
	category := createProductTestCategory(t, db, "digital")

	stock := 10
	created, err := svc.Create(ProductInput{
		CategoryID:    category.ID,
		SKU:           "kb-001",
		Name:          "Mechanical Keyboard",
		PriceAmount:   decimal.RequireFromString("199.90"),
		StockQuantity: &stock,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if created.SKU != "KB-001" {
		t.Fatalf("expected sku to be uppercased, got %s", created.SKU)
	}
	if created.Slug != "mechanical-keyboard" {
		t.Fatalf("expected slug derived from name, got %q", created.Slug)
	}
	if created.Status != constants.ProductStatusDraft {
		t.Fatalf("expected draft status by default, got %s", created.Status)
	}

	if _, err := svc.Create(ProductInput{CategoryID: category.ID, SKU: "KB-002", Name: "Free Keyboard", PriceAmount: decimal.Zero}); !errors.Is(err, ErrProductPriceInvalid) {
		t.Fatalf("expected price invalid, got: %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, SKU: "KB-001", Name: "Duplicate SKU", PriceAmount: decimal.NewFromInt(1)}); !errors.Is(err, ErrProductSKUExists) {
		t.Fatalf("expected sku exists, got: %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, SKU: "KB-003", Slug: created.Slug, Name: "Duplicate Slug", PriceAmount: decimal.NewFromInt(1)}); !errors.Is(err, ErrProductSlugExists) {
		t.Fatalf("expected slug exists, got: %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: category.ID + 99, SKU: "KB-004", Name: "Orphan Product", PriceAmount: decimal.NewFromInt(1)}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got: %v", err)
	}
}

func TestProductUpdateKeepsExistingFields(t *testing.T) {
	svc, db := newProductTestService(t, "update")
	category := createProductTestCategory(t, db, "digital-update")

	created, err := svc.Create(ProductInput{
		CategoryID:  category.ID,
		SKU:         "KB-100",
		Name:        "Mechanical Keyboard",
		PriceAmount: decimal.RequireFromString("199.90"),
		Status:      constants.ProductStatusActive,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	stock := 42
	updated, err := svc.Update(created.ID, ProductInput{
		CategoryID:    category.ID,
		PriceAmount:   decimal.RequireFromString("149.90"),
		StockQuantity: &stock,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Name != "Mechanical Keyboard" || updated.SKU != "KB-100" || updated.Slug != created.Slug {
		t.Fatalf("expected empty inputs to keep existing fields, got: %+v", updated)
	}
	if !updated.PriceAmount.Equal(decimal.RequireFromString("149.90")) {
		t.Fatalf("expected price 149.90, got %s", updated.PriceAmount.String())
	}
	if updated.StockQuantity != 42 {
		t.Fatalf("expected stock 42, got %d", updated.StockQuantity)
	}
	if updated.Status != constants.ProductStatusActive {
		t.Fatalf("expected status kept, got %s", updated.Status)
	}
}

func TestProductListPublicOnlyActive(t *testing.T) {
	svc, db := newProductTestService(t, "list")
	category := createProductTestCategory(t, db, "digital-list")

	if _, err := svc.Create(ProductInput{CategoryID: category.ID, SKU: "P-1", Name: "Active Product", PriceAmount: decimal.NewFromInt(10), Status: constants.ProductStatusActive}); err != nil {
		t.Fatalf("create active product failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, SKU: "P-2", Name: "Draft Product", PriceAmount: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("create draft product failed: %v", err)
	}

	products, total, err := svc.ListPublic("", "", false, 1, 20)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("expected only active products, got total=%d len=%d", total, len(products))
	}
	if products[0].Status != constants.ProductStatusActive {
		t.Fatalf("expected active product, got %s", products[0].Status)
	}

	all, total, err := svc.ListAdmin("", "", "", 1, 20)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected admin list to include drafts, got total=%d len=%d", total, len(all))
	}
}

func TestProductHasStock(t *testing.T) {
	product := models.Product{StockQuantity: 3, AllowBackorder: false}
	if !product.HasStock(3) {
		t.Fatalf("expected stock 3 to cover quantity 3")
	}
	if product.HasStock(4) {
		t.Fatalf("expected stock 3 to reject quantity 4")
	}
	product.AllowBackorder = true
	if !product.HasStock(100) {
		t.Fatalf("expected backorder product to always have stock")
	}
}
