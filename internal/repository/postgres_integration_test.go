//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderStatusHistory{},
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Category{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchRepositories(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{
		Slug:     "pg-category",
		Name:     "Postgres 分类",
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	productRepo := NewProductRepository(db)
	product := &models.Product{
		CategoryID:    category.ID,
		SKU:           "PG-ROCKET-001",
		Slug:          "pg-product-rocket",
		Name:          "Rocket Booster Pack",
		Description:   "demo product for postgres search",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		Status:        constants.ProductStatusActive,
		StockQuantity: 10,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// ILIKE 路径：大小写不敏感匹配
	productRows, productTotal, err := productRepo.List(ProductListFilter{
		Page:   1,
		Search: "rocket booster",
	})
	if err != nil {
		t.Fatalf("product list search failed: %v", err)
	}
	if productTotal != 1 || len(productRows) != 1 {
		t.Fatalf("product list search want 1 got total=%d len=%d", productTotal, len(productRows))
	}

	productRows, productTotal, err = productRepo.List(ProductListFilter{
		Page:   1,
		Search: "PG-ROCKET",
	})
	if err != nil {
		t.Fatalf("product list search by sku failed: %v", err)
	}
	if productTotal != 1 || len(productRows) != 1 {
		t.Fatalf("product list search by sku want 1 got total=%d len=%d", productTotal, len(productRows))
	}
}

func TestPostgresOrderListFilters(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	orders := []models.Order{
		{
			OrderNo:         "PG-ORDER-001",
			UserID:          1,
			Status:          constants.OrderStatusPending,
			Currency:        "USD",
			Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
			TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
			ShippingMethod:  constants.ShippingMethodStandard,
			ShippingAddress: models.JSON{"recipient_name": "tester"},
			CreatedAt:       now.Add(-48 * time.Hour),
		},
		{
			OrderNo:         "PG-ORDER-002",
			UserID:          1,
			Status:          constants.OrderStatusDelivered,
			Currency:        "USD",
			Subtotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
			TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
			ShippingMethod:  constants.ShippingMethodExpress,
			ShippingAddress: models.JSON{"recipient_name": "tester"},
			CreatedAt:       now,
		},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	rows, total, err := repo.ListByUser(OrderListFilter{Page: 1, PageSize: 10, UserID: 1, Status: constants.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].OrderNo != "PG-ORDER-002" {
		t.Fatalf("list by user want PG-ORDER-002, got total=%d", total)
	}

	from := now.Add(-time.Hour)
	rows, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, CreatedFrom: &from})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].OrderNo != "PG-ORDER-002" {
		t.Fatalf("list admin created_from want PG-ORDER-002, got total=%d", total)
	}
}
