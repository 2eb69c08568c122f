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

func newCartTestService(t *testing.T, name string) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		NewSettingService(repository.NewSettingRepository(db)),
	)
	return svc, db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug, price string, stock int, status string) *models.Product {
	t.Helper()
	category := models.Category{Slug: "cat-" + slug, Name: "测试分类", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:    category.ID,
		SKU:           "SKU-" + slug,
		Slug:          slug,
		Name:          "测试商品 " + slug,
		PriceAmount:   models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Status:        status,
		StockQuantity: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestCartAddItemAccumulatesQuantity(t *testing.T) {
	svc, db := newCartTestService(t, "add")
	product := createCartTestProduct(t, db, "cart-p1", "19.99", 10, constants.ProductStatusActive)

	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart detail: %+v", detail.Items)
	}
	if !detail.Items[0].LineTotal.Equal(decimal.RequireFromString("39.98")) {
		t.Fatalf("expected line total 39.98, got %s", detail.Items[0].LineTotal.String())
	}

	detail, err = svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got: %+v", detail.Items)
	}
}

func TestCartGetByUserReusesCart(t *testing.T) {
	svc, _ := newCartTestService(t, "reuse")

	first, err := svc.GetByUser(7)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	second, err := svc.GetByUser(7)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if first.CartID == 0 || first.CartID != second.CartID {
		t.Fatalf("expected same cart id, got %d and %d", first.CartID, second.CartID)
	}
}

func TestCartMutationsTouchCart(t *testing.T) {
	svc, db := newCartTestService(t, "touch")
	product := createCartTestProduct(t, db, "cart-t1", "10", 10, constants.ProductStatusActive)

	backdate := func() time.Time {
		t.Helper()
		past := time.Now().Add(-time.Hour)
		if err := db.Model(&models.Cart{}).Where("user_id = ?", uint(1)).Update("updated_at", past).Error; err != nil {
			t.Fatalf("backdate cart failed: %v", err)
		}
		return past
	}
	cartUpdatedAt := func() time.Time {
		t.Helper()
		var cart models.Cart
		if err := db.Where("user_id = ?", uint(1)).First(&cart).Error; err != nil {
			t.Fatalf("load cart failed: %v", err)
		}
		return cart.UpdatedAt
	}

	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	itemID := detail.Items[0].ItemID

	past := backdate()
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if !cartUpdatedAt().After(past) {
		t.Fatalf("expected add to touch cart updated_at")
	}

	past = backdate()
	if _, err := svc.UpdateItemQuantity(1, itemID, 4); err != nil {
		t.Fatalf("update item failed: %v", err)
	}
	if !cartUpdatedAt().After(past) {
		t.Fatalf("expected quantity update to touch cart updated_at")
	}

	past = backdate()
	if err := svc.RemoveItem(1, itemID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if !cartUpdatedAt().After(past) {
		t.Fatalf("expected remove to touch cart updated_at")
	}

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("refill cart failed: %v", err)
	}
	past = backdate()
	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	if !cartUpdatedAt().After(past) {
		t.Fatalf("expected clear to touch cart updated_at")
	}
}

func TestCartCheckAvailability(t *testing.T) {
	svc, db := newCartTestService(t, "availability")
	inStock := createCartTestProduct(t, db, "cart-a1", "10", 5, constants.ProductStatusActive)
	short := createCartTestProduct(t, db, "cart-a2", "10", 5, constants.ProductStatusActive)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: inStock.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: short.ID, Quantity: 4}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// 加入购物车后库存被抢走,预检应当报告不足
	if err := db.Model(&models.Product{}).Where("id = ?", short.ID).Update("stock_quantity", 1).Error; err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	report, err := svc.CheckAvailability(1)
	if err != nil {
		t.Fatalf("check availability failed: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected 2 report items, got %d", len(report))
	}
	byProduct := make(map[uint]StockReportItem, len(report))
	for _, item := range report {
		byProduct[item.ProductID] = item
	}
	if got := byProduct[inStock.ID]; !got.Available || got.Status != StockStatusAvailable {
		t.Fatalf("expected first product available, got: %+v", got)
	}
	if got := byProduct[short.ID]; got.Available || got.Status != StockStatusInsufficient || got.AvailableQuantity != 1 {
		t.Fatalf("expected second product insufficient, got: %+v", got)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc, db := newCartTestService(t, "validation")
	active := createCartTestProduct(t, db, "cart-v1", "10", 2, constants.ProductStatusActive)
	draft := createCartTestProduct(t, db, "cart-v2", "10", 2, constants.ProductStatusDraft)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 0}); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected quantity invalid for 0, got: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 100}); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected quantity invalid above max, got: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID + 99, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: draft.ID, Quantity: 1}); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected product unavailable, got: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 3}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
}

func TestCartUpdateItemQuantity(t *testing.T) {
	svc, db := newCartTestService(t, "update")
	product := createCartTestProduct(t, db, "cart-u1", "10", 10, constants.ProductStatusActive)

	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	itemID := detail.Items[0].ItemID

	updated, err := svc.UpdateItemQuantity(1, itemID, 7)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if updated.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", updated.Items[0].Quantity)
	}

	if _, err := svc.UpdateItemQuantity(1, itemID+99, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected cart item not found, got: %v", err)
	}
	if _, err := svc.UpdateItemQuantity(1, itemID, 11); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	svc, db := newCartTestService(t, "remove")
	first := createCartTestProduct(t, db, "cart-r1", "10", 10, constants.ProductStatusActive)
	second := createCartTestProduct(t, db, "cart-r2", "20", 10, constants.ProductStatusActive)

	detail, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: first.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add first item failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: second.ID, Quantity: 1}); err != nil {
		t.Fatalf("add second item failed: %v", err)
	}

	if err := svc.RemoveItem(1, detail.Items[0].ItemID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if err := svc.RemoveItem(1, detail.Items[0].ItemID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected cart item not found on repeated remove, got: %v", err)
	}

	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	after, err := svc.GetByUser(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(after.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(after.Items))
	}

	// 空购物车清空为幂等操作
	if err := svc.Clear(2); err != nil {
		t.Fatalf("clear missing cart failed: %v", err)
	}
}

func TestCartDropsUnavailableProducts(t *testing.T) {
	svc, db := newCartTestService(t, "unavailable")
	product := createCartTestProduct(t, db, "cart-d1", "10", 10, constants.ProductStatusActive)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("status", constants.ProductStatusDiscontinued).Error; err != nil {
		t.Fatalf("discontinue product failed: %v", err)
	}

	detail, err := svc.GetByUser(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("expected unavailable product to be dropped, got: %+v", detail.Items)
	}
}

func TestCartSummarize(t *testing.T) {
	svc, db := newCartTestService(t, "summary")
	first := createCartTestProduct(t, db, "cart-s1", "10", 10, constants.ProductStatusActive)
	second := createCartTestProduct(t, db, "cart-s2", "5.25", 10, constants.ProductStatusActive)

	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: first.ID, Quantity: 2}); err != nil {
		t.Fatalf("add first item failed: %v", err)
	}
	if _, err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: second.ID, Quantity: 3}); err != nil {
		t.Fatalf("add second item failed: %v", err)
	}

	summary, err := svc.Summarize(1)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if summary.ItemCount != 2 || summary.TotalQuantity != 5 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if !summary.Subtotal.Equal(decimal.RequireFromString("35.75")) {
		t.Fatalf("expected subtotal 35.75, got %s", summary.Subtotal.String())
	}
	if !summary.EstimatedTax.Equal(decimal.RequireFromString("2.86")) {
		t.Fatalf("expected tax 2.86, got %s", summary.EstimatedTax.String())
	}
}
