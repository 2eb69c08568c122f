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

func newWishlistTestService(t *testing.T, name string) (*WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func createWishlistTestProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	category := models.Category{Slug: "cat-" + slug, Name: "测试分类", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:  category.ID,
		SKU:         "SKU-" + slug,
		Slug:        slug,
		Name:        "测试商品 " + slug,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Status:      constants.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestWishlistAddAndConflict(t *testing.T) {
	svc, db := newWishlistTestService(t, "add")
	product := createWishlistTestProduct(t, db, "wish-p1")

	item, err := svc.Add(1, product.ID)
	if err != nil {
		t.Fatalf("add wishlist item failed: %v", err)
	}
	if item.Product == nil || item.Product.ID != product.ID {
		t.Fatalf("expected product attached, got: %+v", item)
	}

	if _, err := svc.Add(1, product.ID); !errors.Is(err, ErrWishlistExists) {
		t.Fatalf("expected wishlist exists, got: %v", err)
	}
	if _, err := svc.Add(1, product.ID+99); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got: %v", err)
	}

	// 其他用户可收藏同一商品
	if _, err := svc.Add(2, product.ID); err != nil {
		t.Fatalf("add for other user failed: %v", err)
	}
}

func TestWishlistListAndRemove(t *testing.T) {
	svc, db := newWishlistTestService(t, "list")
	first := createWishlistTestProduct(t, db, "wish-l1")
	second := createWishlistTestProduct(t, db, "wish-l2")

	if _, err := svc.Add(1, first.ID); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.Add(1, second.ID); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	items, total, err := svc.List(1, 1, 20)
	if err != nil {
		t.Fatalf("list wishlist failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 items, got total=%d len=%d", total, len(items))
	}

	if err := svc.Remove(1, first.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(1, first.ID); !errors.Is(err, ErrWishlistNotFound) {
		t.Fatalf("expected wishlist not found on repeated remove, got: %v", err)
	}

	items, total, err = svc.List(1, 1, 20)
	if err != nil {
		t.Fatalf("list wishlist failed: %v", err)
	}
	if total != 1 || items[0].ProductID != second.ID {
		t.Fatalf("unexpected wishlist after remove: total=%d items=%+v", total, items)
	}
}
