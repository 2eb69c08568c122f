package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCategoryTestService(t *testing.T, name string) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateTwoLevels(t *testing.T) {
	svc, _ := newCategoryTestService(t, "create")

	root, err := svc.Create(CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	if root.Slug != "electronics" || !root.IsRoot() || !root.IsActive {
		t.Fatalf("unexpected root category: %+v", root)
	}

	child, err := svc.Create(CategoryInput{Name: "Keyboards", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Fatalf("unexpected child parent: %+v", child)
	}

	// 子分类不能再有下级
	if _, err := svc.Create(CategoryInput{Name: "Mechanical", ParentID: &child.ID}); !errors.Is(err, ErrCategoryDepthExceeded) {
		t.Fatalf("expected depth exceeded, got: %v", err)
	}

	missing := root.ID + 99
	if _, err := svc.Create(CategoryInput{Name: "Orphan", ParentID: &missing}); !errors.Is(err, ErrCategoryParentNotFound) {
		t.Fatalf("expected parent not found, got: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Electronics Again", Slug: "electronics"}); !errors.Is(err, ErrCategorySlugExists) {
		t.Fatalf("expected slug exists, got: %v", err)
	}
	// 分类名称全局唯一,显式给出不同 slug 也不放行
	if _, err := svc.Create(CategoryInput{Name: "Electronics", Slug: "electronics-2"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("expected name exists, got: %v", err)
	}
}

func TestCategoryUpdateGuards(t *testing.T) {
	svc, _ := newCategoryTestService(t, "update")

	root, err := svc.Create(CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	other, err := svc.Create(CategoryInput{Name: "Clothing"})
	if err != nil {
		t.Fatalf("create other root failed: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Keyboards", ParentID: &root.ID}); err != nil {
		t.Fatalf("create child failed: %v", err)
	}

	// 自己不能作为自己的父级
	if _, err := svc.Update(root.ID, CategoryInput{ParentID: &root.ID}); !errors.Is(err, ErrCategoryDepthExceeded) {
		t.Fatalf("expected self parent to be rejected, got: %v", err)
	}
	// 已有子分类的根分类不能降级
	if _, err := svc.Update(root.ID, CategoryInput{ParentID: &other.ID}); !errors.Is(err, ErrCategoryDepthExceeded) {
		t.Fatalf("expected demotion with children to be rejected, got: %v", err)
	}

	// 与其他分类重名被拒绝
	if _, err := svc.Update(other.ID, CategoryInput{Name: "Electronics"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("expected name exists, got: %v", err)
	}

	// 未显式指定 slug 时,改名按新名称重新生成
	updated, err := svc.Update(other.ID, CategoryInput{Name: "Apparel"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Apparel" || updated.Slug != "apparel" {
		t.Fatalf("expected rename to regenerate slug, got: %+v", updated)
	}

	// 显式指定 slug 时以指定值为准
	renamed, err := svc.Update(other.ID, CategoryInput{Name: "Apparel & More", Slug: "apparel-more"})
	if err != nil {
		t.Fatalf("update with slug failed: %v", err)
	}
	if renamed.Slug != "apparel-more" {
		t.Fatalf("expected explicit slug to win, got: %+v", renamed)
	}
}

func TestCategoryDeleteGuards(t *testing.T) {
	svc, db := newCategoryTestService(t, "delete")

	root, err := svc.Create(CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	child, err := svc.Create(CategoryInput{Name: "Keyboards", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create child failed: %v", err)
	}

	if err := svc.Delete(root.ID); !errors.Is(err, ErrCategoryHasChildren) {
		t.Fatalf("expected has children, got: %v", err)
	}

	product := models.Product{
		CategoryID:  child.ID,
		SKU:         "SKU-CAT-DEL",
		Slug:        "cat-del-product",
		Name:        "测试商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Status:      "active",
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := svc.Delete(child.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected category in use, got: %v", err)
	}

	if err := db.Delete(&product).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.Delete(child.ID); err != nil {
		t.Fatalf("delete child failed: %v", err)
	}
	if err := svc.Delete(root.ID); err != nil {
		t.Fatalf("delete root failed: %v", err)
	}
	if err := svc.Delete(root.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected not found on repeated delete, got: %v", err)
	}
}

func TestCategoryListTree(t *testing.T) {
	svc, _ := newCategoryTestService(t, "tree")

	root, err := svc.Create(CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create root failed: %v", err)
	}
	inactive := false
	if _, err := svc.Create(CategoryInput{Name: "Hidden", IsActive: &inactive}); err != nil {
		t.Fatalf("create inactive root failed: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Keyboards", ParentID: &root.ID}); err != nil {
		t.Fatalf("create child failed: %v", err)
	}

	tree, err := svc.ListTree(true)
	if err != nil {
		t.Fatalf("list tree failed: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected 1 active root, got %d", len(tree))
	}
	if len(tree[0].Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(tree[0].Children))
	}

	all, err := svc.ListTree(false)
	if err != nil {
		t.Fatalf("list full tree failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(all))
	}
}
