package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/provider"
	"github.com/cedarmart-next/internal/repository"
	"github.com/cedarmart-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newWorkerTestConsumer(t *testing.T, name string) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Setting{},
		&models.User{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingSvc := service.NewSettingService(repository.NewSettingRepository(db))
	orderSvc := service.NewOrderService(
		orderRepo,
		productRepo,
		repository.NewCartRepository(db),
		repository.NewAddressRepository(db),
		settingSvc,
		nil,
		nil,
	)
	container := &provider.Container{
		OrderRepo:      orderRepo,
		ProductRepo:    productRepo,
		UserRepo:       repository.NewUserRepository(db),
		OrderService:   orderSvc,
		SettingService: settingSvc,
	}
	return NewConsumer(container), db
}

func workerTask(t *testing.T, taskType string, payload string) *asynq.Task {
	t.Helper()
	return asynq.NewTask(taskType, []byte(payload))
}

func TestHandleOrderAutoCancelCancelsExpired(t *testing.T) {
	consumer, db := newWorkerTestConsumer(t, "auto_cancel")

	order := models.Order{
		OrderNo:         "CM20260101120000123456",
		UserID:          1,
		Status:          constants.OrderStatusPending,
		Currency:        "USD",
		ShippingAddress: models.JSON{"recipient_name": "测试用户"},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	backdated := time.Now().Add(-2 * time.Hour)
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("created_at", backdated).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	task := workerTask(t, "order:auto_cancel", fmt.Sprintf(`{"order_id":%d}`, order.ID))
	if err := consumer.handleOrderAutoCancel(context.Background(), task); err != nil {
		t.Fatalf("handle auto cancel failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", reloaded.Status)
	}
}

func TestHandleOrderAutoCancelKeepsFreshOrder(t *testing.T) {
	consumer, db := newWorkerTestConsumer(t, "auto_cancel_fresh")

	order := models.Order{
		OrderNo:         "CM20260101120000654321",
		UserID:          1,
		Status:          constants.OrderStatusPending,
		Currency:        "USD",
		ShippingAddress: models.JSON{"recipient_name": "测试用户"},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task := workerTask(t, "order:auto_cancel", fmt.Sprintf(`{"order_id":%d}`, order.ID))
	if err := consumer.handleOrderAutoCancel(context.Background(), task); err != nil {
		t.Fatalf("handle auto cancel failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", reloaded.Status)
	}
}

func TestHandleOrderAutoCancelSkipMissingOrder(t *testing.T) {
	consumer, _ := newWorkerTestConsumer(t, "auto_cancel_missing")

	task := workerTask(t, "order:auto_cancel", `{"order_id":9999}`)
	if err := consumer.handleOrderAutoCancel(context.Background(), task); err != nil {
		t.Fatalf("expected missing order to be skipped, got %v", err)
	}
}

func TestHandleOrderAutoCancelRejectsBadPayload(t *testing.T) {
	consumer, _ := newWorkerTestConsumer(t, "auto_cancel_bad_payload")

	task := workerTask(t, "order:auto_cancel", `{invalid`)
	if err := consumer.handleOrderAutoCancel(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestHandleOrderStatusEmailSkipPaths(t *testing.T) {
	consumer, db := newWorkerTestConsumer(t, "status_email")

	// 无效载荷直接跳过
	if err := consumer.handleOrderStatusEmail(context.Background(), workerTask(t, "order:status_email", `{"order_id":0}`)); err != nil {
		t.Fatalf("expected zero order id to be skipped, got %v", err)
	}

	// 订单不存在时跳过
	if err := consumer.handleOrderStatusEmail(context.Background(), workerTask(t, "order:status_email", `{"order_id":9999}`)); err != nil {
		t.Fatalf("expected missing order to be skipped, got %v", err)
	}

	// 用户不存在收件人为空,跳过
	order := models.Order{
		OrderNo:         "CM20260101120000111111",
		UserID:          42,
		Status:          constants.OrderStatusConfirmed,
		Currency:        "USD",
		ShippingAddress: models.JSON{"recipient_name": "测试用户"},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	task := workerTask(t, "order:status_email", fmt.Sprintf(`{"order_id":%d,"status":"confirmed"}`, order.ID))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected empty receiver to be skipped, got %v", err)
	}
}

func TestHandleLowStockNotify(t *testing.T) {
	consumer, db := newWorkerTestConsumer(t, "low_stock")

	category := models.Category{Slug: "worker-cat", Name: "测试分类", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:    category.ID,
		SKU:           "WORKER-001",
		Slug:          "worker-product",
		Name:          "测试商品",
		Status:        constants.ProductStatusActive,
		StockQuantity: 2,
		LowStockAlert: 5,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	task := workerTask(t, "product:low_stock_notify", fmt.Sprintf(`{"product_id":%d}`, product.ID))
	if err := consumer.handleLowStockNotify(context.Background(), task); err != nil {
		t.Fatalf("handle low stock notify failed: %v", err)
	}

	// 库存已回补则静默跳过
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("stock_quantity", 50).Error; err != nil {
		t.Fatalf("update stock failed: %v", err)
	}
	if err := consumer.handleLowStockNotify(context.Background(), task); err != nil {
		t.Fatalf("expected recovered stock to be skipped, got %v", err)
	}

	// 商品不存在跳过
	if err := consumer.handleLowStockNotify(context.Background(), workerTask(t, "product:low_stock_notify", `{"product_id":9999}`)); err != nil {
		t.Fatalf("expected missing product to be skipped, got %v", err)
	}
}
