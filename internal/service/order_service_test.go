package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	db          *gorm.DB
	orderSvc    *OrderService
	productRepo *repository.GormProductRepository
	cartRepo    *repository.GormCartRepository
	orderRepo   *repository.GormOrderRepository
}

func newOrderTestEnv(t *testing.T, name string) *orderTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
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
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingSvc := NewSettingService(repository.NewSettingRepository(db))
	orderSvc := NewOrderService(
		orderRepo,
		productRepo,
		cartRepo,
		repository.NewAddressRepository(db),
		settingSvc,
		nil,
		nil,
	)
	return &orderTestEnv{
		db:          db,
		orderSvc:    orderSvc,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
	}
}

func (e *orderTestEnv) createProduct(t *testing.T, slug string, price string, stock int, allowBackorder bool) *models.Product {
	t.Helper()
	now := time.Now()
	category := models.Category{
		Slug:      "cat-" + slug,
		Name:      "测试分类",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:     category.ID,
		SKU:            strings.ToUpper("SKU-" + slug),
		Slug:           slug,
		Name:           "测试商品 " + slug,
		PriceAmount:    models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Status:         constants.ProductStatusActive,
		StockQuantity:  stock,
		AllowBackorder: allowBackorder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func (e *orderTestEnv) createAddress(t *testing.T, userID uint) *models.Address {
	t.Helper()
	address := models.Address{
		UserID:        userID,
		RecipientName: "张三",
		Phone:         "13800000000",
		Line1:         "人民路 1 号",
		City:          "上海",
		PostalCode:    "200000",
		Country:       "CN",
		IsDefault:     true,
	}
	if err := e.db.Create(&address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return &address
}

func (e *orderTestEnv) fillCart(t *testing.T, userID uint, productID uint, quantity int) {
	t.Helper()
	cart, err := e.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}
	item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
	if err := e.cartRepo.CreateItem(&item); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func (e *orderTestEnv) reloadProduct(t *testing.T, id uint) *models.Product {
	t.Helper()
	product, err := e.productRepo.GetByID(id)
	if err != nil || product == nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product
}

func TestCreateOrderDecrementsStockAndClearsCart(t *testing.T) {
	env := newOrderTestEnv(t, "create")
	product := env.createProduct(t, "create-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 2)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
		CustomerNote:   "尽快发货",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "CM") || len(order.OrderNo) != 2+14+6 {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if !order.Subtotal.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected subtotal 20, got %s", order.Subtotal.String())
	}
	if !order.TaxAmount.Equal(decimal.RequireFromString("1.6")) {
		t.Fatalf("expected tax 1.6, got %s", order.TaxAmount.String())
	}
	if !order.ShippingFee.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected shipping fee 10, got %s", order.ShippingFee.String())
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("31.6")) {
		t.Fatalf("expected total 31.6, got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != product.Name || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.ShippingAddress["recipient_name"] != "张三" {
		t.Fatalf("expected address snapshot, got: %+v", order.ShippingAddress)
	}

	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 3 {
		t.Fatalf("expected stock 3 after order, got %d", got)
	}
	cart, err := env.cartRepo.GetByUser(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart != nil && len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after order, got %d items", len(cart.Items))
	}

	histories, err := env.orderRepo.ListHistory(order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(histories))
	}
	if histories[0].PreviousStatus != nil || histories[0].NewStatus != constants.OrderStatusPending {
		t.Fatalf("unexpected first history record: %+v", histories[0])
	}
	if histories[0].ActorRole != constants.ActorRoleCustomer {
		t.Fatalf("expected customer actor, got %s", histories[0].ActorRole)
	}
}

func TestOrderItemsSnapshotProductData(t *testing.T) {
	env := newOrderTestEnv(t, "snapshot")
	product := env.createProduct(t, "snapshot-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 2)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	originalName := product.Name

	updates := map[string]interface{}{
		"name":         "改名后的商品",
		"price_amount": "88.00",
	}
	if err := env.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	reloaded, err := env.orderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(reloaded.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(reloaded.Items))
	}
	item := reloaded.Items[0]
	if item.ProductName != originalName {
		t.Fatalf("expected snapshotted name %q, got %q", originalName, item.ProductName)
	}
	if !item.UnitPrice.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected snapshotted unit price 10, got %s", item.UnitPrice.String())
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	env := newOrderTestEnv(t, "rollback")
	ok := env.createProduct(t, "rollback-ok", "10", 5, false)
	short := env.createProduct(t, "rollback-short", "10", 1, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, ok.ID, 2)
	env.fillCart(t, 1, short.ID, 3)

	_, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}

	if got := env.reloadProduct(t, ok.ID).StockQuantity; got != 5 {
		t.Fatalf("expected rollback to restore stock 5, got %d", got)
	}
	var count int64
	if err := env.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no orders after rollback, got %d", count)
	}
}

func TestCreateOrderAllowBackorder(t *testing.T) {
	env := newOrderTestEnv(t, "backorder")
	product := env.createProduct(t, "backorder-p1", "10", 0, true)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 2)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodExpress,
	})
	if err != nil {
		t.Fatalf("expected backorder product to be orderable, got: %v", err)
	}
	if !order.ShippingFee.Equal(decimal.RequireFromString("25")) {
		t.Fatalf("expected express shipping fee 25, got %s", order.ShippingFee.String())
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != -2 {
		t.Fatalf("expected stock -2 after backorder, got %d", got)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	env := newOrderTestEnv(t, "validation")
	product := env.createProduct(t, "validation-p1", "10", 5, false)
	address := env.createAddress(t, 1)

	if _, err := env.orderSvc.CreateOrder(CreateOrderInput{UserID: 1, AddressID: address.ID, ShippingMethod: "pigeon"}); !errors.Is(err, ErrShippingMethodInvalid) {
		t.Fatalf("expected shipping method invalid, got: %v", err)
	}
	if _, err := env.orderSvc.CreateOrder(CreateOrderInput{UserID: 1, ShippingMethod: constants.ShippingMethodStandard}); !errors.Is(err, ErrShippingAddressRequired) {
		t.Fatalf("expected shipping address required, got: %v", err)
	}
	if _, err := env.orderSvc.CreateOrder(CreateOrderInput{UserID: 1, AddressID: address.ID + 99, ShippingMethod: constants.ShippingMethodStandard}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected address not found, got: %v", err)
	}
	if _, err := env.orderSvc.CreateOrder(CreateOrderInput{UserID: 1, AddressID: address.ID, ShippingMethod: constants.ShippingMethodStandard}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected cart empty, got: %v", err)
	}

	env.fillCart(t, 1, product.ID, 2)
	otherAddress := env.createAddress(t, 2)
	if _, err := env.orderSvc.CreateOrder(CreateOrderInput{UserID: 1, AddressID: otherAddress.ID, ShippingMethod: constants.ShippingMethodStandard}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected other user's address to be rejected, got: %v", err)
	}
}

func TestCancelOrderCustomer(t *testing.T) {
	env := newOrderTestEnv(t, "cancel_customer")
	product := env.createProduct(t, "cancel-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 2)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleCustomer, 1, ""); !errors.Is(err, ErrCancelReasonRequired) {
		t.Fatalf("expected cancel reason required, got: %v", err)
	}
	if _, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleCustomer, 2, "买错了"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected other user's cancel to fail, got: %v", err)
	}

	cancelled, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleCustomer, 1, "买错了")
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelReason != "买错了" {
		t.Fatalf("unexpected cancelled order: status=%s reason=%s", cancelled.Status, cancelled.CancelReason)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}

	// 重复取消为幂等操作
	again, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleCustomer, 1, "买错了")
	if err != nil {
		t.Fatalf("repeated cancel failed: %v", err)
	}
	if again.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", again.Status)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 5 {
		t.Fatalf("expected stock unchanged after repeated cancel, got %d", got)
	}
}

func TestCancelOrderCustomerRejectsShipped(t *testing.T) {
	env := newOrderTestEnv(t, "cancel_shipped")
	product := env.createProduct(t, "cancel-shipped-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 1)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for _, status := range []string{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, constants.OrderStatusShipped} {
		if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: status, AdminID: 1, TrackingNumber: "SF123"}); err != nil {
			t.Fatalf("advance to %s failed: %v", status, err)
		}
	}

	if _, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleCustomer, 1, "不想要了"); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected shipped order cancel to be rejected, got: %v", err)
	}
	// 管理员取消同样必须填写原因
	if _, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleAdmin, 1, " "); !errors.Is(err, ErrCancelReasonRequired) {
		t.Fatalf("expected admin cancel to require reason, got: %v", err)
	}
	// 管理员仍可取消未终态订单
	cancelled, err := env.orderSvc.CancelOrder(order.ID, constants.ActorRoleAdmin, 1, "包裹丢失")
	if err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	env := newOrderTestEnv(t, "transitions")
	product := env.createProduct(t, "transition-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 2)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: "teleported", AdminID: 1}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status, got: %v", err)
	}
	if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusShipped, AdminID: 1}); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected pending->shipped to be rejected, got: %v", err)
	}

	updated, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusConfirmed, AdminID: 1})
	if err != nil {
		t.Fatalf("confirm order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed || updated.ConfirmedAt == nil {
		t.Fatalf("expected confirmed with timestamp, got: %+v", updated)
	}

	// 同状态重复推进按非法流转拒绝,且不产生历史记录
	if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusConfirmed, AdminID: 1}); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected same-status update to be rejected, got: %v", err)
	}
	if histories, err := env.orderRepo.ListHistory(order.ID); err != nil || len(histories) != 2 {
		t.Fatalf("expected 2 history records after rejected repeat, got %d (err: %v)", len(histories), err)
	}

	if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusProcessing, AdminID: 1}); err != nil {
		t.Fatalf("processing failed: %v", err)
	}
	shipped, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusShipped, AdminID: 1, TrackingNumber: "SF123456"})
	if err != nil {
		t.Fatalf("ship failed: %v", err)
	}
	if shipped.TrackingNumber != "SF123456" || shipped.ShippedAt == nil {
		t.Fatalf("expected tracking number and shipped time, got: %+v", shipped)
	}
	delivered, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusDelivered, AdminID: 1})
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered time, got: %+v", delivered)
	}

	// 终态后不允许再变更
	if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusRefunded, AdminID: 1}); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected delivered->refunded to be rejected, got: %v", err)
	}

	histories, err := env.orderRepo.ListHistory(order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	if len(histories) != 5 {
		t.Fatalf("expected 5 history records, got %d", len(histories))
	}
	if histories[len(histories)-1].NewStatus != constants.OrderStatusDelivered {
		t.Fatalf("unexpected last history record: %+v", histories[len(histories)-1])
	}
}

func TestConfirmPayment(t *testing.T) {
	env := newOrderTestEnv(t, "confirm_payment")
	product := env.createProduct(t, "confirm-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 1)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	confirmed, err := env.orderSvc.ConfirmPayment(order.ID, 9, "银行转账已到账")
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if confirmed.Status != constants.OrderStatusConfirmed || confirmed.ConfirmedAt == nil {
		t.Fatalf("expected confirmed with timestamp, got: %+v", confirmed)
	}

	histories, err := env.orderRepo.ListHistory(order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	if len(histories) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(histories))
	}
	last := histories[len(histories)-1]
	if last.PreviousStatus == nil || *last.PreviousStatus != constants.OrderStatusPending || last.NewStatus != constants.OrderStatusConfirmed {
		t.Fatalf("unexpected confirm history record: %+v", last)
	}
	if last.ActorRole != constants.ActorRoleAdmin || last.ActorID == nil || *last.ActorID != 9 {
		t.Fatalf("expected admin actor 9, got: %+v", last)
	}

	// 仅允许从待确认状态确认收款
	if _, err := env.orderSvc.ConfirmPayment(order.ID, 9, ""); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected repeated confirm to be rejected, got: %v", err)
	}
	if _, err := env.orderSvc.ConfirmPayment(order.ID+99, 9, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected unknown order to be rejected, got: %v", err)
	}
}

func TestUpdateStatusRefundRestoresStock(t *testing.T) {
	env := newOrderTestEnv(t, "refund")
	product := env.createProduct(t, "refund-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 3)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 2 {
		t.Fatalf("expected stock 2 after order, got %d", got)
	}

	if _, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusConfirmed, AdminID: 1}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	refunded, err := env.orderSvc.UpdateStatus(UpdateOrderStatusInput{OrderID: order.ID, Status: constants.OrderStatusRefunded, AdminID: 1, Note: "客户退款"})
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if refunded.Status != constants.OrderStatusRefunded {
		t.Fatalf("expected refunded status, got %s", refunded.Status)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
}

func TestAutoCancelExpired(t *testing.T) {
	env := newOrderTestEnv(t, "auto_cancel")
	product := env.createProduct(t, "auto-cancel-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 2)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	stale := time.Now().Add(-2 * time.Hour)
	if err := env.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	count, err := env.orderSvc.AutoCancelExpired(10)
	if err != nil {
		t.Fatalf("auto cancel failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 auto-cancelled order, got %d", count)
	}

	reloaded, err := env.orderRepo.GetByID(order.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", reloaded.Status)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}

	histories, err := env.orderRepo.ListHistory(order.ID)
	if err != nil {
		t.Fatalf("list history failed: %v", err)
	}
	last := histories[len(histories)-1]
	if last.ActorRole != constants.ActorRoleSystem || last.ActorID != nil {
		t.Fatalf("expected system actor without id, got: %+v", last)
	}
}

func TestGetOrderLazyCancelsExpiredPending(t *testing.T) {
	env := newOrderTestEnv(t, "lazy_cancel")
	product := env.createProduct(t, "lazy-cancel-p1", "10", 5, false)
	address := env.createAddress(t, 1)
	env.fillCart(t, 1, product.ID, 1)

	order, err := env.orderSvc.CreateOrder(CreateOrderInput{
		UserID:         1,
		AddressID:      address.ID,
		ShippingMethod: constants.ShippingMethodStandard,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	stale := time.Now().Add(-2 * time.Hour)
	if err := env.db.Model(&models.Order{}).Where("id = ?", order.ID).Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}

	got, err := env.orderSvc.GetOrderByUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected expired pending order to be cancelled on read, got %s", got.Status)
	}
	if got := env.reloadProduct(t, product.ID).StockQuantity; got != 5 {
		t.Fatalf("expected stock restored to 5, got %d", got)
	}
}
