package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cedarmart-next/internal/config"
	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/logger"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/queue"
	"github.com/cedarmart-next/internal/repository"
)

const (
	orderNoPrefix         = "CM"
	orderNoRandomDigits   = 6
	orderNoMaxAttempts    = 5
	cancelNoteAutoTimeout = "auto cancelled: pending timeout"
)

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	UserID         uint
	AddressID      uint
	ShippingMethod string
	CustomerNote   string
	ClientIP       string
}

// UpdateOrderStatusInput 管理端订单状态更新输入
type UpdateOrderStatusInput struct {
	OrderID        uint
	Status         string
	AdminID        uint
	Note           string
	TrackingNumber string
}

// OrderService 订单业务服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	cartRepo       repository.CartRepository
	addressRepo    repository.AddressRepository
	settingService *SettingService
	queueClient    *queue.Client
	cfg            *config.Config
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	settingService *SettingService,
	queueClient *queue.Client,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		cartRepo:       cartRepo,
		addressRepo:    addressRepo,
		settingService: settingService,
		queueClient:    queueClient,
		cfg:            cfg,
	}
}

// CreateOrder 从购物车创建订单:校验库存、快照商品与地址、计价、
// 在单事务内扣减库存并写入订单、订单项与首条状态历史。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	if !constants.IsValidShippingMethod(input.ShippingMethod) {
		return nil, ErrShippingMethodInvalid
	}
	if input.AddressID == 0 {
		return nil, ErrShippingAddressRequired
	}
	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	cart, err := s.cartRepo.GetByUser(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	productIDs := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	productByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	pricingLines := make([]PricingLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := productByID[item.ProductID]
		if item.Quantity < constants.CartItemQuantityMin || item.Quantity > constants.CartItemQuantityMax {
			return nil, ErrCartQuantityInvalid
		}
		if err := gateProductStock(product, item.Quantity); err != nil {
			if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrProductUnavailable) {
				return nil, ErrCartItemUnavailable
			}
			return nil, err
		}

		lineTotal := product.PriceAmount.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Tags:        product.Tags,
			UnitPrice:   product.PriceAmount,
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
			VariantJSON: item.VariantJSON,
		})
		pricingLines = append(pricingLines, PricingLine{
			UnitPrice: product.PriceAmount.Decimal,
			Quantity:  item.Quantity,
		})
	}

	pricingCfg, err := s.settingService.GetOrderPricingConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	totals, err := CalculateOrderTotals(pricingCfg, pricingLines, input.ShippingMethod, decimal.Zero)
	if err != nil {
		return nil, err
	}
	currency, err := s.settingService.GetSiteCurrency()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		Currency:        currency,
		Subtotal:        models.NewMoneyFromDecimal(totals.Subtotal),
		TaxAmount:       models.NewMoneyFromDecimal(totals.TaxAmount),
		ShippingFee:     models.NewMoneyFromDecimal(totals.ShippingFee),
		DiscountAmount:  models.NewMoneyFromDecimal(totals.DiscountAmount),
		TotalAmount:     models.NewMoneyFromDecimal(totals.TotalAmount),
		ShippingMethod:  input.ShippingMethod,
		ShippingAddress: address.Snapshot(),
		CustomerNote:    strings.TrimSpace(input.CustomerNote),
		ClientIP:        strings.TrimSpace(input.ClientIP),
	}
	actorID := input.UserID
	history := &models.OrderStatusHistory{
		PreviousStatus: nil,
		NewStatus:      constants.OrderStatusPending,
		ActorRole:      constants.ActorRoleCustomer,
		ActorID:        &actorID,
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		txProductRepo := s.productRepo.WithTx(tx)
		for _, item := range orderItems {
			affected, err := txProductRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
			}
		}
		if err := s.orderRepo.WithTx(tx).Create(order, orderItems, history); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearItems(cart.ID)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	order.Items = orderItems
	order.StatusHistory = []models.OrderStatusHistory{*history}

	s.enqueueOrderStatusEmail(order.ID, order.Status)
	s.enqueueOrderAutoCancel(order.ID)
	s.notifyLowStock(productByID, orderItems)

	return order, nil
}

// CancelOrder 取消订单,任何角色都必须填写原因。客户仅能取消自己的
// 待确认订单,管理员可取消任意未进入终态的订单。
func (s *OrderService) CancelOrder(orderID uint, actorRole string, actorID uint, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrCancelReasonRequired
	}

	var order *models.Order
	var err error
	switch actorRole {
	case constants.ActorRoleCustomer:
		order, err = s.orderRepo.GetByIDAndUser(orderID, actorID)
	case constants.ActorRoleAdmin:
		order, err = s.orderRepo.GetByID(orderID)
	default:
		return nil, ErrOrderCancelNotAllowed
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled {
		return order, nil
	}

	switch actorRole {
	case constants.ActorRoleCustomer:
		if !isCancelableStatus(order.Status) {
			return nil, ErrOrderCancelNotAllowed
		}
	case constants.ActorRoleAdmin:
		if constants.IsTerminalOrderStatus(order.Status) {
			return nil, ErrOrderCancelNotAllowed
		}
	}

	if err := s.cancelOrderTx(order, actorRole, &actorID, reason); err != nil {
		return nil, err
	}
	s.enqueueOrderStatusEmail(order.ID, order.Status)
	return order, nil
}

// UpdateStatus 管理端按状态机推进订单状态,每次成功推进都会写入一条
// 状态历史,同状态调用按非法流转拒绝。
func (s *OrderService) UpdateStatus(input UpdateOrderStatusInput) (*models.Order, error) {
	target := strings.TrimSpace(input.Status)
	if !constants.IsValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{}
	switch target {
	case constants.OrderStatusConfirmed:
		updates["confirmed_at"] = now
	case constants.OrderStatusShipped:
		updates["shipped_at"] = now
		if tracking := strings.TrimSpace(input.TrackingNumber); tracking != "" {
			updates["tracking_number"] = tracking
		}
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
		if note := strings.TrimSpace(input.Note); note != "" {
			updates["cancel_reason"] = note
		}
	}

	previous := order.Status
	adminID := input.AdminID
	history := &models.OrderStatusHistory{
		OrderID:        order.ID,
		PreviousStatus: &previous,
		NewStatus:      target,
		ActorRole:      constants.ActorRoleAdmin,
		ActorID:        &adminID,
		Note:           strings.TrimSpace(input.Note),
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		txOrderRepo := s.orderRepo.WithTx(tx)
		if err := txOrderRepo.UpdateStatus(order.ID, target, updates); err != nil {
			return err
		}
		if err := txOrderRepo.AppendHistory(history); err != nil {
			return err
		}
		if isStockReleasingStatus(target) {
			if err := s.restoreOrderStock(tx, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}

	order.Status = target
	switch target {
	case constants.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case constants.OrderStatusShipped:
		order.ShippedAt = &now
		if tracking := strings.TrimSpace(input.TrackingNumber); tracking != "" {
			order.TrackingNumber = tracking
		}
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
		if note := strings.TrimSpace(input.Note); note != "" {
			order.CancelReason = note
		}
	}
	order.StatusHistory = append(order.StatusHistory, *history)

	s.enqueueOrderStatusEmail(order.ID, target)
	return order, nil
}

// ConfirmPayment 管理员确认收款,订单仅允许从待确认进入已确认,
// 历史记录落下操作管理员。
func (s *OrderService) ConfirmPayment(orderID, adminID uint, note string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	previous := order.Status
	history := &models.OrderStatusHistory{
		OrderID:        order.ID,
		PreviousStatus: &previous,
		NewStatus:      constants.OrderStatusConfirmed,
		ActorRole:      constants.ActorRoleAdmin,
		ActorID:        &adminID,
		Note:           strings.TrimSpace(note),
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		txOrderRepo := s.orderRepo.WithTx(tx)
		updates := map[string]interface{}{"confirmed_at": now}
		if err := txOrderRepo.UpdateStatus(order.ID, constants.OrderStatusConfirmed, updates); err != nil {
			return err
		}
		return txOrderRepo.AppendHistory(history)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}

	order.Status = constants.OrderStatusConfirmed
	order.ConfirmedAt = &now
	order.StatusHistory = append(order.StatusHistory, *history)

	s.enqueueOrderStatusEmail(order.ID, order.Status)
	return order, nil
}

// AutoCancelExpired 批量取消超时未确认的待处理订单,返回取消数量。
func (s *OrderService) AutoCancelExpired(limit int) (int, error) {
	minutes, err := s.autoCancelMinutes()
	if err != nil {
		return 0, err
	}
	if minutes <= 0 {
		return 0, nil
	}
	deadline := time.Now().Add(-time.Duration(minutes) * time.Minute)
	orders, err := s.orderRepo.ListStalePending(deadline, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}

	cancelled := 0
	for i := range orders {
		order := &orders[i]
		if err := s.cancelOrderTx(order, constants.ActorRoleSystem, nil, cancelNoteAutoTimeout); err != nil {
			logger.Warnw("order_auto_cancel_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err.Error(),
			)
			continue
		}
		cancelled++
		s.enqueueOrderStatusEmail(order.ID, order.Status)
	}
	return cancelled, nil
}

// cancelOrderTx 在单事务内落库取消状态、追加历史并回补库存。
func (s *OrderService) cancelOrderTx(order *models.Order, actorRole string, actorID *uint, reason string) error {
	now := time.Now()
	previous := order.Status
	history := &models.OrderStatusHistory{
		OrderID:        order.ID,
		PreviousStatus: &previous,
		NewStatus:      constants.OrderStatusCancelled,
		ActorRole:      actorRole,
		ActorID:        actorID,
		Note:           reason,
	}
	updates := map[string]interface{}{
		"cancelled_at": now,
	}
	if reason != "" {
		updates["cancel_reason"] = reason
	}

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		txOrderRepo := s.orderRepo.WithTx(tx)
		if err := txOrderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
			return err
		}
		if err := txOrderRepo.AppendHistory(history); err != nil {
			return err
		}
		return s.restoreOrderStock(tx, order)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}

	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	if reason != "" {
		order.CancelReason = reason
	}
	order.StatusHistory = append(order.StatusHistory, *history)
	return nil
}

// restoreOrderStock 按订单项回补库存,订单项缺失时现查一次。
func (s *OrderService) restoreOrderStock(tx *gorm.DB, order *models.Order) error {
	items := order.Items
	if len(items) == 0 {
		loaded, err := s.orderRepo.WithTx(tx).GetByID(order.ID)
		if err != nil {
			return err
		}
		if loaded != nil {
			items = loaded.Items
		}
	}
	txProductRepo := s.productRepo.WithTx(tx)
	for _, item := range items {
		if _, err := txProductRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) autoCancelMinutes() (int, error) {
	defaultMinutes := 30
	if s.cfg != nil && s.cfg.Order.AutoCancelMinutes > 0 {
		defaultMinutes = s.cfg.Order.AutoCancelMinutes
	}
	return s.settingService.GetOrderAutoCancelMinutes(defaultMinutes)
}

// generateOrderNo 生成订单号,碰撞时重试。
func (s *OrderService) generateOrderNo() (string, error) {
	for attempt := 0; attempt < orderNoMaxAttempts; attempt++ {
		suffix, err := randomNumericCode(orderNoRandomDigits)
		if err != nil {
			return "", err
		}
		orderNo := orderNoPrefix + time.Now().Format("20060102150405") + suffix
		count, err := s.orderRepo.CountByOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return orderNo, nil
		}
	}
	return "", fmt.Errorf("order no generation exhausted after %d attempts", orderNoMaxAttempts)
}

// enqueueOrderStatusEmail 推送状态邮件任务,失败只记录日志不影响主流程。
func (s *OrderService) enqueueOrderStatusEmail(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	_, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, orderID, status)
	if err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", orderID,
			"status", status,
			"error", err.Error(),
		)
	}
}

// enqueueOrderAutoCancel 推送延时取消任务,失败依赖读取路径的惰性兜底。
func (s *OrderService) enqueueOrderAutoCancel(orderID uint) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	minutes, err := s.autoCancelMinutes()
	if err != nil || minutes <= 0 {
		return
	}
	err = s.queueClient.EnqueueOrderAutoCancel(queue.OrderAutoCancelPayload{OrderID: orderID}, time.Duration(minutes)*time.Minute)
	if err != nil {
		logger.Warnw("order_enqueue_auto_cancel_failed",
			"order_id", orderID,
			"error", err.Error(),
		)
	}
}

// notifyLowStock 下单后检测低库存水位并推送提醒任务。
func (s *OrderService) notifyLowStock(productByID map[uint]*models.Product, items []models.OrderItem) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	for _, item := range items {
		product, ok := productByID[item.ProductID]
		if !ok || product.LowStockAlert <= 0 {
			continue
		}
		remaining := product.StockQuantity - item.Quantity
		if remaining > product.LowStockAlert {
			continue
		}
		err := s.queueClient.EnqueueLowStockNotify(queue.LowStockNotifyPayload{ProductID: item.ProductID})
		if err != nil {
			logger.Warnw("product_enqueue_low_stock_failed",
				"product_id", item.ProductID,
				"error", err.Error(),
			)
		}
	}
}
