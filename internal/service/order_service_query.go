package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"
)

// OrderQueryFilter 客户侧订单查询条件
type OrderQueryFilter struct {
	Page     int
	PageSize int
	Status   string
	OrderNo  string
}

// AdminOrderQueryFilter 管理端订单查询条件
type AdminOrderQueryFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ensureOrderCancelledIfExpired 读取时懒同步超时未确认订单,
// 队列任务丢失时由该路径兜底。
func (s *OrderService) ensureOrderCancelledIfExpired(order *models.Order) error {
	if order == nil {
		return nil
	}
	if order.Status != constants.OrderStatusPending {
		return nil
	}
	minutes, err := s.autoCancelMinutes()
	if err != nil {
		return err
	}
	if minutes <= 0 {
		return nil
	}
	deadline := order.CreatedAt.Add(time.Duration(minutes) * time.Minute)
	if deadline.After(time.Now()) {
		return nil
	}
	if err := s.cancelOrderTx(order, constants.ActorRoleSystem, nil, cancelNoteAutoTimeout); err != nil {
		return err
	}
	s.enqueueOrderStatusEmail(order.ID, order.Status)
	return nil
}

// ensureOrdersCancelledIfExpired 批量懒同步超时订单
func (s *OrderService) ensureOrdersCancelledIfExpired(orders []models.Order) error {
	for i := range orders {
		if err := s.ensureOrderCancelledIfExpired(&orders[i]); err != nil {
			return err
		}
	}
	return nil
}

// CancelExpiredOrder 针对单个订单执行超时取消,供队列延时任务调用。
// 订单已不处于待确认状态时直接返回当前订单。
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.ensureOrderCancelledIfExpired(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.ensureOrderCancelledIfExpired(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByOrderNoAndUser 按订单号获取用户订单详情
func (s *OrderService) GetOrderByOrderNoAndUser(orderNo string, userID uint) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.ensureOrderCancelledIfExpired(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderAdmin 管理端获取订单详情
func (s *OrderService) GetOrderAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.ensureOrderCancelledIfExpired(order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrdersByUser 分页获取用户订单
func (s *OrderService) ListOrdersByUser(userID uint, filter OrderQueryFilter) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUserNotFound
	}
	status := strings.TrimSpace(filter.Status)
	if status != "" && !constants.IsValidOrderStatus(status) {
		return nil, 0, ErrOrderStatusInvalid
	}

	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		UserID:   userID,
		Status:   status,
		OrderNo:  strings.TrimSpace(filter.OrderNo),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if err := s.ensureOrdersCancelledIfExpired(orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListOrdersAdmin 管理端分页检索订单
func (s *OrderService) ListOrdersAdmin(filter AdminOrderQueryFilter) ([]models.Order, int64, error) {
	status := strings.TrimSpace(filter.Status)
	if status != "" && !constants.IsValidOrderStatus(status) {
		return nil, 0, ErrOrderStatusInvalid
	}

	orders, total, err := s.orderRepo.ListAdmin(repository.OrderListFilter{
		Page:        filter.Page,
		PageSize:    filter.PageSize,
		UserID:      filter.UserID,
		Status:      status,
		OrderNo:     strings.TrimSpace(filter.OrderNo),
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if err := s.ensureOrdersCancelledIfExpired(orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListOrderHistory 获取订单状态历史,客户侧要求订单归属校验
func (s *OrderService) ListOrderHistory(orderID uint, userID uint, isAdmin bool) ([]models.OrderStatusHistory, error) {
	if !isAdmin {
		order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
	}
	history, err := s.orderRepo.ListHistory(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return history, nil
}
