package queue

import (
	"encoding/json"

	"github.com/cedarmart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOrderAutoCancel 待支付订单超时取消任务
	TaskOrderAutoCancel = constants.TaskOrderAutoCancel
	// TaskLowStockNotify 低库存提醒任务
	TaskLowStockNotify = constants.TaskLowStockNotify
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderAutoCancelPayload 超时取消任务载荷
type OrderAutoCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// LowStockNotifyPayload 低库存提醒任务载荷
type LowStockNotifyPayload struct {
	ProductID uint `json:"product_id"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewOrderAutoCancelTask 创建订单超时取消任务
func NewOrderAutoCancelTask(payload OrderAutoCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAutoCancel, body), nil
}

// NewLowStockNotifyTask 创建低库存提醒任务
func NewLowStockNotifyTask(payload LowStockNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockNotify, body), nil
}
