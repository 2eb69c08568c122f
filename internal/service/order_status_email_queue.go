package service

import (
	"strings"

	"github.com/cedarmart-next/internal/queue"
	"github.com/cedarmart-next/internal/repository"
)

// enqueueOrderStatusEmailTaskIfEligible 根据订单接收邮箱决定是否入队状态邮件任务。
// 返回值 skipped 表示任务被策略跳过（例如用户没有可用邮箱）。
func enqueueOrderStatusEmailTaskIfEligible(orderRepo repository.OrderRepository, queueClient *queue.Client, orderID uint, status string) (skipped bool, err error) {
	if queueClient == nil || orderID == 0 {
		return true, nil
	}

	if orderRepo != nil {
		receiverEmail, lookupErr := orderRepo.ResolveReceiverEmailByOrderID(orderID)
		if lookupErr == nil && strings.TrimSpace(receiverEmail) == "" {
			return true, nil
		}
	}

	if err := queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}
