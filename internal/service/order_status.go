package service

import (
	"strings"

	"github.com/cedarmart-next/internal/constants"
)

// allowedTransitions 订单状态流转表,键为当前状态,值为允许的目标状态集合
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
		constants.OrderStatusRefunded:   true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
		constants.OrderStatusRefunded:  true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusReturned:  true,
		constants.OrderStatusRefunded:  true,
	},
}

// isTransitionAllowed 判断订单状态流转是否允许,相同状态不构成流转
func isTransitionAllowed(from, to string) bool {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" || from == to {
		return false
	}
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// isCancelableStatus 判断客户侧是否允许取消该状态的订单
func isCancelableStatus(status string) bool {
	return status == constants.OrderStatusPending || status == constants.OrderStatusConfirmed
}

// isStockReleasingStatus 判断进入该状态时是否需要回补库存
func isStockReleasingStatus(status string) bool {
	switch status {
	case constants.OrderStatusCancelled, constants.OrderStatusRefunded, constants.OrderStatusReturned:
		return true
	default:
		return false
	}
}
