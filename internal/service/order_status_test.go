package service

import (
	"testing"

	"github.com/cedarmart-next/internal/constants"
)

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusRefunded, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusProcessing, constants.OrderStatusReturned, false},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusReturned, true},
		{constants.OrderStatusShipped, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusDelivered, constants.OrderStatusRefunded, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusRefunded, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusReturned, constants.OrderStatusShipped, false},
	}
	for _, tt := range tests {
		if got := isTransitionAllowed(tt.from, tt.to); got != tt.want {
			t.Fatalf("isTransitionAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTransitionAllowedRejectsSameStatus(t *testing.T) {
	for _, status := range constants.OrderStatuses {
		if isTransitionAllowed(status, status) {
			t.Fatalf("expected same-status transition to be rejected for %s", status)
		}
	}
}

func TestIsCancelableStatus(t *testing.T) {
	cancelable := map[string]bool{
		constants.OrderStatusPending:   true,
		constants.OrderStatusConfirmed: true,
	}
	for _, status := range constants.OrderStatuses {
		if got := isCancelableStatus(status); got != cancelable[status] {
			t.Fatalf("isCancelableStatus(%s) = %v, want %v", status, got, cancelable[status])
		}
	}
}

func TestIsStockReleasingStatus(t *testing.T) {
	releasing := map[string]bool{
		constants.OrderStatusCancelled: true,
		constants.OrderStatusRefunded:  true,
		constants.OrderStatusReturned:  true,
	}
	for _, status := range constants.OrderStatuses {
		if got := isStockReleasingStatus(status); got != releasing[status] {
			t.Fatalf("isStockReleasingStatus(%s) = %v, want %v", status, got, releasing[status])
		}
	}
}

func TestTerminalStatusesHaveNoOutgoingTransitions(t *testing.T) {
	for _, status := range constants.OrderStatuses {
		if !constants.IsTerminalOrderStatus(status) {
			continue
		}
		if _, ok := allowedTransitions[status]; ok {
			t.Fatalf("expected terminal status %s to have no outgoing transitions", status)
		}
	}
}
