package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shafe/handcraft/internal/repository"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    repository.OrderStatus
		to      repository.OrderStatus
		allowed bool
	}{
		{name: "PendingToPaid", from: repository.OrderStatusPending, to: repository.OrderStatusPaid, allowed: true},
		{name: "PendingToCancelled", from: repository.OrderStatusPending, to: repository.OrderStatusCancelled, allowed: true},
		{name: "PendingToFailed", from: repository.OrderStatusPending, to: repository.OrderStatusFailed, allowed: true},
		{name: "PaidToProcessing", from: repository.OrderStatusPaid, to: repository.OrderStatusProcessing, allowed: true},
		{name: "ProcessingToShipped", from: repository.OrderStatusProcessing, to: repository.OrderStatusShipped, allowed: true},
		{name: "ShippedToDelivered", from: repository.OrderStatusShipped, to: repository.OrderStatusDelivered, allowed: true},
		{name: "PendingToShipped", from: repository.OrderStatusPending, to: repository.OrderStatusShipped, allowed: false},
		{name: "PaidToCancelled", from: repository.OrderStatusPaid, to: repository.OrderStatusCancelled, allowed: false},
		{name: "DeliveredToPending", from: repository.OrderStatusDelivered, to: repository.OrderStatusPending, allowed: false},
		{name: "CancelledToPaid", from: repository.OrderStatusCancelled, to: repository.OrderStatusPaid, allowed: false},
		{name: "PaidToPaid", from: repository.OrderStatusPaid, to: repository.OrderStatusPaid, allowed: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.allowed, CanTransition(test.from, test.to))
		})
	}
}
