package service

import (
	"github.com/shafe/handcraft/internal/repository"
)

// allowedTransitions is the order lifecycle. Payment moves an order
// from pending to paid or failed, fulfilment walks paid through
// processing, shipped and delivered. Only a pending order can still be
// cancelled by the buyer.
var allowedTransitions = map[repository.OrderStatus][]repository.OrderStatus{
	repository.OrderStatusPending:    {repository.OrderStatusPaid, repository.OrderStatusCancelled, repository.OrderStatusFailed},
	repository.OrderStatusPaid:       {repository.OrderStatusProcessing},
	repository.OrderStatusProcessing: {repository.OrderStatusShipped},
	repository.OrderStatusShipped:    {repository.OrderStatusDelivered},
}

// CanTransition reports whether an order may move between the two
// states.
func CanTransition(from, to repository.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
