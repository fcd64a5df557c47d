package request

import "github.com/google/uuid"

type Checkout struct {
	ShippingAddress string `validate:"required" json:"shipping_address"`
}

type UpdateOrderStatus struct {
	Status string `validate:"required,oneof=pending paid processing shipped delivered cancelled failed" json:"status"`
}

// PaymentNotification is the instant payment notification posted back
// by the gateway after the buyer completes or abandons a payment.
type PaymentNotification struct {
	OrderID       uuid.UUID `validate:"required"       json:"order_id"`
	TransactionID string    `validate:"required"       json:"tran_id"`
	ValidationID  string    `validate:"required"       json:"val_id"`
	Status        string    `validate:"required"       json:"status"`
	Amount        string    `                          json:"amount"`
}
