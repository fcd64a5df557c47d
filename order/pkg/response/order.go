package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shafe/handcraft/cart/pkg/request"
)

type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	PaymentRef      string          `json:"payment_ref,omitempty"`
	ShippingAddress string          `json:"shipping_address"`
	OrderItems      []OrderItem     `json:"order_items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID           uuid.UUID             `json:"id"`
	OrderID      uuid.UUID             `json:"order_id"`
	ProductID    *uuid.UUID            `json:"product_id,omitempty"`
	Quantity       int32                 `json:"quantity"`
	Price          decimal.Decimal       `json:"price"`
	SpecialRequest string                `json:"special_request,omitempty"`
	CustomDesign   *request.CustomDesign `json:"custom_design,omitempty"`
}

// Checkout carries the freshly created order together with the gateway
// redirect the buyer must follow to pay for it.
type Checkout struct {
	Order      Order  `json:"order"`
	PaymentURL string `json:"payment_url"`
}
