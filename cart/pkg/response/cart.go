package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shafe/handcraft/cart/pkg/request"
	catalogResponse "github.com/shafe/handcraft/catalog/pkg/response"
)

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CartItems []CartItem `json:"cart_items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID             uuid.UUID             `json:"id"`
	CartID         uuid.UUID             `json:"cart_id"`
	ProductID      *uuid.UUID            `json:"product_id,omitempty"`
	Quantity       int32                 `json:"quantity"`
	Price          decimal.Decimal       `json:"price"`
	SpecialRequest string                `json:"special_request,omitempty"`
	CustomDesign   *request.CustomDesign `json:"custom_design,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type Wishlist struct {
	ID       uuid.UUID                 `json:"id"`
	UserID   uuid.UUID                 `json:"user_id"`
	Products []catalogResponse.Product `json:"products"`
}
