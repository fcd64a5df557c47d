package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	adminResponse "github.com/shafe/handcraft/admin/pkg/response"
	cartRequest "github.com/shafe/handcraft/cart/pkg/request"
	cartResponse "github.com/shafe/handcraft/cart/pkg/response"
	catalogResponse "github.com/shafe/handcraft/catalog/pkg/response"
	channelResponse "github.com/shafe/handcraft/channel/pkg/response"
	orderResponse "github.com/shafe/handcraft/order/pkg/response"
	userResponse "github.com/shafe/handcraft/user/pkg/response"
)

// NumericToDecimal converts a postgres numeric into a decimal value.
// Invalid numerics map to the zero decimal.
func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Decimal{}
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// DecimalToNumeric converts a decimal value into a postgres numeric.
func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func nullUUIDPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsBlocked: u.IsBlocked,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
}

func (p Product) Response() catalogResponse.Product {
	return catalogResponse.Product{
		ID:          p.ID,
		CategoryID:  nullUUIDPtr(p.CategoryID),
		Name:        p.Name,
		Description: p.Description,
		Price:       NumericToDecimal(p.Price),
		Quantity:    p.Quantity,
		ImageUrl:    p.ImageUrl,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (c Category) Response() catalogResponse.Category {
	return catalogResponse.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Time,
		UpdatedAt:   c.UpdatedAt.Time,
	}
}

func (ci CartItem) Response() (cartResponse.CartItem, error) {
	item := cartResponse.CartItem{
		ID:             ci.ID,
		CartID:         ci.CartID,
		ProductID:      nullUUIDPtr(ci.ProductID),
		Quantity:       ci.Quantity,
		Price:          NumericToDecimal(ci.Price),
		SpecialRequest: ci.SpecialRequest,
		CreatedAt:      ci.CreatedAt.Time,
		UpdatedAt:      ci.UpdatedAt.Time,
	}
	if len(ci.CustomDesign) > 0 {
		design := cartRequest.CustomDesign{}
		if err := json.Unmarshal(ci.CustomDesign, &design); err != nil {
			return cartResponse.CartItem{}, fmt.Errorf("failed unmarshaling custom design of cart item=%s with error=%w", ci.ID, err)
		}
		item.CustomDesign = &design
	}
	return item, nil
}

func (o Order) Response(items []orderResponse.OrderItem) orderResponse.Order {
	return orderResponse.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           NumericToDecimal(o.Total),
		PaymentRef:      o.PaymentRef,
		ShippingAddress: o.ShippingAddress,
		OrderItems:      items,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
	}
}

func (oi OrderItem) Response() (orderResponse.OrderItem, error) {
	item := orderResponse.OrderItem{
		ID:             oi.ID,
		OrderID:        oi.OrderID,
		ProductID:      nullUUIDPtr(oi.ProductID),
		Quantity:       oi.Quantity,
		Price:          NumericToDecimal(oi.Price),
		SpecialRequest: oi.SpecialRequest,
	}
	if len(oi.CustomDesign) > 0 {
		design := cartRequest.CustomDesign{}
		if err := json.Unmarshal(oi.CustomDesign, &design); err != nil {
			return orderResponse.OrderItem{}, fmt.Errorf("failed unmarshaling custom design of order item=%s with error=%w", oi.ID, err)
		}
		item.CustomDesign = &design
	}
	return item, nil
}

func (p Post) Response(likes int64) channelResponse.Post {
	return channelResponse.Post{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		ImageUrl:  p.ImageUrl,
		Hidden:    p.Hidden,
		Likes:     likes,
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (c Comment) Response() channelResponse.Comment {
	return channelResponse.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Time,
	}
}

func (e Expense) Response() adminResponse.Expense {
	return adminResponse.Expense{
		ID:         e.ID,
		Label:      e.Label,
		Amount:     NumericToDecimal(e.Amount),
		IncurredAt: e.IncurredAt.Time,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt.Time,
	}
}

func (s Subscription) Response() adminResponse.Subscription {
	return adminResponse.Subscription{
		ID:        s.ID,
		UserID:    s.UserID,
		Plan:      s.Plan,
		Status:    s.Status,
		ExpiresAt: s.ExpiresAt.Time,
		CreatedAt: s.CreatedAt.Time,
	}
}
