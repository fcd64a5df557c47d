package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	CategoryId  *uuid.UUID      `validate:"omitempty,uuid" json:"category_id"`
	Name        string          `validate:"required"       json:"name"`
	Description string          `                          json:"description"`
	Price       decimal.Decimal `validate:"required"       json:"price"`
	Quantity    int32           `validate:"gte=0"          json:"quantity"`
	ImageUrl    string          `                          json:"image_url"`
}

type Category struct {
	Name        string `validate:"required" json:"name"`
	Description string `                    json:"description"`
}

type FindProducts struct {
	CategoryId *uuid.UUID `json:"category_id"`
	Keyword    string     `json:"keyword"`
}
