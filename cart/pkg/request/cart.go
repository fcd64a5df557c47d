package request

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shafe/handcraft/internal/errors"
)

// MaxDesignImageBytes caps the encoded image payload of a custom design.
const MaxDesignImageBytes = 10 << 20

// Selection is a named design option with a price multiplier, e.g. a
// material or a size picked in the design studio.
type Selection struct {
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// CustomDesign is the buyer-authored payload attached to a cart item
// created in the design studio. It travels verbatim between the client
// and the server and is stored as a JSON document.
type CustomDesign struct {
	Name          string                     `json:"name"`
	Price         decimal.Decimal            `json:"price"`
	Image         string                     `json:"image"`
	DesignData    string                     `json:"design_data,omitempty"`
	Material      Selection                  `json:"material"`
	Size          Selection                  `json:"size"`
	Pricing       map[string]decimal.Decimal `json:"pricing,omitempty"`
	Specification map[string]string          `json:"specification,omitempty"`
}

// Validate checks the design against the submission rules. The image
// must be an inline base64 data URI and stay under MaxDesignImageBytes.
func (d CustomDesign) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.ErrDesignNameBlank
	}
	if !d.Price.IsPositive() {
		return errors.ErrDesignBadPrice
	}
	if !strings.HasPrefix(d.Image, "data:image/") || !strings.Contains(d.Image, ";base64,") {
		return errors.ErrDesignBadImage
	}
	if len(d.Image) > MaxDesignImageBytes {
		return errors.ErrDesignImageSize
	}
	return nil
}

type InsertCartItem struct {
	ProductId      *uuid.UUID      `validate:"omitempty,uuid" json:"product_id"`
	Quantity       int32           `validate:"required,gte=1" json:"quantity"`
	Price          decimal.Decimal `validate:"required"       json:"price"`
	SpecialRequest string          `                          json:"special_request"`
	CustomDesign   *CustomDesign   `                          json:"custom_design"`
}

type UpdateCartItem struct {
	Quantity int32 `json:"quantity"`
}

type InsertWishlistItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"product_id"`
}
