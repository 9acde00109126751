package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line item categories
const (
	CategoryLabor = "labor"
	CategoryParts = "parts"
	CategoryOther = "other"
)

// ValidCategory reports whether c is a known line item category
func ValidCategory(c string) bool {
	switch c {
	case CategoryLabor, CategoryParts, CategoryOther:
		return true
	}
	return false
}

// Item is a catalog entry selectable into a document row
type Item struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Taxable     bool            `json:"taxable"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateItemRequest represents the request body for creating a catalog item
type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Taxable     bool            `json:"taxable"`
}

// Rate kinds. Tax and discount rates are percentages; labor and
// other-charge rates are flat amounts.
const (
	RateKindTax         = "tax"
	RateKindDiscount    = "discount"
	RateKindLabor       = "labor"
	RateKindOtherCharge = "other_charge"
)

// ValidRateKind reports whether k is a known rate kind
func ValidRateKind(k string) bool {
	switch k {
	case RateKindTax, RateKindDiscount, RateKindLabor, RateKindOtherCharge:
		return true
	}
	return false
}

// Rate is a named tax/discount percentage or labor/other-charge flat amount
type Rate struct {
	ID        int             `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateRateRequest represents the request body for creating a rate
type CreateRateRequest struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}
