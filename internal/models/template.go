package models

import "time"

// Layout variants. A variant changes structural arrangement only;
// which fields appear is controlled by the toggles below.
const (
	LayoutImpact  = "impact"
	LayoutClassic = "classic"
	LayoutMinimal = "minimal"
	LayoutModern  = "modern"
)

// ValidLayout reports whether l is a known layout variant
func ValidLayout(l string) bool {
	switch l {
	case LayoutImpact, LayoutClassic, LayoutMinimal, LayoutModern:
		return true
	}
	return false
}

// CustomerToggles gate the customer block of a rendered document
type CustomerToggles struct {
	ContactName     bool `json:"contact_name"`
	Email           bool `json:"email"`
	Phone           bool `json:"phone"`
	BillingAddress  bool `json:"billing_address"`
	ShippingAddress bool `json:"shipping_address"`
	AccountNumber   bool `json:"account_number"`
}

// HeaderToggles gate the document header fields
type HeaderToggles struct {
	PONumber     bool `json:"po_number"`
	SalesRep     bool `json:"sales_rep"`
	DocumentDate bool `json:"document_date"`
	DueDate      bool `json:"due_date"`
}

// ItemToggles gate the line item table columns
type ItemToggles struct {
	Quantity  bool `json:"quantity"`
	UnitPrice bool `json:"unit_price"`
	RowTotal  bool `json:"row_total"`
}

// CalculationToggles gate the totals rows
type CalculationToggles struct {
	Subtotal   bool `json:"subtotal"`
	Tax        bool `json:"tax"`
	Discount   bool `json:"discount"`
	AmountPaid bool `json:"amount_paid"`
	AmountDue  bool `json:"amount_due"`
}

// Template is a named combination of visual layout, branding and
// field-visibility configuration used to render a document
type Template struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	LogoKey     string             `json:"logo_key"`
	AccentColor string             `json:"accent_color"`
	Layout      string             `json:"layout"`
	IsDefault   bool               `json:"is_default"`
	Customer    CustomerToggles    `json:"customer_fields"`
	Header      HeaderToggles      `json:"header_fields"`
	Items       ItemToggles        `json:"item_fields"`
	Calculation CalculationToggles `json:"calculation_fields"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// DefaultTemplate returns the built-in configuration used when no
// template has been saved yet
func DefaultTemplate() *Template {
	return &Template{
		Name:        "Standard",
		AccentColor: "#1f2937",
		Layout:      LayoutClassic,
		IsDefault:   true,
		Customer: CustomerToggles{
			ContactName:    true,
			Email:          true,
			Phone:          true,
			BillingAddress: true,
		},
		Header: HeaderToggles{
			PONumber:     true,
			DocumentDate: true,
			DueDate:      true,
		},
		Items: ItemToggles{
			Quantity:  true,
			UnitPrice: true,
			RowTotal:  true,
		},
		Calculation: CalculationToggles{
			Subtotal:  true,
			Tax:       true,
			Discount:  true,
			AmountDue: true,
		},
	}
}

// CreateTemplateRequest represents the request body for creating a template
type CreateTemplateRequest struct {
	Name        string             `json:"name"`
	LogoKey     string             `json:"logo_key"`
	AccentColor string             `json:"accent_color"`
	Layout      string             `json:"layout"`
	IsDefault   bool               `json:"is_default"`
	Customer    CustomerToggles    `json:"customer_fields"`
	Header      HeaderToggles      `json:"header_fields"`
	Items       ItemToggles        `json:"item_fields"`
	Calculation CalculationToggles `json:"calculation_fields"`
}

// UpdateTemplateRequest represents the request body for updating a template
type UpdateTemplateRequest struct {
	Name        string             `json:"name"`
	LogoKey     string             `json:"logo_key"`
	AccentColor string             `json:"accent_color"`
	Layout      string             `json:"layout"`
	Customer    CustomerToggles    `json:"customer_fields"`
	Header      HeaderToggles      `json:"header_fields"`
	Items       ItemToggles        `json:"item_fields"`
	Calculation CalculationToggles `json:"calculation_fields"`
}
