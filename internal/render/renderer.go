package render

import (
	"fmt"
	"time"

	"garage-backend/internal/billing"
	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Target selects the output container. The preview tree is identical
// for every target; what you see on screen is what gets printed and
// what gets sent.
type Target string

const (
	TargetScreen Target = "screen"
	TargetPrint  Target = "print"
	TargetSend   Target = "send"
)

// ShopInfo is the issuing shop's letterhead block
type ShopInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// DocumentData is the deterministic input for rendering one document
type DocumentData struct {
	Type         string
	Number       string
	Status       string
	Date         time.Time
	DueDate      *time.Time
	PONumber     string
	SalesRep     string
	Notes        string
	Customer     *models.Customer
	Items        []models.LineItem
	Totals       billing.Totals
	TaxName      string
	TaxRate      *decimal.Decimal
	DiscountName string
	DiscountRate *decimal.Decimal
	Shop         ShopInfo
	LogoURL      string
}

// Field is one labeled value in the preview tree
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Preview is the structured document tree consumed by the screen
// view, the print output and the outbound send body
type Preview struct {
	Layout      string     `json:"layout"`
	AccentColor string     `json:"accent_color"`
	LogoURL     string     `json:"logo_url,omitempty"`
	Title       string     `json:"title"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	Shop        ShopInfo   `json:"shop"`
	Header      []Field    `json:"header"`
	Customer    []Field    `json:"customer"`
	Shipping    []Field    `json:"shipping,omitempty"`
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	TotalRows   []Field    `json:"total_rows"`
	Notes       string     `json:"notes,omitempty"`
}

// BuildPreview composes the document tree from a template
// configuration and document data. Pure: the same inputs always
// produce the same tree. Missing optional data is omitted, never an
// error.
func BuildPreview(tpl *models.Template, data DocumentData) Preview {
	p := Preview{
		Layout:      tpl.Layout,
		AccentColor: tpl.AccentColor,
		LogoURL:     data.LogoURL,
		Title:       documentTitle(data.Type),
		Number:      data.Number,
		Status:      data.Status,
		Shop:        data.Shop,
		Notes:       data.Notes,
	}

	p.Header = buildHeader(tpl.Header, data)
	if data.Customer != nil {
		p.Customer = buildCustomer(tpl.Customer, data.Customer)
		// Shipping block needs both the toggle and actual data
		if tpl.Customer.ShippingAddress && !data.Customer.Shipping.Empty() {
			p.Shipping = addressFields(data.Customer.Shipping)
		}
	}

	p.Columns, p.Rows = buildItemTable(tpl.Items, data.Items)
	p.TotalRows = buildTotals(tpl.Calculation, data)

	return p
}

func documentTitle(docType string) string {
	if docType == models.DocumentTypeEstimate {
		return "Estimate"
	}
	return "Invoice"
}

func buildHeader(toggles models.HeaderToggles, data DocumentData) []Field {
	var fields []Field
	if toggles.DocumentDate {
		fields = append(fields, Field{Label: "Date", Value: data.Date.Format("Jan 2, 2006")})
	}
	if toggles.DueDate && data.DueDate != nil {
		fields = append(fields, Field{Label: "Due Date", Value: data.DueDate.Format("Jan 2, 2006")})
	}
	if toggles.PONumber && data.PONumber != "" {
		fields = append(fields, Field{Label: "PO Number", Value: data.PONumber})
	}
	if toggles.SalesRep && data.SalesRep != "" {
		fields = append(fields, Field{Label: "Sales Rep", Value: data.SalesRep})
	}
	return fields
}

func buildCustomer(toggles models.CustomerToggles, c *models.Customer) []Field {
	fields := []Field{{Label: "Bill To", Value: c.DisplayName}}
	if toggles.ContactName && c.ContactName != "" {
		fields = append(fields, Field{Label: "Contact", Value: c.ContactName})
	}
	if toggles.Email && c.Email != "" {
		fields = append(fields, Field{Label: "Email", Value: c.Email})
	}
	if toggles.Phone && c.Phone != "" {
		fields = append(fields, Field{Label: "Phone", Value: c.Phone})
	}
	if toggles.BillingAddress && !c.Billing.Empty() {
		fields = append(fields, addressFields(c.Billing)...)
	}
	if toggles.AccountNumber && c.AccountNumber != "" {
		fields = append(fields, Field{Label: "Account #", Value: c.AccountNumber})
	}
	return fields
}

func addressFields(a models.Address) []Field {
	var fields []Field
	if a.Line1 != "" {
		fields = append(fields, Field{Label: "Address", Value: a.Line1})
	}
	if a.Line2 != "" {
		fields = append(fields, Field{Label: "", Value: a.Line2})
	}
	cityLine := a.City
	if a.State != "" {
		if cityLine != "" {
			cityLine += ", "
		}
		cityLine += a.State
	}
	if a.Zip != "" {
		if cityLine != "" {
			cityLine += " "
		}
		cityLine += a.Zip
	}
	if cityLine != "" {
		fields = append(fields, Field{Label: "", Value: cityLine})
	}
	return fields
}

func buildItemTable(toggles models.ItemToggles, items []models.LineItem) ([]string, [][]string) {
	columns := []string{"Description"}
	if toggles.Quantity {
		columns = append(columns, "Qty")
	}
	if toggles.UnitPrice {
		columns = append(columns, "Unit Price")
	}
	if toggles.RowTotal {
		columns = append(columns, "Amount")
	}

	rows := make([][]string, 0, len(items))
	for _, li := range items {
		row := []string{li.Description}
		if toggles.Quantity {
			row = append(row, fmt.Sprintf("%d", li.Quantity))
		}
		if toggles.UnitPrice {
			row = append(row, formatMoney(li.UnitPrice))
		}
		if toggles.RowTotal {
			row = append(row, formatMoney(li.Total().Round(2)))
		}
		rows = append(rows, row)
	}
	return columns, rows
}

func buildTotals(toggles models.CalculationToggles, data DocumentData) []Field {
	var fields []Field
	if toggles.Subtotal {
		fields = append(fields, Field{Label: "Subtotal", Value: formatMoney(data.Totals.Subtotal)})
	}
	if toggles.Tax && data.TaxRate != nil {
		label := "Tax"
		if data.TaxName != "" {
			label = fmt.Sprintf("Tax (%s %s%%)", data.TaxName, data.TaxRate.String())
		}
		fields = append(fields, Field{Label: label, Value: formatMoney(data.Totals.TaxAmount)})
	}
	if toggles.Discount && data.DiscountRate != nil {
		label := "Discount"
		if data.DiscountName != "" {
			label = fmt.Sprintf("Discount (%s %s%%)", data.DiscountName, data.DiscountRate.String())
		}
		fields = append(fields, Field{Label: label, Value: formatMoney(data.Totals.DiscountAmount)})
	}
	fields = append(fields, Field{Label: "Total", Value: formatMoney(data.Totals.Total)})
	if toggles.AmountPaid && data.Totals.AmountPaid.IsPositive() {
		fields = append(fields, Field{Label: "Amount Paid", Value: formatMoney(data.Totals.AmountPaid)})
	}
	if toggles.AmountDue && data.Type == models.DocumentTypeInvoice {
		fields = append(fields, Field{Label: "Amount Due", Value: formatMoney(data.Totals.AmountDue)})
	}
	return fields
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
