package models

import "github.com/shopspring/decimal"

// LineItem is one billable row of an estimate or invoice.
// RowID is assigned by the editing session counter and stays stable
// across removals; it is unrelated to the database id.
type LineItem struct {
	RowID        int             `json:"row_id"`
	Category     string          `json:"category"`
	ItemID       *int            `json:"item_id,omitempty"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Taxable      bool            `json:"taxable"`
	Discountable bool            `json:"discountable"`
	Paid         bool            `json:"paid"`
}

// Total returns quantity × unit price, unrounded
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItemInput is the request shape for a document row
type LineItemInput struct {
	Category     string          `json:"category"`
	ItemID       *int            `json:"item_id"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Taxable      bool            `json:"taxable"`
	Discountable bool            `json:"discountable"`
	Paid         bool            `json:"paid"`
}
