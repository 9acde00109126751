package billing

import (
	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Totals holds the derived amounts for a document, rounded to two
// decimal places half-up. Accumulation happens unrounded; rounding
// is applied once when the struct is materialized.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	AmountDue      decimal.Decimal `json:"amount_due"`
}

var hundred = decimal.NewFromInt(100)

// Compute derives totals from line items and the selected rates.
// Tax and discount rates are percentages; a nil rate counts as zero.
// The function never fails: bad state degrades to zero amounts.
//
// Taxable base: rows with the taxable flag set; when no row sets the
// flag the whole subtotal is taxable. Same rule for the discountable
// base. This keeps a plain document-level tax selection working while
// making per-row flags meaningful.
func Compute(items []models.LineItem, taxRate, discountRate *decimal.Decimal) Totals {
	subtotal := decimal.Zero
	taxableBase := decimal.Zero
	discountableBase := decimal.Zero
	paid := decimal.Zero
	anyTaxable := false
	anyDiscountable := false

	for _, li := range items {
		rowTotal := li.Total()
		subtotal = subtotal.Add(rowTotal)
		if li.Taxable {
			anyTaxable = true
			taxableBase = taxableBase.Add(rowTotal)
		}
		if li.Discountable {
			anyDiscountable = true
			discountableBase = discountableBase.Add(rowTotal)
		}
		if li.Paid {
			paid = paid.Add(rowTotal)
		}
	}

	if !anyTaxable {
		taxableBase = subtotal
	}
	if !anyDiscountable {
		discountableBase = subtotal
	}

	tax := decimal.Zero
	if taxRate != nil && taxRate.IsPositive() {
		tax = taxableBase.Mul(*taxRate).Div(hundred)
	}
	discount := decimal.Zero
	if discountRate != nil && discountRate.IsPositive() {
		discount = discountableBase.Mul(*discountRate).Div(hundred)
	}

	total := subtotal.Add(tax).Sub(discount)
	due := total.Sub(paid)

	return Totals{
		Subtotal:       subtotal.Round(2),
		TaxAmount:      tax.Round(2),
		DiscountAmount: discount.Round(2),
		Total:          total.Round(2),
		AmountPaid:     paid.Round(2),
		AmountDue:      due.Round(2),
	}
}
