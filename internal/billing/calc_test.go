package billing

import (
	"testing"

	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func row(qty int, price string) models.LineItem {
	return models.LineItem{Quantity: qty, UnitPrice: dec(price)}
}

func assertEq(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func TestComputeEmptyList(t *testing.T) {
	totals := Compute(nil, nil, nil)

	assertEq(t, "subtotal", totals.Subtotal, dec("0"))
	assertEq(t, "total", totals.Total, dec("0"))
	assertEq(t, "amount due", totals.AmountDue, dec("0"))
}

func TestComputeSubtotalNoRates(t *testing.T) {
	items := []models.LineItem{
		row(1, "1746.00"),
		row(2, "129.00"),
	}

	totals := Compute(items, nil, nil)

	assertEq(t, "subtotal", totals.Subtotal, dec("2004.00"))
	assertEq(t, "total", totals.Total, dec("2004.00"))
	assertEq(t, "tax", totals.TaxAmount, dec("0"))
	assertEq(t, "discount", totals.DiscountAmount, dec("0"))
}

func TestComputeTaxAndDiscountOnFullSubtotal(t *testing.T) {
	// subtotal 2000.00, tax 10%, discount 2.5%
	items := []models.LineItem{
		row(4, "500.00"),
	}
	tax := dec("10")
	discount := dec("2.5")

	totals := Compute(items, &tax, &discount)

	assertEq(t, "subtotal", totals.Subtotal, dec("2000.00"))
	assertEq(t, "tax", totals.TaxAmount, dec("200.00"))
	assertEq(t, "discount", totals.DiscountAmount, dec("50.00"))
	assertEq(t, "total", totals.Total, dec("2150.00"))
}

func TestComputeAmountDueWithPaidRows(t *testing.T) {
	// 2150.00 total with 500.00 already paid across three rows
	items := []models.LineItem{
		{Quantity: 1, UnitPrice: dec("200.00"), Paid: true},
		{Quantity: 2, UnitPrice: dec("100.00"), Paid: true},
		{Quantity: 1, UnitPrice: dec("100.00"), Paid: true},
		{Quantity: 1, UnitPrice: dec("1650.00")},
	}

	totals := Compute(items, nil, nil)

	assertEq(t, "total", totals.Total, dec("2150.00"))
	assertEq(t, "amount paid", totals.AmountPaid, dec("500.00"))
	assertEq(t, "amount due", totals.AmountDue, dec("1650.00"))
}

func TestComputeRowLevelTaxableFlags(t *testing.T) {
	// Only the flagged row contributes to the taxable base
	items := []models.LineItem{
		{Quantity: 1, UnitPrice: dec("100.00"), Taxable: true},
		{Quantity: 1, UnitPrice: dec("900.00")},
	}
	tax := dec("10")

	totals := Compute(items, &tax, nil)

	assertEq(t, "subtotal", totals.Subtotal, dec("1000.00"))
	assertEq(t, "tax", totals.TaxAmount, dec("10.00"))
	assertEq(t, "total", totals.Total, dec("1010.00"))
}

func TestComputeNoFlagsMeansWholeSubtotalTaxable(t *testing.T) {
	items := []models.LineItem{
		row(1, "100.00"),
		row(1, "900.00"),
	}
	tax := dec("10")

	totals := Compute(items, &tax, nil)

	assertEq(t, "tax", totals.TaxAmount, dec("100.00"))
	assertEq(t, "total", totals.Total, dec("1100.00"))
}

func TestComputeRoundsOnlyAtOutput(t *testing.T) {
	// 0.333 * 3 rows accumulates to 0.999 exactly; a naive per-row
	// 2-decimal rounding would give 0.99
	items := []models.LineItem{
		row(1, "0.333"),
		row(1, "0.333"),
		row(1, "0.333"),
	}

	totals := Compute(items, nil, nil)

	assertEq(t, "subtotal", totals.Subtotal, dec("1.00"))
}

func TestComputeHalfUpRounding(t *testing.T) {
	items := []models.LineItem{row(1, "10.005")}

	totals := Compute(items, nil, nil)

	assertEq(t, "subtotal", totals.Subtotal, dec("10.01"))
}

func TestComputeZeroRateTreatedAsAbsent(t *testing.T) {
	items := []models.LineItem{row(1, "100.00")}
	zero := dec("0")

	totals := Compute(items, &zero, &zero)

	assertEq(t, "tax", totals.TaxAmount, dec("0"))
	assertEq(t, "discount", totals.DiscountAmount, dec("0"))
	assertEq(t, "total", totals.Total, dec("100.00"))
}

func TestComputeManyRowsNoFloatDrift(t *testing.T) {
	// 1000 rows of 0.10 must sum to exactly 100.00
	var items []models.LineItem
	for i := 0; i < 1000; i++ {
		items = append(items, row(1, "0.10"))
	}

	totals := Compute(items, nil, nil)

	assertEq(t, "subtotal", totals.Subtotal, dec("100.00"))
}
