package render

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"garage-backend/internal/billing"
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

func sampleData() DocumentData {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	items := []models.LineItem{
		{RowID: 1, Description: "Engine diagnostics", Quantity: 1, UnitPrice: dec("1746.00")},
		{RowID: 2, Description: "Oil filter", Quantity: 2, UnitPrice: dec("129.00")},
	}
	return DocumentData{
		Type:    models.DocumentTypeInvoice,
		Number:  "INV-000042",
		Status:  models.InvoiceStatusSent,
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate: &due,
		Customer: &models.Customer{
			DisplayName: "Ravi Auto Works",
			Email:       "ravi@example.com",
			Phone:       "555-0100",
			Billing:     models.Address{Line1: "12 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		Items:  items,
		Totals: billing.Compute(items, nil, nil),
		Shop:   ShopInfo{Name: "Hilltop Garage", Phone: "555-0199"},
	}
}

func TestBuildPreviewDeterministic(t *testing.T) {
	tpl := models.DefaultTemplate()
	data := sampleData()

	a := BuildPreview(tpl, data)
	b := BuildPreview(tpl, data)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs produced different trees:\n%+v\n%+v", a, b)
	}
}

func TestBuildPreviewTogglesGateFields(t *testing.T) {
	tpl := models.DefaultTemplate()
	tpl.Items.UnitPrice = false
	tpl.Header.DueDate = false

	p := BuildPreview(tpl, sampleData())

	for _, col := range p.Columns {
		if col == "Unit Price" {
			t.Fatalf("unit price column present with toggle off: %v", p.Columns)
		}
	}
	for _, f := range p.Header {
		if f.Label == "Due Date" {
			t.Fatalf("due date present with toggle off: %+v", p.Header)
		}
	}
	// Row cells must track the column set
	if len(p.Rows[0]) != len(p.Columns) {
		t.Fatalf("row width %d != column count %d", len(p.Rows[0]), len(p.Columns))
	}
}

func TestBuildPreviewShippingNeedsToggleAndData(t *testing.T) {
	tpl := models.DefaultTemplate()
	tpl.Customer.ShippingAddress = true
	data := sampleData()

	// Toggle on, no shipping data: block omitted
	p := BuildPreview(tpl, data)
	if len(p.Shipping) != 0 {
		t.Fatalf("shipping block rendered without data: %+v", p.Shipping)
	}

	// Toggle on with data: block present
	data.Customer.Shipping = models.Address{Line1: "99 Depot Rd", City: "Springfield"}
	p = BuildPreview(tpl, data)
	if len(p.Shipping) == 0 {
		t.Fatal("shipping block missing with toggle and data both set")
	}

	// Data present but toggle off: block omitted
	tpl.Customer.ShippingAddress = false
	p = BuildPreview(tpl, data)
	if len(p.Shipping) != 0 {
		t.Fatalf("shipping block rendered with toggle off: %+v", p.Shipping)
	}
}

func TestBuildPreviewEstimateHidesAmountDue(t *testing.T) {
	tpl := models.DefaultTemplate()
	data := sampleData()
	data.Type = models.DocumentTypeEstimate

	p := BuildPreview(tpl, data)

	if p.Title != "Estimate" {
		t.Fatalf("title = %q, want Estimate", p.Title)
	}
	for _, f := range p.TotalRows {
		if f.Label == "Amount Due" {
			t.Fatalf("estimate must not show amount due: %+v", p.TotalRows)
		}
	}
}

func TestHTMLRendererOutput(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	p := BuildPreview(models.DefaultTemplate(), sampleData())
	out, err := r.Render(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "INV-000042") {
		t.Fatal("document number missing from HTML")
	}
	if !strings.Contains(html, "Hilltop Garage") {
		t.Fatal("shop name missing from HTML")
	}
	if !strings.Contains(html, "$2,004.00") && !strings.Contains(html, "$2004.00") {
		t.Fatal("total missing from HTML")
	}
}

func TestHTMLRendererSanitizesAccentColor(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	p := BuildPreview(models.DefaultTemplate(), sampleData())
	p.AccentColor = "red; } body { display: none"
	out, err := r.Render(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "display: none") {
		t.Fatal("unsafe accent color leaked into output")
	}
}

func TestPDFRendererOutput(t *testing.T) {
	p := BuildPreview(models.DefaultTemplate(), sampleData())

	out, err := NewPDFRenderer().Render(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty PDF output")
	}
	if !strings.HasPrefix(string(out[:5]), "%PDF-") {
		t.Fatalf("output does not look like a PDF: %q", out[:5])
	}
}
