package render

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf/v2"
)

// column widths for the item table in mm, scaled to the visible columns
const pageWidth = 190.0

// PDFRenderer renders a preview tree to an A4 PDF
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for a preview tree
func (r *PDFRenderer) Render(p Preview) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	ar, ag, ab := hexToRGB(sanitizeColor(p.AccentColor))

	// Letterhead
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(ar, ag, ab)
	pdf.CellFormat(95, 10, p.Shop.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 10, p.Title, "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 10)
	if p.Shop.Address != "" {
		pdf.CellFormat(95, 5, p.Shop.Address, "", 0, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 5, "", "", 0, "L", false, 0, "")
	}
	pdf.CellFormat(95, 5, fmt.Sprintf("Number: %s", p.Number), "", 1, "R", false, 0, "")

	contact := p.Shop.Phone
	if p.Shop.Email != "" {
		if contact != "" {
			contact += "  |  "
		}
		contact += p.Shop.Email
	}
	pdf.CellFormat(95, 5, contact, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, "", "", 1, "R", false, 0, "")

	for _, f := range p.Header {
		pdf.CellFormat(95, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 5, fmt.Sprintf("%s: %s", f.Label, f.Value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Customer and shipping blocks side by side
	if len(p.Customer) > 0 || len(p.Shipping) > 0 {
		rows := len(p.Customer)
		if len(p.Shipping) > rows {
			rows = len(p.Shipping)
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(95, 6, "Bill To", "", 0, "L", false, 0, "")
		if len(p.Shipping) > 0 {
			pdf.CellFormat(95, 6, "Ship To", "", 1, "L", false, 0, "")
		} else {
			pdf.CellFormat(95, 6, "", "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Arial", "", 10)
		for i := 0; i < rows; i++ {
			left, right := "", ""
			if i < len(p.Customer) {
				left = fieldLine(p.Customer[i])
			}
			if i < len(p.Shipping) {
				right = fieldLine(p.Shipping[i])
			}
			pdf.CellFormat(95, 5, left, "", 0, "L", false, 0, "")
			pdf.CellFormat(95, 5, right, "", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Item table
	widths := columnWidths(len(p.Columns))
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(ar, ag, ab)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range p.Columns {
		align := "R"
		last := 0
		if i == 0 {
			align = "L"
		}
		if i == len(p.Columns)-1 {
			last = 1
		}
		pdf.CellFormat(widths[i], 7, col, "1", last, align, true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 10)
	for _, row := range p.Rows {
		for i, cell := range row {
			align := "R"
			last := 0
			if i == 0 {
				align = "L"
				cell = truncate(cell, 60)
			}
			if i == len(row)-1 {
				last = 1
			}
			pdf.CellFormat(widths[i], 6, cell, "1", last, align, false, 0, "")
		}
	}
	pdf.Ln(5)

	// Totals block, right aligned
	pdf.SetFont("Arial", "", 10)
	for i, f := range p.TotalRows {
		if i == len(p.TotalRows)-1 {
			pdf.SetFont("Arial", "B", 11)
		}
		pdf.CellFormat(120, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, f.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, f.Value, "", 1, "R", false, 0, "")
	}

	if p.Notes != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(pageWidth, 5, p.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate shortens s to at most max runes, never splitting a
// multibyte character
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

func fieldLine(f Field) string {
	if f.Label == "" {
		return f.Value
	}
	return fmt.Sprintf("%s: %s", f.Label, f.Value)
}

// columnWidths gives the description column the space left over by
// the fixed-width numeric columns
func columnWidths(n int) []float64 {
	if n == 0 {
		return nil
	}
	widths := make([]float64, n)
	numeric := 30.0
	widths[0] = pageWidth - float64(n-1)*numeric
	for i := 1; i < n; i++ {
		widths[i] = numeric
	}
	return widths
}

func hexToRGB(hex string) (int, int, int) {
	hex = hex[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
