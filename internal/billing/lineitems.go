package billing

import (
	"errors"
	"fmt"

	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrRowNotFound      = errors.New("line item row not found")
	ErrNegativeQuantity = errors.New("quantity must be a non-negative integer")
	ErrNegativePrice    = errors.New("unit price must be non-negative")
)

// LineItems is the row model for one document editing session.
// Row identifiers come from a monotonically increasing counter so
// they are never reused after a removal.
type LineItems struct {
	rows    []models.LineItem
	nextRow int
}

// NewLineItems returns an empty line item list
func NewLineItems() *LineItems {
	return &LineItems{nextRow: 1}
}

// FromRows rebuilds a session from persisted rows, continuing the
// counter past the highest stored row id
func FromRows(rows []models.LineItem) *LineItems {
	l := NewLineItems()
	for _, r := range rows {
		l.rows = append(l.rows, r)
		if r.RowID >= l.nextRow {
			l.nextRow = r.RowID + 1
		}
	}
	return l
}

// Rows returns a copy of the current rows in order
func (l *LineItems) Rows() []models.LineItem {
	out := make([]models.LineItem, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len returns the number of rows
func (l *LineItems) Len() int {
	return len(l.rows)
}

// AddRow appends a new row with default values (quantity 1, price 0)
// and returns its row id
func (l *LineItems) AddRow(category string) (int, error) {
	if category == "" {
		category = models.CategoryParts
	}
	if !models.ValidCategory(category) {
		return 0, fmt.Errorf("unknown line item category %q", category)
	}

	row := models.LineItem{
		RowID:     l.nextRow,
		Category:  category,
		Quantity:  1,
		UnitPrice: decimal.Zero,
	}
	l.nextRow++
	l.rows = append(l.rows, row)
	return row.RowID, nil
}

// RemoveRow deletes the row with the given id. Removing the last row
// leaves the list empty; no replacement row is created.
func (l *LineItems) RemoveRow(rowID int) error {
	for i, r := range l.rows {
		if r.RowID == rowID {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

// RowPatch carries field updates for a single row. Nil fields are
// left untouched.
type RowPatch struct {
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Taxable      *bool            `json:"taxable"`
	Discountable *bool            `json:"discountable"`
	Paid         *bool            `json:"paid"`
}

// UpdateRow applies a field patch to the row with the given id.
// Invalid values are rejected and the row is left unchanged.
func (l *LineItems) UpdateRow(rowID int, patch RowPatch) error {
	idx := -1
	for i, r := range l.rows {
		if r.RowID == rowID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrRowNotFound
	}

	// Validate before mutating anything
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return fmt.Errorf("unknown line item category %q", *patch.Category)
	}

	row := &l.rows[idx]
	if patch.Category != nil {
		row.Category = *patch.Category
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Quantity != nil {
		row.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		row.UnitPrice = *patch.UnitPrice
	}
	if patch.Taxable != nil {
		row.Taxable = *patch.Taxable
	}
	if patch.Discountable != nil {
		row.Discountable = *patch.Discountable
	}
	if patch.Paid != nil {
		row.Paid = *patch.Paid
	}
	return nil
}

// SelectCatalogItem overwrites the row's description and unit price
// from the chosen catalog entry. Quantity and flags are not touched.
func (l *LineItems) SelectCatalogItem(rowID int, item *models.Item) error {
	for i, r := range l.rows {
		if r.RowID == rowID {
			itemID := item.ID
			l.rows[i].ItemID = &itemID
			l.rows[i].Description = item.Name
			l.rows[i].UnitPrice = item.UnitPrice
			return nil
		}
	}
	return ErrRowNotFound
}

// BuildRows validates raw request rows and assigns session row ids.
// Used when a document arrives wholesale from a create/update call.
func BuildRows(inputs []models.LineItemInput) ([]models.LineItem, error) {
	l := NewLineItems()
	for i, in := range inputs {
		if in.Quantity < 0 {
			return nil, fmt.Errorf("item %d: %w", i, ErrNegativeQuantity)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item %d: %w", i, ErrNegativePrice)
		}
		category := in.Category
		if category == "" {
			category = models.CategoryParts
		}
		if !models.ValidCategory(category) {
			return nil, fmt.Errorf("item %d: unknown category %q", i, category)
		}

		l.rows = append(l.rows, models.LineItem{
			RowID:        l.nextRow,
			Category:     category,
			ItemID:       in.ItemID,
			Description:  in.Description,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Taxable:      in.Taxable,
			Discountable: in.Discountable,
			Paid:         in.Paid,
		})
		l.nextRow++
	}
	return l.rows, nil
}
