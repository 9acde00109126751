package billing

import (
	"errors"
	"testing"

	"garage-backend/internal/models"
)

func TestAddRowDefaults(t *testing.T) {
	l := NewLineItems()

	id, err := l.AddRow("")
	if err != nil {
		t.Fatalf("add row: %v", err)
	}
	if id != 1 {
		t.Fatalf("first row id = %d, want 1", id)
	}

	rows := l.Rows()
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	if rows[0].Quantity != 1 {
		t.Fatalf("default quantity = %d, want 1", rows[0].Quantity)
	}
	if !rows[0].UnitPrice.IsZero() {
		t.Fatalf("default price = %s, want 0", rows[0].UnitPrice)
	}
	if rows[0].Category != models.CategoryParts {
		t.Fatalf("default category = %q, want parts", rows[0].Category)
	}
}

func TestRowIDsNotReusedAfterRemoval(t *testing.T) {
	l := NewLineItems()

	a, _ := l.AddRow(models.CategoryLabor)
	b, _ := l.AddRow(models.CategoryParts)

	if err := l.RemoveRow(b); err != nil {
		t.Fatalf("remove: %v", err)
	}

	c, _ := l.AddRow(models.CategoryOther)
	if c == a || c == b {
		t.Fatalf("row id %d collides with earlier ids %d/%d", c, a, b)
	}
	if c != 3 {
		t.Fatalf("counter should keep increasing, got %d", c)
	}
}

func TestRemoveOnlyRowLeavesEmptyList(t *testing.T) {
	l := NewLineItems()
	id, _ := l.AddRow("")

	if err := l.RemoveRow(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("len = %d, want 0", l.Len())
	}
}

func TestRemoveMissingRow(t *testing.T) {
	l := NewLineItems()

	if err := l.RemoveRow(42); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestUpdateRowRejectsNegativeValues(t *testing.T) {
	l := NewLineItems()
	id, _ := l.AddRow("")

	qty := -1
	if err := l.UpdateRow(id, RowPatch{Quantity: &qty}); !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}

	price := dec("-5")
	if err := l.UpdateRow(id, RowPatch{UnitPrice: &price}); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}

	// Rejected updates must not be applied
	rows := l.Rows()
	if rows[0].Quantity != 1 || !rows[0].UnitPrice.IsZero() {
		t.Fatalf("row mutated by rejected update: %+v", rows[0])
	}
}

func TestUpdateRowAppliesPatch(t *testing.T) {
	l := NewLineItems()
	id, _ := l.AddRow("")

	qty := 3
	price := dec("129.00")
	desc := "Brake pads"
	taxable := true
	if err := l.UpdateRow(id, RowPatch{
		Quantity:    &qty,
		UnitPrice:   &price,
		Description: &desc,
		Taxable:     &taxable,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows := l.Rows()
	if rows[0].Quantity != 3 || !rows[0].UnitPrice.Equal(dec("129.00")) {
		t.Fatalf("patch not applied: %+v", rows[0])
	}
	if rows[0].Description != "Brake pads" || !rows[0].Taxable {
		t.Fatalf("patch not applied: %+v", rows[0])
	}
}

func TestSelectCatalogItemOverwritesDescriptionAndPriceOnly(t *testing.T) {
	l := NewLineItems()
	id, _ := l.AddRow("")

	qty := 4
	taxable := true
	if err := l.UpdateRow(id, RowPatch{Quantity: &qty, Taxable: &taxable}); err != nil {
		t.Fatalf("update: %v", err)
	}

	item := &models.Item{ID: 7, Name: "Oil filter", UnitPrice: dec("18.50")}
	if err := l.SelectCatalogItem(id, item); err != nil {
		t.Fatalf("select: %v", err)
	}

	rows := l.Rows()
	if rows[0].Description != "Oil filter" {
		t.Fatalf("description = %q, want catalog name", rows[0].Description)
	}
	if !rows[0].UnitPrice.Equal(dec("18.50")) {
		t.Fatalf("price = %s, want 18.50", rows[0].UnitPrice)
	}
	if rows[0].ItemID == nil || *rows[0].ItemID != 7 {
		t.Fatalf("item id not linked: %+v", rows[0].ItemID)
	}
	// Quantity and flags must survive the selection
	if rows[0].Quantity != 4 || !rows[0].Taxable {
		t.Fatalf("quantity/flags clobbered: %+v", rows[0])
	}
}

func TestFromRowsContinuesCounter(t *testing.T) {
	stored := []models.LineItem{
		{RowID: 2, Quantity: 1, UnitPrice: dec("10")},
		{RowID: 5, Quantity: 1, UnitPrice: dec("20")},
	}

	l := FromRows(stored)
	id, _ := l.AddRow("")
	if id != 6 {
		t.Fatalf("counter should continue past stored max, got %d", id)
	}
}

func TestBuildRowsValidation(t *testing.T) {
	_, err := BuildRows([]models.LineItemInput{{Quantity: -1}})
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}

	rows, err := BuildRows([]models.LineItemInput{
		{Quantity: 1, UnitPrice: dec("1746.00"), Description: "Engine work"},
		{Quantity: 2, UnitPrice: dec("129.00"), Description: "Filters"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rows[0].RowID != 1 || rows[1].RowID != 2 {
		t.Fatalf("row ids not assigned sequentially: %+v", rows)
	}
}
