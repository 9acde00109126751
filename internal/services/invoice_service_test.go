package services

import (
	"testing"
	"time"

	"garage-backend/internal/models"
)

func TestDerivedOverdueStatus(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	cases := []struct {
		name    string
		status  string
		dueDate *time.Time
		want    string
	}{
		{"unpaid past due", models.InvoiceStatusUnpaid, &past, models.InvoiceStatusOverdue},
		{"unpaid not yet due", models.InvoiceStatusUnpaid, &future, models.InvoiceStatusUnpaid},
		{"unpaid without due date", models.InvoiceStatusUnpaid, nil, models.InvoiceStatusUnpaid},
		{"sent past due stays sent", models.InvoiceStatusSent, &past, models.InvoiceStatusSent},
		{"paid past due stays paid", models.InvoiceStatusPaid, &past, models.InvoiceStatusPaid},
		{"cancelled past due stays cancelled", models.InvoiceStatusCancelled, &past, models.InvoiceStatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &models.Invoice{Status: tc.status, DueDate: tc.dueDate}
			applyDerivedStatus(inv, now)
			if inv.Status != tc.want {
				t.Fatalf("status = %s, want %s", inv.Status, tc.want)
			}
		})
	}
}

func TestInvoiceTransitionTable(t *testing.T) {
	allowed := func(from, to string) bool {
		for _, next := range validInvoiceTransitions[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	if !allowed(models.InvoiceStatusDraft, models.InvoiceStatusSent) {
		t.Fatal("draft must be sendable")
	}
	if !allowed(models.InvoiceStatusSent, models.InvoiceStatusPaid) {
		t.Fatal("sent must be payable")
	}
	if !allowed(models.InvoiceStatusUnpaid, models.InvoiceStatusPaid) {
		t.Fatal("unpaid must be payable")
	}
	if allowed(models.InvoiceStatusDraft, models.InvoiceStatusPaid) {
		t.Fatal("draft must not jump straight to paid")
	}
	if allowed(models.InvoiceStatusPaid, models.InvoiceStatusSent) {
		t.Fatal("paid is terminal")
	}
	if len(validInvoiceTransitions[models.InvoiceStatusCancelled]) != 0 {
		t.Fatal("cancelled is terminal")
	}

	// Overdue is derived, never a transition source or target
	if len(validInvoiceTransitions[models.InvoiceStatusOverdue]) != 0 {
		t.Fatal("overdue must not have explicit transitions")
	}
	for from, targets := range validInvoiceTransitions {
		for _, to := range targets {
			if to == models.InvoiceStatusOverdue {
				t.Fatalf("transition %s -> overdue must not exist", from)
			}
		}
	}
}
