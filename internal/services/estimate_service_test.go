package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"garage-backend/internal/models"

	"github.com/shopspring/decimal"
)

// memEstimateStore is an in-memory EstimateStore whose Accept is
// all-or-nothing, matching the repository's transactional contract.
type memEstimateStore struct {
	estimates  map[int]*models.Estimate
	invoices   map[int]*models.Invoice
	nextInvID  int
	failAccept bool
}

func newMemEstimateStore() *memEstimateStore {
	return &memEstimateStore{
		estimates: make(map[int]*models.Estimate),
		invoices:  make(map[int]*models.Invoice),
		nextInvID: 1,
	}
}

func (m *memEstimateStore) Create(ctx context.Context, e *models.Estimate) error {
	m.estimates[e.ID] = e
	return nil
}

func (m *memEstimateStore) Get(ctx context.Context, id int) (*models.Estimate, error) {
	e, ok := m.estimates[id]
	if !ok {
		return nil, errors.New("estimate not found")
	}
	copied := *e
	return &copied, nil
}

func (m *memEstimateStore) List(ctx context.Context, status string) ([]*models.Estimate, error) {
	var out []*models.Estimate
	for _, e := range m.estimates {
		if status == "" || e.Status == status {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memEstimateStore) Update(ctx context.Context, e *models.Estimate) error {
	if _, ok := m.estimates[e.ID]; !ok {
		return errors.New("estimate not found")
	}
	copied := *e
	m.estimates[e.ID] = &copied
	return nil
}

func (m *memEstimateStore) UpdateStatus(ctx context.Context, id int, status string, invoiceID *int) error {
	e, ok := m.estimates[id]
	if !ok {
		return errors.New("estimate not found")
	}
	e.Status = status
	if invoiceID != nil {
		e.InvoiceID = invoiceID
	}
	return nil
}

func (m *memEstimateStore) Accept(ctx context.Context, estimateID int, invoice *models.Invoice) error {
	if m.failAccept {
		return errors.New("accept failed")
	}
	e, ok := m.estimates[estimateID]
	if !ok {
		return errors.New("estimate not found")
	}

	invoice.ID = m.nextInvID
	invoice.InvoiceNumber = fmt.Sprintf("INV-%06d", m.nextInvID)
	m.nextInvID++
	copied := *invoice
	m.invoices[invoice.ID] = &copied

	e.Status = models.EstimateStatusAccepted
	e.InvoiceID = &invoice.ID
	return nil
}

func (m *memEstimateStore) Delete(ctx context.Context, id int) error {
	if _, ok := m.estimates[id]; !ok {
		return errors.New("estimate not found")
	}
	delete(m.estimates, id)
	return nil
}

func pendingEstimate(id int) *models.Estimate {
	customerID := 7
	return &models.Estimate{
		ID:             id,
		EstimateNumber: fmt.Sprintf("EST-%06d", id),
		CustomerID:     &customerID,
		PONumber:       "PO-1001",
		SalesRep:       "Dana",
		Status:         models.EstimateStatusPending,
		Subtotal:       decimal.NewFromInt(2004),
		TaxAmount:      decimal.NewFromFloat(165.33),
		Total:          decimal.NewFromFloat(2169.33),
		Items: []models.LineItem{
			{RowID: 1, Description: "Timing belt replacement", Quantity: 1, UnitPrice: decimal.NewFromInt(2004)},
		},
	}
}

func TestAcceptEstimateCreatesLinkedInvoice(t *testing.T) {
	store := newMemEstimateStore()
	store.estimates[1] = pendingEstimate(1)
	svc := NewEstimateService(store, nil)

	invoice, err := svc.AcceptEstimate(context.Background(), 1)
	if err != nil {
		t.Fatalf("AcceptEstimate failed: %v", err)
	}

	if invoice.Status != models.InvoiceStatusDraft {
		t.Errorf("expected draft invoice, got %s", invoice.Status)
	}
	if invoice.EstimateID == nil || *invoice.EstimateID != 1 {
		t.Errorf("invoice not linked back to estimate: %v", invoice.EstimateID)
	}
	if !invoice.AmountDue.Equal(invoice.Total) {
		t.Errorf("amount due %s should equal total %s on a fresh invoice", invoice.AmountDue, invoice.Total)
	}
	if invoice.CustomerID == nil || *invoice.CustomerID != 7 {
		t.Errorf("customer not carried over: %v", invoice.CustomerID)
	}
	if len(invoice.Items) != 1 || invoice.Items[0].Description != "Timing belt replacement" {
		t.Errorf("line items not carried over: %+v", invoice.Items)
	}

	stored := store.estimates[1]
	if stored.Status != models.EstimateStatusAccepted {
		t.Errorf("estimate status = %s, want accepted", stored.Status)
	}
	if stored.InvoiceID == nil || *stored.InvoiceID != invoice.ID {
		t.Errorf("estimate not linked to invoice %d: %v", invoice.ID, stored.InvoiceID)
	}
}

func TestAcceptEstimateFailureLeavesNoInvoice(t *testing.T) {
	store := newMemEstimateStore()
	store.estimates[1] = pendingEstimate(1)
	store.failAccept = true
	svc := NewEstimateService(store, nil)

	if _, err := svc.AcceptEstimate(context.Background(), 1); err == nil {
		t.Fatal("expected AcceptEstimate to fail")
	}

	if len(store.invoices) != 0 {
		t.Errorf("failed accept left %d invoice(s) behind", len(store.invoices))
	}
	if store.estimates[1].Status != models.EstimateStatusPending {
		t.Errorf("failed accept changed estimate status to %s", store.estimates[1].Status)
	}
}

func TestAcceptEstimateRejectsNonPending(t *testing.T) {
	store := newMemEstimateStore()
	est := pendingEstimate(1)
	est.Status = models.EstimateStatusRejected
	store.estimates[1] = est
	svc := NewEstimateService(store, nil)

	if _, err := svc.AcceptEstimate(context.Background(), 1); err == nil {
		t.Fatal("expected accept of a rejected estimate to fail")
	}
	if len(store.invoices) != 0 {
		t.Errorf("rejected estimate produced %d invoice(s)", len(store.invoices))
	}
}
