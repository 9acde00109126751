package services

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/billing"
	"garage-backend/internal/metrics"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"
)

// validInvoiceTransitions maps each stored status to the statuses a
// caller may move it to. Overdue never appears here: it is derived
// from unpaid plus a past due date, never written.
var validInvoiceTransitions = map[string][]string{
	models.InvoiceStatusDraft:  {models.InvoiceStatusSent, models.InvoiceStatusCancelled},
	models.InvoiceStatusSent:   {models.InvoiceStatusPaid, models.InvoiceStatusUnpaid, models.InvoiceStatusCancelled},
	models.InvoiceStatusUnpaid: {models.InvoiceStatusPaid, models.InvoiceStatusCancelled},
}

type InvoiceService struct {
	Repo     *repositories.InvoiceRepository
	resolver rateResolver
}

func NewInvoiceService(repo *repositories.InvoiceRepository, rates *repositories.RateRepository) *InvoiceService {
	return &InvoiceService{Repo: repo, resolver: rateResolver{rates: rates}}
}

// applyDerivedStatus overlays the overdue state on an unpaid invoice
// whose due date has passed. The stored status is untouched.
func applyDerivedStatus(inv *models.Invoice, now time.Time) {
	if inv.Status == models.InvoiceStatusUnpaid && inv.DueDate != nil && inv.DueDate.Before(now) {
		inv.Status = models.InvoiceStatusOverdue
	}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	items, err := billing.BuildRows(req.Items)
	if err != nil {
		return nil, err
	}

	totals, err := s.resolver.computeTotals(ctx, req.TaxRateID, req.DiscountRateID, items)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		CustomerID:     req.CustomerID,
		TaxRateID:      req.TaxRateID,
		DiscountRateID: req.DiscountRateID,
		PONumber:       req.PONumber,
		SalesRep:       req.SalesRep,
		Status:         models.InvoiceStatusDraft,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		AmountDue:      totals.AmountDue,
		Items:          items,
	}

	if err := s.Repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	metrics.DocumentsCreated.WithLabelValues(models.DocumentTypeInvoice).Inc()
	return invoice, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyDerivedStatus(invoice, time.Now())
	return invoice, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, status string) ([]*models.Invoice, error) {
	invoices, err := s.Repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, inv := range invoices {
		applyDerivedStatus(inv, now)
	}
	return invoices, nil
}

// UpdateInvoice replaces an invoice's content. Paid and cancelled
// invoices are read-only.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id int, req *models.UpdateInvoiceRequest) (*models.Invoice, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.InvoiceStatusPaid || existing.Status == models.InvoiceStatusCancelled {
		return nil, fmt.Errorf("invoice is %s and can no longer be edited", existing.Status)
	}

	items, err := billing.BuildRows(req.Items)
	if err != nil {
		return nil, err
	}

	totals, err := s.resolver.computeTotals(ctx, req.TaxRateID, req.DiscountRateID, items)
	if err != nil {
		return nil, err
	}

	existing.CustomerID = req.CustomerID
	existing.TaxRateID = req.TaxRateID
	existing.DiscountRateID = req.DiscountRateID
	existing.PONumber = req.PONumber
	existing.SalesRep = req.SalesRep
	existing.DueDate = req.DueDate
	existing.Notes = req.Notes
	existing.Subtotal = totals.Subtotal
	existing.TaxAmount = totals.TaxAmount
	existing.DiscountAmount = totals.DiscountAmount
	existing.Total = totals.Total
	existing.AmountDue = totals.AmountDue
	existing.Items = items

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	applyDerivedStatus(existing, time.Now())
	return existing, nil
}

// UpdateStatus performs an explicit status transition
func (s *InvoiceService) UpdateStatus(ctx context.Context, id int, status string) (*models.Invoice, error) {
	if status == models.InvoiceStatusOverdue {
		return nil, fmt.Errorf("overdue is derived from the due date and cannot be set")
	}

	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validInvoiceTransitions[invoice.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("cannot transition invoice from %s to %s", invoice.Status, status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	invoice.Status = status
	applyDerivedStatus(invoice, time.Now())
	return invoice, nil
}

// MarkSent moves a draft invoice to sent. Re-sending an already sent
// invoice is a no-op at the status level.
func (s *InvoiceService) MarkSent(ctx context.Context, id int) error {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != models.InvoiceStatusDraft {
		return nil
	}
	return s.Repo.UpdateStatus(ctx, id, models.InvoiceStatusSent)
}

// MarkPaid records a completed payment against the invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, id int) error {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return fmt.Errorf("cancelled invoices cannot be paid")
	}
	return s.Repo.UpdateStatus(ctx, id, models.InvoiceStatusPaid)
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id int) error {
	invoice, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status != models.InvoiceStatusDraft {
		return fmt.Errorf("only draft invoices can be deleted")
	}
	return s.Repo.Delete(ctx, id)
}
