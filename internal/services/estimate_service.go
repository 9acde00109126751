package services

import (
	"context"
	"fmt"
	"log"

	"garage-backend/internal/billing"
	"garage-backend/internal/metrics"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"
)

// EstimateStore is the persistence surface the estimate service
// needs. Implemented by repositories.EstimateRepository.
type EstimateStore interface {
	Create(ctx context.Context, e *models.Estimate) error
	Get(ctx context.Context, id int) (*models.Estimate, error)
	List(ctx context.Context, status string) ([]*models.Estimate, error)
	Update(ctx context.Context, e *models.Estimate) error
	UpdateStatus(ctx context.Context, id int, status string, invoiceID *int) error
	Accept(ctx context.Context, estimateID int, invoice *models.Invoice) error
	Delete(ctx context.Context, id int) error
}

type EstimateService struct {
	Repo     EstimateStore
	resolver rateResolver
}

func NewEstimateService(repo EstimateStore, rates *repositories.RateRepository) *EstimateService {
	return &EstimateService{
		Repo:     repo,
		resolver: rateResolver{rates: rates},
	}
}

func (s *EstimateService) CreateEstimate(ctx context.Context, req *models.CreateEstimateRequest) (*models.Estimate, error) {
	items, err := billing.BuildRows(req.Items)
	if err != nil {
		return nil, err
	}

	totals, err := s.resolver.computeTotals(ctx, req.TaxRateID, req.DiscountRateID, items)
	if err != nil {
		return nil, err
	}

	estimate := &models.Estimate{
		CustomerID:     req.CustomerID,
		TaxRateID:      req.TaxRateID,
		DiscountRateID: req.DiscountRateID,
		PONumber:       req.PONumber,
		SalesRep:       req.SalesRep,
		Status:         models.EstimateStatusPending,
		Notes:          req.Notes,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		Items:          items,
	}

	if err := s.Repo.Create(ctx, estimate); err != nil {
		return nil, err
	}

	metrics.DocumentsCreated.WithLabelValues(models.DocumentTypeEstimate).Inc()
	return estimate, nil
}

func (s *EstimateService) GetEstimate(ctx context.Context, id int) (*models.Estimate, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EstimateService) ListEstimates(ctx context.Context, status string) ([]*models.Estimate, error) {
	return s.Repo.List(ctx, status)
}

// UpdateEstimate replaces a pending estimate's content. Accepted and
// rejected estimates are read-only.
func (s *EstimateService) UpdateEstimate(ctx context.Context, id int, req *models.UpdateEstimateRequest) (*models.Estimate, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != models.EstimateStatusPending {
		return nil, fmt.Errorf("estimate is %s and can no longer be edited", existing.Status)
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
	existing.Notes = req.Notes
	existing.Subtotal = totals.Subtotal
	existing.TaxAmount = totals.TaxAmount
	existing.DiscountAmount = totals.DiscountAmount
	existing.Total = totals.Total
	existing.Items = items

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// AcceptEstimate transitions a pending estimate to accepted and
// creates a draft invoice carrying over the customer, rates, notes
// and line items. The invoice insert and the status change commit
// together, so a failed accept leaves no orphan invoice.
func (s *EstimateService) AcceptEstimate(ctx context.Context, id int) (*models.Invoice, error) {
	estimate, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status != models.EstimateStatusPending {
		return nil, fmt.Errorf("estimate is already %s", estimate.Status)
	}

	invoice := &models.Invoice{
		CustomerID:     estimate.CustomerID,
		EstimateID:     &estimate.ID,
		TaxRateID:      estimate.TaxRateID,
		DiscountRateID: estimate.DiscountRateID,
		PONumber:       estimate.PONumber,
		SalesRep:       estimate.SalesRep,
		Status:         models.InvoiceStatusDraft,
		Notes:          estimate.Notes,
		Subtotal:       estimate.Subtotal,
		TaxAmount:      estimate.TaxAmount,
		DiscountAmount: estimate.DiscountAmount,
		Total:          estimate.Total,
		AmountDue:      estimate.Total,
		Items:          estimate.Items,
	}

	if err := s.Repo.Accept(ctx, id, invoice); err != nil {
		return nil, err
	}

	metrics.EstimatesAccepted.Inc()
	metrics.DocumentsCreated.WithLabelValues(models.DocumentTypeInvoice).Inc()
	log.Printf("[Estimate] Estimate %s accepted, created invoice %s", estimate.EstimateNumber, invoice.InvoiceNumber)
	return invoice, nil
}

// RejectEstimate transitions a pending estimate to rejected
func (s *EstimateService) RejectEstimate(ctx context.Context, id int) (*models.Estimate, error) {
	estimate, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status != models.EstimateStatusPending {
		return nil, fmt.Errorf("estimate is already %s", estimate.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.EstimateStatusRejected, nil); err != nil {
		return nil, err
	}
	estimate.Status = models.EstimateStatusRejected
	return estimate, nil
}

func (s *EstimateService) DeleteEstimate(ctx context.Context, id int) error {
	estimate, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if estimate.Status == models.EstimateStatusAccepted {
		return fmt.Errorf("accepted estimates cannot be deleted")
	}
	return s.Repo.Delete(ctx, id)
}
