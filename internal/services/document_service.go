package services

import (
	"context"
	"fmt"

	"garage-backend/internal/billing"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// rateResolver turns optional rate ids on a document into the
// percentages the calculation engine needs
type rateResolver struct {
	rates *repositories.RateRepository
}

// percent loads the percentage for a rate id, checking the rate has
// the expected kind. A nil id means no rate selected.
func (r *rateResolver) percent(ctx context.Context, id *int, kind string) (*decimal.Decimal, error) {
	if id == nil {
		return nil, nil
	}
	rate, err := r.rates.GetOfKind(ctx, *id, kind)
	if err != nil {
		return nil, fmt.Errorf("%s rate %d: %w", kind, *id, err)
	}
	return &rate.Rate, nil
}

// computeTotals resolves a document's selected rates and derives its
// totals from the line items
func (r *rateResolver) computeTotals(ctx context.Context, taxRateID, discountRateID *int, items []models.LineItem) (billing.Totals, error) {
	taxRate, err := r.percent(ctx, taxRateID, models.RateKindTax)
	if err != nil {
		return billing.Totals{}, err
	}
	discountRate, err := r.percent(ctx, discountRateID, models.RateKindDiscount)
	if err != nil {
		return billing.Totals{}, err
	}
	return billing.Compute(items, taxRate, discountRate), nil
}
