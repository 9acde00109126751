package services

import (
	"context"
	"fmt"

	"garage-backend/internal/billing"
	"garage-backend/internal/config"
	"garage-backend/internal/models"
	"garage-backend/internal/render"
	"garage-backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// RenderService assembles document data and produces the preview
// tree, HTML and PDF outputs. All three targets consume the same
// tree, so what the editor shows is what gets printed and sent.
type RenderService struct {
	Customers *repositories.CustomerRepository
	Rates     *repositories.RateRepository
	Templates *TemplateService
	HTML      *render.HTMLRenderer
	PDF       *render.PDFRenderer
	shop      render.ShopInfo
	storage   struct{ endpoint, bucket string }
}

func NewRenderService(
	cfg *config.Config,
	customers *repositories.CustomerRepository,
	rates *repositories.RateRepository,
	templates *TemplateService,
) (*RenderService, error) {
	html, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	s := &RenderService{
		Customers: customers,
		Rates:     rates,
		Templates: templates,
		HTML:      html,
		PDF:       render.NewPDFRenderer(),
		shop: render.ShopInfo{
			Name:    cfg.Shop.Name,
			Address: cfg.Shop.Address,
			Phone:   cfg.Shop.Phone,
			Email:   cfg.Shop.Email,
		},
	}
	s.storage.endpoint = cfg.Storage.Endpoint
	s.storage.bucket = cfg.Storage.Bucket
	return s, nil
}

func (s *RenderService) logoURL(key string) string {
	if key == "" || s.storage.endpoint == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", s.storage.endpoint, s.storage.bucket, key)
}

// rateInfo loads the display name and percentage for an optional rate id
func (s *RenderService) rateInfo(ctx context.Context, id *int, kind string) (string, *decimal.Decimal) {
	if id == nil {
		return "", nil
	}
	rate, err := s.Rates.GetOfKind(ctx, *id, kind)
	if err != nil {
		return "", nil
	}
	return rate.Name, &rate.Rate
}

// EstimateData builds the render input for an estimate
func (s *RenderService) EstimateData(ctx context.Context, e *models.Estimate) (render.DocumentData, error) {
	data := render.DocumentData{
		Type:     models.DocumentTypeEstimate,
		Number:   e.EstimateNumber,
		Status:   e.Status,
		Date:     e.CreatedAt,
		PONumber: e.PONumber,
		SalesRep: e.SalesRep,
		Notes:    e.Notes,
		Items:    e.Items,
		Shop:     s.shop,
	}

	data.TaxName, data.TaxRate = s.rateInfo(ctx, e.TaxRateID, models.RateKindTax)
	data.DiscountName, data.DiscountRate = s.rateInfo(ctx, e.DiscountRateID, models.RateKindDiscount)
	data.Totals = billing.Compute(e.Items, data.TaxRate, data.DiscountRate)

	if e.CustomerID != nil {
		customer, err := s.Customers.Get(ctx, *e.CustomerID)
		if err != nil {
			return data, fmt.Errorf("customer %d: %w", *e.CustomerID, err)
		}
		data.Customer = customer
	}
	return data, nil
}

// InvoiceData builds the render input for an invoice
func (s *RenderService) InvoiceData(ctx context.Context, inv *models.Invoice) (render.DocumentData, error) {
	data := render.DocumentData{
		Type:     models.DocumentTypeInvoice,
		Number:   inv.InvoiceNumber,
		Status:   inv.Status,
		Date:     inv.CreatedAt,
		DueDate:  inv.DueDate,
		PONumber: inv.PONumber,
		SalesRep: inv.SalesRep,
		Notes:    inv.Notes,
		Items:    inv.Items,
		Shop:     s.shop,
	}

	data.TaxName, data.TaxRate = s.rateInfo(ctx, inv.TaxRateID, models.RateKindTax)
	data.DiscountName, data.DiscountRate = s.rateInfo(ctx, inv.DiscountRateID, models.RateKindDiscount)
	data.Totals = billing.Compute(inv.Items, data.TaxRate, data.DiscountRate)

	if inv.CustomerID != nil {
		customer, err := s.Customers.Get(ctx, *inv.CustomerID)
		if err != nil {
			return data, fmt.Errorf("customer %d: %w", *inv.CustomerID, err)
		}
		data.Customer = customer
	}
	return data, nil
}

// template resolves the template to render with: an explicit id, or
// the current default
func (s *RenderService) template(ctx context.Context, templateID *int) (*models.Template, error) {
	if templateID != nil {
		return s.Templates.GetTemplate(ctx, *templateID)
	}
	return s.Templates.GetDefault(ctx)
}

// Preview produces the structured document tree
func (s *RenderService) Preview(ctx context.Context, data render.DocumentData, templateID *int) (render.Preview, error) {
	tpl, err := s.template(ctx, templateID)
	if err != nil {
		return render.Preview{}, err
	}
	data.LogoURL = s.logoURL(tpl.LogoKey)
	return render.BuildPreview(tpl, data), nil
}

// RenderHTML produces the HTML page for a document
func (s *RenderService) RenderHTML(ctx context.Context, data render.DocumentData, templateID *int) ([]byte, error) {
	preview, err := s.Preview(ctx, data, templateID)
	if err != nil {
		return nil, err
	}
	return s.HTML.Render(preview)
}

// RenderPDF produces the PDF for a document
func (s *RenderService) RenderPDF(ctx context.Context, data render.DocumentData, templateID *int) ([]byte, error) {
	preview, err := s.Preview(ctx, data, templateID)
	if err != nil {
		return nil, err
	}
	return s.PDF.Render(preview)
}
