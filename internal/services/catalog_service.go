package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"garage-backend/internal/cache"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"
)

// CatalogService manages the item catalog and the four rate catalogs
// (tax, discount, labor, other charge) that back the editor dropdowns
type CatalogService struct {
	Items *repositories.ItemRepository
	Rates *repositories.RateRepository
}

func NewCatalogService(items *repositories.ItemRepository, rates *repositories.RateRepository) *CatalogService {
	return &CatalogService{Items: items, Rates: rates}
}

func (s *CatalogService) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.UnitPrice.IsNegative() {
		return nil, errors.New("unit price must be non-negative")
	}
	category := req.Category
	if category == "" {
		category = models.CategoryParts
	}
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		UnitPrice:   req.UnitPrice,
		Taxable:     req.Taxable,
	}

	if err := s.Items.Create(ctx, item); err != nil {
		return nil, err
	}

	cache.InvalidateCatalogCaches(ctx)
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id int) (*models.Item, error) {
	return s.Items.Get(ctx, id)
}

// ListItems returns catalog items, serving unfiltered category lists
// from cache when available
func (s *CatalogService) ListItems(ctx context.Context, category, search string) ([]*models.Item, error) {
	key := fmt.Sprintf(cache.ItemsKeyFmt, category)
	if search == "" {
		if data, ok := cache.GetCached(ctx, key); ok {
			var items []*models.Item
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.Items.List(ctx, category, search)
	if err != nil {
		return nil, err
	}

	if search == "" {
		if data, err := json.Marshal(items); err == nil {
			cache.SetCached(ctx, key, data, cache.CatalogTTL)
		}
	}
	return items, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id int, req *models.CreateItemRequest) (*models.Item, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.UnitPrice.IsNegative() {
		return nil, errors.New("unit price must be non-negative")
	}
	category := req.Category
	if category == "" {
		category = models.CategoryParts
	}
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	item := &models.Item{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		UnitPrice:   req.UnitPrice,
		Taxable:     req.Taxable,
	}

	if err := s.Items.Update(ctx, item); err != nil {
		return nil, err
	}

	cache.InvalidateCatalogCaches(ctx)
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id int) error {
	if err := s.Items.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}

func (s *CatalogService) CreateRate(ctx context.Context, kind string, req *models.CreateRateRequest) (*models.Rate, error) {
	if !models.ValidRateKind(kind) {
		return nil, fmt.Errorf("unknown rate kind %q", kind)
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.Rate.IsNegative() {
		return nil, errors.New("rate must be non-negative")
	}

	rate := &models.Rate{Kind: kind, Name: req.Name, Rate: req.Rate}
	if err := s.Rates.Create(ctx, rate); err != nil {
		return nil, err
	}

	cache.InvalidateCatalogCaches(ctx)
	return rate, nil
}

// ListRates returns all rates of one kind, cache-backed
func (s *CatalogService) ListRates(ctx context.Context, kind string) ([]*models.Rate, error) {
	if !models.ValidRateKind(kind) {
		return nil, fmt.Errorf("unknown rate kind %q", kind)
	}

	key := fmt.Sprintf(cache.RatesKeyFmt, kind)
	if data, ok := cache.GetCached(ctx, key); ok {
		var rates []*models.Rate
		if err := json.Unmarshal(data, &rates); err == nil {
			return rates, nil
		}
	}

	rates, err := s.Rates.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rates); err == nil {
		cache.SetCached(ctx, key, data, cache.CatalogTTL)
	}
	return rates, nil
}

func (s *CatalogService) UpdateRate(ctx context.Context, kind string, id int, req *models.CreateRateRequest) (*models.Rate, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.Rate.IsNegative() {
		return nil, errors.New("rate must be non-negative")
	}

	existing, err := s.Rates.GetOfKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Rate = req.Rate
	if err := s.Rates.Update(ctx, existing); err != nil {
		return nil, err
	}

	cache.InvalidateCatalogCaches(ctx)
	return existing, nil
}

func (s *CatalogService) DeleteRate(ctx context.Context, kind string, id int) error {
	if _, err := s.Rates.GetOfKind(ctx, id, kind); err != nil {
		return err
	}
	if err := s.Rates.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCatalogCaches(ctx)
	return nil
}
