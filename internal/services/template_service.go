package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"garage-backend/internal/cache"
	"garage-backend/internal/models"
)

// TemplateStore is the persistence surface the template service
// needs. Implemented by repositories.TemplateRepository.
type TemplateStore interface {
	Create(ctx context.Context, t *models.Template) error
	Get(ctx context.Context, id int) (*models.Template, error)
	GetDefault(ctx context.Context) (*models.Template, error)
	List(ctx context.Context) ([]*models.Template, error)
	Update(ctx context.Context, t *models.Template) error
	SetDefault(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type TemplateService struct {
	Store TemplateStore
}

func NewTemplateService(store TemplateStore) *TemplateService {
	return &TemplateService{Store: store}
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validateTemplate(name, layout, accentColor string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if layout != "" && !models.ValidLayout(layout) {
		return fmt.Errorf("unknown layout %q", layout)
	}
	if accentColor != "" && !hexColorPattern.MatchString(accentColor) {
		return fmt.Errorf("accent color %q is not a hex color", accentColor)
	}
	return nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.Template, error) {
	if err := validateTemplate(req.Name, req.Layout, req.AccentColor); err != nil {
		return nil, err
	}

	layout := req.Layout
	if layout == "" {
		layout = models.LayoutClassic
	}

	tpl := &models.Template{
		Name:        req.Name,
		LogoKey:     req.LogoKey,
		AccentColor: req.AccentColor,
		Layout:      layout,
		Customer:    req.Customer,
		Header:      req.Header,
		Items:       req.Items,
		Calculation: req.Calculation,
	}

	if err := s.Store.Create(ctx, tpl); err != nil {
		return nil, err
	}

	// A template created as default displaces the current one
	if req.IsDefault {
		if err := s.Store.SetDefault(ctx, tpl.ID); err != nil {
			return nil, err
		}
		tpl.IsDefault = true
	}

	cache.InvalidateTemplateCaches(ctx)
	return tpl, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id int) (*models.Template, error) {
	return s.Store.Get(ctx, id)
}

// GetDefault returns the default template, falling back to the
// built-in configuration when none has been saved yet. The stored
// default is read on every render, so it is cache-backed.
func (s *TemplateService) GetDefault(ctx context.Context) (*models.Template, error) {
	if data, ok := cache.GetCached(ctx, cache.DefaultTplKey); ok {
		var tpl models.Template
		if err := json.Unmarshal(data, &tpl); err == nil {
			return &tpl, nil
		}
	}

	tpl, err := s.Store.GetDefault(ctx)
	if err != nil {
		return models.DefaultTemplate(), nil
	}

	if data, err := json.Marshal(tpl); err == nil {
		cache.SetCached(ctx, cache.DefaultTplKey, data, cache.TemplateTTL)
	}
	return tpl, nil
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]*models.Template, error) {
	if data, ok := cache.GetCached(ctx, cache.TemplatesKey); ok {
		var templates []*models.Template
		if err := json.Unmarshal(data, &templates); err == nil {
			return templates, nil
		}
	}

	templates, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(templates); err == nil {
		cache.SetCached(ctx, cache.TemplatesKey, data, cache.TemplateTTL)
	}
	return templates, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id int, req *models.UpdateTemplateRequest) (*models.Template, error) {
	if err := validateTemplate(req.Name, req.Layout, req.AccentColor); err != nil {
		return nil, err
	}

	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.LogoKey = req.LogoKey
	existing.AccentColor = req.AccentColor
	if req.Layout != "" {
		existing.Layout = req.Layout
	}
	existing.Customer = req.Customer
	existing.Header = req.Header
	existing.Items = req.Items
	existing.Calculation = req.Calculation

	if err := s.Store.Update(ctx, existing); err != nil {
		return nil, err
	}

	cache.InvalidateTemplateCaches(ctx)
	return existing, nil
}

// SetDefault makes one template the default. Exactly one template
// holds the flag afterwards.
func (s *TemplateService) SetDefault(ctx context.Context, id int) error {
	if err := s.Store.SetDefault(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTemplateCaches(ctx)
	return nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id int) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateTemplateCaches(ctx)
	return nil
}
