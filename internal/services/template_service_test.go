package services

import (
	"context"
	"errors"
	"testing"

	"garage-backend/internal/models"
)

// memTemplateStore is an in-memory TemplateStore for exercising the
// service without a database
type memTemplateStore struct {
	nextID    int
	templates map[int]*models.Template
}

func newMemTemplateStore() *memTemplateStore {
	return &memTemplateStore{nextID: 1, templates: make(map[int]*models.Template)}
}

func (m *memTemplateStore) Create(_ context.Context, t *models.Template) error {
	t.ID = m.nextID
	m.nextID++
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memTemplateStore) Get(_ context.Context, id int) (*models.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *t
	return &cp, nil
}

func (m *memTemplateStore) GetDefault(_ context.Context) (*models.Template, error) {
	for _, t := range m.templates {
		if t.IsDefault {
			cp := *t
			return &cp, nil
		}
	}
	return nil, errors.New("no default")
}

func (m *memTemplateStore) List(_ context.Context) ([]*models.Template, error) {
	out := make([]*models.Template, 0, len(m.templates))
	for _, t := range m.templates {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memTemplateStore) Update(_ context.Context, t *models.Template) error {
	if _, ok := m.templates[t.ID]; !ok {
		return errors.New("not found")
	}
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memTemplateStore) SetDefault(_ context.Context, id int) error {
	if _, ok := m.templates[id]; !ok {
		return errors.New("not found")
	}
	for _, t := range m.templates {
		t.IsDefault = t.ID == id
	}
	return nil
}

func (m *memTemplateStore) Delete(_ context.Context, id int) error {
	t, ok := m.templates[id]
	if !ok {
		return errors.New("not found")
	}
	if t.IsDefault {
		return errors.New("default template cannot be deleted")
	}
	delete(m.templates, id)
	return nil
}

func (m *memTemplateStore) defaultCount() int {
	n := 0
	for _, t := range m.templates {
		if t.IsDefault {
			n++
		}
	}
	return n
}

func TestSetDefaultKeepsSingleDefault(t *testing.T) {
	store := newMemTemplateStore()
	svc := NewTemplateService(store)
	ctx := context.Background()

	a, err := svc.CreateTemplate(ctx, &models.CreateTemplateRequest{Name: "A", IsDefault: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.CreateTemplate(ctx, &models.CreateTemplateRequest{Name: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if store.defaultCount() != 1 {
		t.Fatalf("default count = %d, want 1", store.defaultCount())
	}

	if err := svc.SetDefault(ctx, b.ID); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if store.defaultCount() != 1 {
		t.Fatalf("default count after switch = %d, want 1", store.defaultCount())
	}

	got, err := svc.GetDefault(ctx)
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got.ID != b.ID {
		t.Fatalf("default = %d, want %d", got.ID, b.ID)
	}
	if cur, _ := svc.GetTemplate(ctx, a.ID); cur.IsDefault {
		t.Fatal("previous default still flagged")
	}
}

func TestCreateAsDefaultDisplacesCurrent(t *testing.T) {
	store := newMemTemplateStore()
	svc := NewTemplateService(store)
	ctx := context.Background()

	first, _ := svc.CreateTemplate(ctx, &models.CreateTemplateRequest{Name: "First", IsDefault: true})
	second, err := svc.CreateTemplate(ctx, &models.CreateTemplateRequest{Name: "Second", IsDefault: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if store.defaultCount() != 1 {
		t.Fatalf("default count = %d, want 1", store.defaultCount())
	}
	got, _ := svc.GetDefault(ctx)
	if got.ID != second.ID {
		t.Fatalf("default = %d, want %d", got.ID, second.ID)
	}
	if cur, _ := svc.GetTemplate(ctx, first.ID); cur.IsDefault {
		t.Fatal("first template still flagged default")
	}
}

func TestGetDefaultFallsBackToBuiltIn(t *testing.T) {
	svc := NewTemplateService(newMemTemplateStore())

	tpl, err := svc.GetDefault(context.Background())
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if tpl.Name != "Standard" || !tpl.IsDefault {
		t.Fatalf("expected built-in default, got %+v", tpl)
	}
}

func TestCreateTemplateRejectsBadAccentColor(t *testing.T) {
	svc := NewTemplateService(newMemTemplateStore())
	ctx := context.Background()

	for _, color := range []string{"red", "#12", "#12345g", "1e6091"} {
		_, err := svc.CreateTemplate(ctx, &models.CreateTemplateRequest{
			Name:        "Bad color",
			AccentColor: color,
		})
		if err == nil {
			t.Errorf("accent color %q accepted, want error", color)
		}
	}

	if _, err := svc.CreateTemplate(ctx, &models.CreateTemplateRequest{
		Name:        "Good color",
		AccentColor: "#1e6091",
	}); err != nil {
		t.Fatalf("valid accent color rejected: %v", err)
	}
}

func TestCreateTemplateRejectsUnknownLayout(t *testing.T) {
	svc := NewTemplateService(newMemTemplateStore())

	_, err := svc.CreateTemplate(context.Background(), &models.CreateTemplateRequest{
		Name:   "Bad",
		Layout: "fancy",
	})
	if err == nil {
		t.Fatal("expected error for unknown layout")
	}
}
