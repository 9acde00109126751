package services

import (
	"context"
	"encoding/json"
	"errors"

	"garage-backend/internal/cache"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if req.DisplayName == "" {
		return nil, errors.New("display name is required")
	}

	customer := &models.Customer{
		DisplayName:   req.DisplayName,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		Billing:       req.Billing,
		Shipping:      req.Shipping,
		AccountNumber: req.AccountNumber,
		Notes:         req.Notes,
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	cache.InvalidateCustomerCaches(ctx)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

// ListCustomers returns all customers, serving the unfiltered list
// from cache when available
func (s *CustomerService) ListCustomers(ctx context.Context, search string) ([]*models.Customer, error) {
	if search == "" {
		if data, ok := cache.GetCached(ctx, cache.CustomersKey); ok {
			var customers []*models.Customer
			if err := json.Unmarshal(data, &customers); err == nil {
				return customers, nil
			}
		}
	}

	customers, err := s.Repo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	if search == "" {
		if data, err := json.Marshal(customers); err == nil {
			cache.SetCached(ctx, cache.CustomersKey, data, cache.CatalogTTL)
		}
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.DisplayName == "" {
		return nil, errors.New("display name is required")
	}

	customer := &models.Customer{
		ID:            id,
		DisplayName:   req.DisplayName,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		Billing:       req.Billing,
		Shipping:      req.Shipping,
		AccountNumber: req.AccountNumber,
		Notes:         req.Notes,
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	cache.InvalidateCustomerCaches(ctx)
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateCustomerCaches(ctx)
	return nil
}
