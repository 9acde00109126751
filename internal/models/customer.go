package models

import "time"

// Address holds one postal address block
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// Empty reports whether no address fields are set
func (a Address) Empty() bool {
	return a.Line1 == "" && a.Line2 == "" && a.City == "" && a.State == "" && a.Zip == ""
}

type Customer struct {
	ID            int       `json:"id"`
	DisplayName   string    `json:"display_name"`
	ContactName   string    `json:"contact_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Billing       Address   `json:"billing_address"`
	Shipping      Address   `json:"shipping_address"`
	AccountNumber string    `json:"account_number"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	DisplayName   string  `json:"display_name"`
	ContactName   string  `json:"contact_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Billing       Address `json:"billing_address"`
	Shipping      Address `json:"shipping_address"`
	AccountNumber string  `json:"account_number"`
	Notes         string  `json:"notes"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	DisplayName   string  `json:"display_name"`
	ContactName   string  `json:"contact_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Billing       Address `json:"billing_address"`
	Shipping      Address `json:"shipping_address"`
	AccountNumber string  `json:"account_number"`
	Notes         string  `json:"notes"`
}
