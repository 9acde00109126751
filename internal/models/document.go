package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document types
const (
	DocumentTypeEstimate = "estimate"
	DocumentTypeInvoice  = "invoice"
)

// Estimate statuses
const (
	EstimateStatusPending  = "pending"
	EstimateStatusAccepted = "accepted"
	EstimateStatusRejected = "rejected"
)

// Invoice statuses. Overdue is derived from unpaid + past due date,
// never written directly.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusUnpaid    = "unpaid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Estimate is a pre-approval cost proposal
type Estimate struct {
	ID             int             `json:"id"`
	EstimateNumber string          `json:"estimate_number"`
	CustomerID     *int            `json:"customer_id"`
	TaxRateID      *int            `json:"tax_rate_id"`
	DiscountRateID *int            `json:"discount_rate_id"`
	PONumber       string          `json:"po_number"`
	SalesRep       string          `json:"sales_rep"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	InvoiceID      *int            `json:"invoice_id,omitempty"`
	Items          []LineItem      `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Invoice is a billing document
type Invoice struct {
	ID             int             `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	CustomerID     *int            `json:"customer_id"`
	EstimateID     *int            `json:"estimate_id,omitempty"`
	TaxRateID      *int            `json:"tax_rate_id"`
	DiscountRateID *int            `json:"discount_rate_id"`
	PONumber       string          `json:"po_number"`
	SalesRep       string          `json:"sales_rep"`
	Status         string          `json:"status"`
	DueDate        *time.Time      `json:"due_date"`
	Notes          string          `json:"notes"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	AmountDue      decimal.Decimal `json:"amount_due"`
	Items          []LineItem      `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateEstimateRequest represents the request body for creating an estimate
type CreateEstimateRequest struct {
	CustomerID     *int            `json:"customer_id"`
	TaxRateID      *int            `json:"tax_rate_id"`
	DiscountRateID *int            `json:"discount_rate_id"`
	PONumber       string          `json:"po_number"`
	SalesRep       string          `json:"sales_rep"`
	Notes          string          `json:"notes"`
	Items          []LineItemInput `json:"items"`
}

// UpdateEstimateRequest represents the request body for updating an estimate
type UpdateEstimateRequest struct {
	CustomerID     *int            `json:"customer_id"`
	TaxRateID      *int            `json:"tax_rate_id"`
	DiscountRateID *int            `json:"discount_rate_id"`
	PONumber       string          `json:"po_number"`
	SalesRep       string          `json:"sales_rep"`
	Notes          string          `json:"notes"`
	Items          []LineItemInput `json:"items"`
}

// CreateInvoiceRequest represents the request body for creating an invoice
type CreateInvoiceRequest struct {
	CustomerID     *int            `json:"customer_id"`
	TaxRateID      *int            `json:"tax_rate_id"`
	DiscountRateID *int            `json:"discount_rate_id"`
	PONumber       string          `json:"po_number"`
	SalesRep       string          `json:"sales_rep"`
	DueDate        *time.Time      `json:"due_date"`
	Notes          string          `json:"notes"`
	Items          []LineItemInput `json:"items"`
}

// UpdateInvoiceRequest represents the request body for updating an invoice
type UpdateInvoiceRequest struct {
	CustomerID     *int            `json:"customer_id"`
	TaxRateID      *int            `json:"tax_rate_id"`
	DiscountRateID *int            `json:"discount_rate_id"`
	PONumber       string          `json:"po_number"`
	SalesRep       string          `json:"sales_rep"`
	DueDate        *time.Time      `json:"due_date"`
	Notes          string          `json:"notes"`
	Items          []LineItemInput `json:"items"`
}

// UpdateInvoiceStatusRequest represents an explicit status transition
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}
