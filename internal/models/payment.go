package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Online transaction statuses
const (
	OnlineTxStatusCreated = "created"
	OnlineTxStatusSuccess = "success"
	OnlineTxStatusFailed  = "failed"
)

// OnlineTransaction tracks a payment order for an invoice's amount due
type OnlineTransaction struct {
	ID                int             `json:"id"`
	RazorpayOrderID   string          `json:"razorpay_order_id"`
	RazorpayPaymentID string          `json:"razorpay_payment_id"`
	InvoiceID         int             `json:"invoice_id"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	FailureReason     string          `json:"failure_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateOrderResponse is returned to the frontend to launch checkout
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	AmountPaise int    `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
}

// VerifyPaymentRequest carries the checkout callback fields
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
