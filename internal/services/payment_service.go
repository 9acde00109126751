package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"garage-backend/internal/metrics"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

// PaymentService lets a customer settle an invoice's amount due
// through the payment gateway
type PaymentService struct {
	Transactions *repositories.PaymentRepository
	Invoices     *InvoiceService

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewPaymentService(
	keyID, keySecret, webhookSecret string,
	transactions *repositories.PaymentRepository,
	invoices *InvoiceService,
) *PaymentService {
	return &PaymentService{
		Transactions:  transactions,
		Invoices:      invoices,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (s *PaymentService) client() *razorpay.Client {
	if s.keyID == "" || s.keySecret == "" {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// CreateOrder creates a gateway order for an invoice's amount due
func (s *PaymentService) CreateOrder(ctx context.Context, invoiceID int) (*models.CreateOrderResponse, error) {
	client := s.client()
	if client == nil {
		return nil, fmt.Errorf("payment gateway not configured")
	}

	invoice, err := s.Invoices.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, fmt.Errorf("invoice is already paid")
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return nil, fmt.Errorf("invoice is cancelled")
	}
	if !invoice.AmountDue.IsPositive() {
		return nil, fmt.Errorf("nothing due on this invoice")
	}

	// The gateway takes the smallest currency unit
	amountPaise := int(invoice.AmountDue.Mul(decimal.NewFromInt(100)).IntPart())

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_%d_%d", invoice.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"invoice_id":     invoice.ID,
			"invoice_number": invoice.InvoiceNumber,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}
	orderID := order["id"].(string)

	tx := &models.OnlineTransaction{
		RazorpayOrderID: orderID,
		InvoiceID:       invoice.ID,
		Amount:          invoice.AmountDue,
		Status:          models.OnlineTxStatusCreated,
	}
	if err := s.Transactions.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:     orderID,
		AmountPaise: amountPaise,
		Currency:    "INR",
		KeyID:       s.keyID,
	}, nil
}

// VerifyPayment checks the checkout callback signature and marks the
// invoice paid on success
func (s *PaymentService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.OnlineTransaction, error) {
	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		_ = s.Transactions.MarkFailed(ctx, req.RazorpayOrderID, "Invalid signature")
		metrics.PaymentsVerified.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("invalid payment signature")
	}

	tx, err := s.Transactions.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, fmt.Errorf("transaction not found: %w", err)
	}
	if tx.Status == models.OnlineTxStatusSuccess {
		return tx, nil
	}

	if err := s.Transactions.MarkSuccess(ctx, req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := s.Invoices.MarkPaid(ctx, tx.InvoiceID); err != nil {
		log.Printf("[Payment] Payment verified but invoice %d not marked paid: %v", tx.InvoiceID, err)
	}

	metrics.PaymentsVerified.WithLabelValues("success").Inc()
	return s.Transactions.GetByOrderID(ctx, req.RazorpayOrderID)
}

// verifySignature verifies the checkout callback signature
func (s *PaymentService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature verifies the webhook body signature
func (s *PaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // Skip verification if not configured
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles asynchronous gateway events
func (s *PaymentService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handlePaymentCaptured(ctx, payload)
	case "payment.failed":
		return s.handlePaymentFailed(ctx, payload)
	default:
		log.Printf("[Payment] Unhandled webhook event: %s", event)
		return nil
	}
}

func webhookPaymentEntity(payload map[string]interface{}) map[string]interface{} {
	entity, ok := payload["payment"].(map[string]interface{})
	if !ok {
		entity = payload
	}
	if inner, ok := entity["entity"].(map[string]interface{}); ok {
		return inner
	}
	return entity
}

func (s *PaymentService) handlePaymentCaptured(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookPaymentEntity(payload)
	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	tx, err := s.Transactions.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("transaction not found: %w", err)
	}
	if tx.Status == models.OnlineTxStatusSuccess {
		log.Printf("[Payment] Payment already processed: %s", orderID)
		return nil
	}

	if err := s.Transactions.MarkSuccess(ctx, orderID, paymentID); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if err := s.Invoices.MarkPaid(ctx, tx.InvoiceID); err != nil {
		log.Printf("[Payment] Webhook captured but invoice %d not marked paid: %v", tx.InvoiceID, err)
	}

	metrics.PaymentsVerified.WithLabelValues("success").Inc()
	return nil
}

func (s *PaymentService) handlePaymentFailed(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookPaymentEntity(payload)
	orderID, _ := entity["order_id"].(string)
	reason := "Payment failed"
	if desc, ok := entity["error_description"].(string); ok && desc != "" {
		reason = desc
	}

	if orderID == "" {
		return nil
	}
	metrics.PaymentsVerified.WithLabelValues("failed").Inc()
	return s.Transactions.MarkFailed(ctx, orderID, reason)
}

// History returns all payment attempts for an invoice
func (s *PaymentService) History(ctx context.Context, invoiceID int) ([]*models.OnlineTransaction, error) {
	return s.Transactions.ListByInvoice(ctx, invoiceID)
}
