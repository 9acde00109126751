package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"garage-backend/internal/config"
	"garage-backend/internal/metrics"
	"garage-backend/internal/models"
	"garage-backend/internal/repositories"
)

// SendService dispatches rendered documents to customers by email and
// keeps the send log
type SendService struct {
	cfg       *config.Config
	Renderer  *RenderService
	Estimates *EstimateService
	Invoices  *InvoiceService
	SendLogs  *repositories.SendLogRepository
}

func NewSendService(
	cfg *config.Config,
	renderer *RenderService,
	estimates *EstimateService,
	invoices *InvoiceService,
	sendLogs *repositories.SendLogRepository,
) *SendService {
	return &SendService{
		cfg:       cfg,
		Renderer:  renderer,
		Estimates: estimates,
		Invoices:  invoices,
		SendLogs:  sendLogs,
	}
}

// SendEstimate renders an estimate and emails it to the recipient
func (s *SendService) SendEstimate(ctx context.Context, id int, req *models.SendDocumentRequest, sentBy *int) error {
	estimate, err := s.Estimates.GetEstimate(ctx, id)
	if err != nil {
		return err
	}

	data, err := s.Renderer.EstimateData(ctx, estimate)
	if err != nil {
		return err
	}

	recipient := s.resolveRecipient(req, data.Customer)
	if recipient == "" {
		return errors.New("no recipient: provide one or set the customer's email")
	}

	body, err := s.Renderer.RenderHTML(ctx, data, nil)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Estimate %s from %s", estimate.EstimateNumber, s.cfg.Shop.Name)
	if err := s.sendMail(recipient, subject, req.Message, body); err != nil {
		return err
	}

	s.logSend(ctx, models.DocumentTypeEstimate, id, recipient, sentBy)
	metrics.DocumentsSent.WithLabelValues(models.DocumentTypeEstimate).Inc()
	return nil
}

// SendInvoice renders an invoice, emails it and moves a draft to sent
func (s *SendService) SendInvoice(ctx context.Context, id int, req *models.SendDocumentRequest, sentBy *int) error {
	invoice, err := s.Invoices.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return errors.New("cancelled invoices cannot be sent")
	}

	data, err := s.Renderer.InvoiceData(ctx, invoice)
	if err != nil {
		return err
	}

	recipient := s.resolveRecipient(req, data.Customer)
	if recipient == "" {
		return errors.New("no recipient: provide one or set the customer's email")
	}

	body, err := s.Renderer.RenderHTML(ctx, data, nil)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, s.cfg.Shop.Name)
	if err := s.sendMail(recipient, subject, req.Message, body); err != nil {
		return err
	}

	if err := s.Invoices.MarkSent(ctx, id); err != nil {
		log.Printf("[Send] Invoice %d dispatched but status update failed: %v", id, err)
	}

	s.logSend(ctx, models.DocumentTypeInvoice, id, recipient, sentBy)
	metrics.DocumentsSent.WithLabelValues(models.DocumentTypeInvoice).Inc()
	return nil
}

// History returns the dispatch log for one document
func (s *SendService) History(ctx context.Context, docType string, docID int) ([]*models.SendLog, error) {
	return s.SendLogs.ListByDocument(ctx, docType, docID)
}

func (s *SendService) resolveRecipient(req *models.SendDocumentRequest, customer *models.Customer) string {
	if req != nil && req.Recipient != "" {
		return req.Recipient
	}
	if customer != nil {
		return customer.Email
	}
	return ""
}

func (s *SendService) logSend(ctx context.Context, docType string, docID int, recipient string, sentBy *int) {
	entry := &models.SendLog{
		DocumentType: docType,
		DocumentID:   docID,
		Recipient:    recipient,
		SentBy:       sentBy,
	}
	if err := s.SendLogs.Create(ctx, entry); err != nil {
		log.Printf("[Send] Failed to record send log for %s %d: %v", docType, docID, err)
	}
}

// sendMail delivers an HTML email over authenticated SMTP
func (s *SendService) sendMail(to, subject, message string, page []byte) error {
	if s.cfg.SMTP.Host == "" {
		return errors.New("SMTP is not configured")
	}

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.cfg.SMTP.FromName, s.cfg.SMTP.FromEmail),
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var body strings.Builder
	for key, value := range headers {
		body.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	body.WriteString("\r\n")
	if message != "" {
		body.WriteString("<p>" + html.EscapeString(message) + "</p>\r\n")
	}
	body.Write(page)

	auth := smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTP.Host, s.cfg.SMTP.Port)

	return smtp.SendMail(addr, auth, s.cfg.SMTP.FromEmail, []string{to}, []byte(body.String()))
}
