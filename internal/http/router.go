package http

import (
	"net/http"

	"garage-backend/internal/handlers"
	"garage-backend/internal/middleware"
	"garage-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	customerHandler *handlers.CustomerHandler,
	catalogHandler *handlers.CatalogHandler,
	estimateHandler *handlers.EstimateHandler,
	invoiceHandler *handlers.InvoiceHandler,
	templateHandler *handlers.TemplateHandler,
	attachmentHandler *handlers.AttachmentHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Public API routes - Payment callbacks. Authenticity comes from
	// the gateway signature, not a JWT.
	r.HandleFunc("/api/payments/verify", paymentHandler.VerifyPayment).Methods("POST")
	r.HandleFunc("/api/payments/webhook", paymentHandler.Webhook).Methods("POST")

	// Protected API routes - Current user
	meAPI := r.PathPrefix("/auth/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Protected API routes - Item catalog
	itemsAPI := r.PathPrefix("/api/items").Subrouter()
	itemsAPI.Use(authMiddleware.Authenticate)
	itemsAPI.HandleFunc("", catalogHandler.ListItems).Methods("GET")
	itemsAPI.HandleFunc("", catalogHandler.CreateItem).Methods("POST")
	itemsAPI.HandleFunc("/{id}", catalogHandler.GetItem).Methods("GET")
	itemsAPI.HandleFunc("/{id}", catalogHandler.UpdateItem).Methods("PUT")
	itemsAPI.HandleFunc("/{id}", catalogHandler.DeleteItem).Methods("DELETE")

	// Protected API routes - Rate catalogs, one subrouter per kind
	rateCatalogs := []struct {
		prefix string
		kind   string
	}{
		{"/api/taxes", models.RateKindTax},
		{"/api/discounts", models.RateKindDiscount},
		{"/api/labor-rates", models.RateKindLabor},
		{"/api/other-charges", models.RateKindOtherCharge},
	}
	for _, rc := range rateCatalogs {
		sub := r.PathPrefix(rc.prefix).Subrouter()
		sub.Use(authMiddleware.Authenticate)
		sub.HandleFunc("", catalogHandler.ListRates(rc.kind)).Methods("GET")
		sub.HandleFunc("", catalogHandler.CreateRate(rc.kind)).Methods("POST")
		sub.HandleFunc("/{id}", catalogHandler.UpdateRate(rc.kind)).Methods("PUT")
		sub.HandleFunc("/{id}", catalogHandler.DeleteRate(rc.kind)).Methods("DELETE")
	}

	// Protected API routes - Estimates
	estimatesAPI := r.PathPrefix("/api/estimates").Subrouter()
	estimatesAPI.Use(authMiddleware.Authenticate)
	estimatesAPI.HandleFunc("", estimateHandler.ListEstimates).Methods("GET")
	estimatesAPI.HandleFunc("", estimateHandler.CreateEstimate).Methods("POST")
	estimatesAPI.HandleFunc("/{id}", estimateHandler.GetEstimate).Methods("GET")
	estimatesAPI.HandleFunc("/{id}", estimateHandler.UpdateEstimate).Methods("PUT")
	estimatesAPI.HandleFunc("/{id}", estimateHandler.DeleteEstimate).Methods("DELETE")
	estimatesAPI.HandleFunc("/{id}/accept", estimateHandler.AcceptEstimate).Methods("POST")
	estimatesAPI.HandleFunc("/{id}/reject", estimateHandler.RejectEstimate).Methods("POST")
	estimatesAPI.HandleFunc("/{id}/preview", estimateHandler.PreviewEstimate).Methods("GET")
	estimatesAPI.HandleFunc("/{id}/pdf", estimateHandler.EstimatePDF).Methods("GET")
	estimatesAPI.HandleFunc("/{id}/send", estimateHandler.SendEstimate).Methods("POST")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/status", invoiceHandler.UpdateStatus).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}/preview", invoiceHandler.PreviewInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.InvoicePDF).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/send", invoiceHandler.SendInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/payment-order", invoiceHandler.CreatePaymentOrder).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/payments", invoiceHandler.PaymentHistory).Methods("GET")

	// Protected API routes - Templates (deletion is admin only)
	templatesAPI := r.PathPrefix("/api/templates").Subrouter()
	templatesAPI.Use(authMiddleware.Authenticate)
	templatesAPI.HandleFunc("", templateHandler.ListTemplates).Methods("GET")
	templatesAPI.HandleFunc("", templateHandler.CreateTemplate).Methods("POST")
	templatesAPI.HandleFunc("/default", templateHandler.GetDefaultTemplate).Methods("GET")
	templatesAPI.HandleFunc("/{id}", templateHandler.GetTemplate).Methods("GET")
	templatesAPI.HandleFunc("/{id}", templateHandler.UpdateTemplate).Methods("PUT")
	templatesAPI.HandleFunc("/{id}/default", templateHandler.SetDefaultTemplate).Methods("PUT")
	templatesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(templateHandler.DeleteTemplate)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Attachments
	documentsAPI := r.PathPrefix("/api/documents").Subrouter()
	documentsAPI.Use(authMiddleware.Authenticate)
	documentsAPI.HandleFunc("/{type}/{id}/attachments", attachmentHandler.List).Methods("GET")
	documentsAPI.HandleFunc("/{type}/{id}/attachments", attachmentHandler.Upload).Methods("POST")

	attachmentsAPI := r.PathPrefix("/api/attachments").Subrouter()
	attachmentsAPI.Use(authMiddleware.Authenticate)
	attachmentsAPI.HandleFunc("/{id}", attachmentHandler.Download).Methods("GET")
	attachmentsAPI.HandleFunc("/{id}", attachmentHandler.Delete).Methods("DELETE")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
