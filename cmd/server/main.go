package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"garage-backend/internal/auth"
	"garage-backend/internal/cache"
	"garage-backend/internal/config"
	"garage-backend/internal/database"
	"garage-backend/internal/db"
	"garage-backend/internal/handlers"
	"garage-backend/internal/health"
	h "garage-backend/internal/http"
	"garage-backend/internal/middleware"
	"garage-backend/internal/monitoring"
	"garage-backend/internal/repositories"
	"garage-backend/internal/services"
	"garage-backend/internal/storage"
	"garage-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	monitorPort := flag.Int("monitor-port", 9090, "Monitoring dashboard port")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (catalog reads will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded filesystem
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring dashboard server in background
	go monitoring.NewMonitoringServer(pool, *monitorPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize object storage (optional - attachments and logos
	// are unavailable without it)
	var objectStore *storage.ObjectStore
	if cfg.Storage.Endpoint != "" || cfg.Storage.Bucket != "" {
		store, err := storage.NewObjectStore(ctx, cfg)
		if err != nil {
			log.Printf("[Storage] Object storage unavailable: %v", err)
		} else {
			objectStore = store
			log.Println("[Storage] Object storage connected")
		}
	} else {
		log.Println("[Storage] Not configured, attachments disabled")
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	rateRepo := repositories.NewRateRepository(pool)
	estimateRepo := repositories.NewEstimateRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	templateRepo := repositories.NewTemplateRepository(pool)
	attachmentRepo := repositories.NewAttachmentRepository(pool)
	sendLogRepo := repositories.NewSendLogRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	customerService := services.NewCustomerService(customerRepo)
	catalogService := services.NewCatalogService(itemRepo, rateRepo)
	estimateService := services.NewEstimateService(estimateRepo, rateRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, rateRepo)
	templateService := services.NewTemplateService(templateRepo)
	renderService, err := services.NewRenderService(cfg, customerRepo, rateRepo, templateService)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}
	sendService := services.NewSendService(cfg, renderService, estimateService, invoiceService, sendLogRepo)
	paymentService := services.NewPaymentService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		paymentRepo,
		invoiceService,
	)
	attachmentService := services.NewAttachmentService(attachmentRepo, objectStore)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	estimateHandler := handlers.NewEstimateHandler(estimateService, renderService, sendService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, renderService, sendService, paymentService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		customerHandler,
		catalogHandler,
		estimateHandler,
		invoiceHandler,
		templateHandler,
		attachmentHandler,
		paymentHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
