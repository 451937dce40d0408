package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/application/service"
	"github.com/sangkips/gopos-api/internal/config"
	"github.com/sangkips/gopos-api/internal/infrastructure/database"
	"github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/internal/presentation/http/handler"
	"github.com/sangkips/gopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/gopos-api/internal/presentation/http/routes"
	"github.com/sangkips/gopos-api/pkg/eventbus"
	"github.com/sangkips/gopos-api/pkg/printer"
	"github.com/sangkips/gopos-api/pkg/utils"
)

//go:generate swag init --dir .,../../internal --generalInfo main.go --output ../../docs --outputTypes go

const idempotencySweepInterval = time.Hour

// @title GoPOS API
// @version 1.0
// @description Multi-tenant point of sale backend: catalog, order ledger and sales reports.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.New(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the super admin
	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	itemRepo := repository.NewItemRepository(db)
	modifierRepo := repository.NewModifierRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Order events go to RabbitMQ when a broker is configured
	var publisher eventbus.Publisher = eventbus.NewNullPublisher()
	if cfg.Events.AMQPURL != "" {
		rabbit, err := eventbus.DialRabbit(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.PublishTimeout)
		if err != nil {
			log.Printf("Warning: Failed to connect to event broker, events disabled: %v", err)
		} else {
			publisher = rabbit
			log.Printf("Publishing order events to exchange %s", cfg.Events.Exchange)
		}
	}
	defer publisher.Close()

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	clientService := service.NewClientService(userRepo)
	employeeService := service.NewEmployeeService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	itemService := service.NewItemService(itemRepo, categoryRepo)
	modifierService := service.NewModifierService(modifierRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, itemRepo, publisher)
	reportService := service.NewReportService(orderRepo)
	printerService := service.NewPrinterService(
		thermalPrinter,
		orderRepo,
		userRepo,
		cfg.Printer.Type,
		cfg.Printer.Width,
		cfg.Printer.StoreName,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Item:     handler.NewItemHandler(itemService),
		Modifier: handler.NewModifierHandler(modifierService),
		Order:    handler.NewOrderHandler(orderService),
		Report:   handler.NewReportHandler(reportService),
		Client:   handler.NewClientHandler(clientService),
		Employee: handler.NewEmployeeHandler(employeeService),
		Printer:  handler.NewPrinterHandler(printerService),
		Health: handler.NewHealthHandler(cfg.App.Name, func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(
		cfg.RateLimit.Requests,
		cfg.RateLimit.Duration,
	))
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Expired idempotency keys are swept in the background
	go func() {
		ticker := time.NewTicker(idempotencySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := idempotencyRepo.DeleteExpired(ctx, time.Now())
				if err != nil {
					log.Printf("Warning: Failed to delete expired idempotency keys: %v", err)
				} else if n > 0 {
					log.Printf("Deleted %d expired idempotency keys", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
