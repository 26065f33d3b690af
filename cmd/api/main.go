package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/daybook-api/internal/application/service"
	"github.com/sangkips/daybook-api/internal/config"
	"github.com/sangkips/daybook-api/internal/infrastructure/database"
	"github.com/sangkips/daybook-api/internal/presentation/http/handler"
	"github.com/sangkips/daybook-api/internal/presentation/http/middleware"
	"github.com/sangkips/daybook-api/internal/presentation/http/routes"
	"github.com/sangkips/daybook-api/pkg/lock"
	"github.com/sangkips/daybook-api/pkg/logger"
	"github.com/sangkips/daybook-api/pkg/utils"
	"github.com/sangkips/daybook-api/pkg/validation"
	"github.com/sirupsen/logrus"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	format := cfg.Log.Format
	if format == "" && cfg.IsProduction() {
		format = "json"
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: format})

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	location, err := utils.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.App.Timezone).Warn("Unknown timezone, using UTC")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the configured store
	stores, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.WithError(err).Error("Failed to close store")
		}
	}()

	if cfg.App.SeedDemoData {
		if err := database.SeedDemoData(ctx, stores, utils.Today(location), log); err != nil {
			log.WithError(err).Warn("Failed to seed demo data")
		}
	}

	// Sale writes need one lock across every API replica sharing the database
	var locker lock.Locker = lock.NewMutexLocker()
	if cfg.Redis.URL != "" {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Redis.SaleLockTTL)
		log.Info("Using redis sale lock")
	}

	v := validation.New()

	// Initialize services
	saleService := service.NewSaleService(stores.Sales, locker, v, log)
	expenseService := service.NewExpenseService(stores.Expenses, v)
	purchaseService := service.NewPurchaseService(stores.Purchases, v)
	reportService := service.NewReportService(stores.Sales, stores.Expenses, stores.Purchases, location, log)
	jwtManager := utils.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenExpiry, cfg.App.Name)
	authService := service.NewAuthService(cfg.Auth.PasswordHash, jwtManager, v)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Sale:     handler.NewSaleHandler(saleService, cfg.Sales.UpsertByDate),
		Expense:  handler.NewExpenseHandler(expenseService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Report:   handler.NewReportHandler(reportService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.Duration) * time.Second,
	})
	defer rateLimiter.Stop()

	deps := &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: stores.IdempotencyKeys,
		RateLimiter:     rateLimiter,
		Store:           stores.Driver,
		Degraded:        stores.Degraded(&cfg.Store),
	}
	if cfg.Auth.Enabled {
		deps.Auth = authService
	}

	// Setup routes
	router := routes.Setup(handlers, deps)

	go sweepIdempotencyKeys(ctx, stores, log)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":  cfg.App.Port,
			"env":   cfg.App.Env,
			"store": stores.Driver,
		}).Infof("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exited")
}

// sweepIdempotencyKeys drops expired idempotency keys until ctx is done
func sweepIdempotencyKeys(ctx context.Context, stores *database.Stores, log *logrus.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := stores.IdempotencyKeys.DeleteExpired(ctx); err != nil {
				log.WithError(err).Warn("Failed to delete expired idempotency keys")
			}
		}
	}
}
