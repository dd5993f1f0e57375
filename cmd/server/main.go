package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/segyhp/finance-tracker/internal/cache"
	"github.com/segyhp/finance-tracker/internal/config"
	"github.com/segyhp/finance-tracker/internal/handler"
	"github.com/segyhp/finance-tracker/internal/middleware"
	"github.com/segyhp/finance-tracker/internal/repository"
	"github.com/segyhp/finance-tracker/internal/service"
	"github.com/segyhp/finance-tracker/internal/storage"
	"github.com/segyhp/finance-tracker/pkg/logger"
	"github.com/segyhp/finance-tracker/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, "finance-tracker-api")
	time.Local = cfg.Location()

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := storage.Connect(ctx, cfg.DSN(), storage.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.GetConnMaxLifetime(),
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := storage.RunMigrations(db.DB); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Database migrations applied")
	}

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	planRepo := repository.NewInstallmentPlanRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Initialize services
	planCache := cache.NewRedisPlanCache(redisClient, cfg.GetCacheTTL())
	installmentService := service.NewInstallmentService(planRepo, installmentRepo, planCache)
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo)
	dashboardService := service.NewDashboardService(transactionRepo, planRepo, installmentRepo)

	validate := handler.NewValidator()
	handlers := routeHandlers{
		installment: handler.NewInstallmentHandler(installmentService, validate),
		category:    handler.NewCategoryHandler(categoryService, validate),
		transaction: handler.NewTransactionHandler(transactionService, validate),
		dashboard:   handler.NewDashboardHandler(dashboardService),
		health:      handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout()),
	}

	trustedProxies, err := cfg.TrustedProxies()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse trusted proxies")
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, trustedProxies...)
	defer rateLimiter.Stop()
	metrics := middleware.NewMetrics("finance_tracker")

	// Setup routes
	router := setupRoutes(handlers, rateLimiter, metrics)

	// Start server
	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Server.Env).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func initRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetHealthTimeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr()).Msg("Redis unavailable, plan reads go to the database")
	}

	return client
}

type routeHandlers struct {
	installment *handler.InstallmentHandler
	category    *handler.CategoryHandler
	transaction *handler.TransactionHandler
	dashboard   *handler.DashboardHandler
	health      *handler.HealthHandler
}

func setupRoutes(h routeHandlers, rateLimiter *middleware.RateLimiter, metrics *middleware.Metrics) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware, metrics.Middleware)

	// Health check
	router.HandleFunc("/health", h.health.Health).Methods("GET")
	router.HandleFunc("/health/ready", h.health.Ready).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(rateLimiter.Middleware)

	// Static segments are registered before {id} so they win the match.
	// Updates are partial, PUT stays as an alias of PATCH for older clients.
	api.HandleFunc("/installments/preview", h.installment.Preview).Methods("POST")
	api.HandleFunc("/installments/upcoming", h.installment.Upcoming).Methods("GET")
	api.HandleFunc("/installments/{installmentId}/pay", h.installment.Pay).Methods("POST")
	api.HandleFunc("/installments", h.installment.Create).Methods("POST")
	api.HandleFunc("/installments", h.installment.List).Methods("GET")
	api.HandleFunc("/installments/{id}", h.installment.Get).Methods("GET")
	api.HandleFunc("/installments/{id}", h.installment.Update).Methods("PATCH", "PUT")
	api.HandleFunc("/installments/{id}", h.installment.Delete).Methods("DELETE")

	api.HandleFunc("/categories/reorder", h.category.Reorder).Methods("PUT")
	api.HandleFunc("/categories/defaults", h.category.SeedDefaults).Methods("POST")
	api.HandleFunc("/categories", h.category.Create).Methods("POST")
	api.HandleFunc("/categories", h.category.List).Methods("GET")
	api.HandleFunc("/categories/{id}", h.category.Get).Methods("GET")
	api.HandleFunc("/categories/{id}", h.category.Update).Methods("PATCH", "PUT")
	api.HandleFunc("/categories/{id}", h.category.Delete).Methods("DELETE")

	api.HandleFunc("/transactions", h.transaction.Create).Methods("POST")
	api.HandleFunc("/transactions", h.transaction.List).Methods("GET")
	api.HandleFunc("/transactions/{id}", h.transaction.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}", h.transaction.Update).Methods("PATCH", "PUT")
	api.HandleFunc("/transactions/{id}", h.transaction.Delete).Methods("DELETE")

	api.HandleFunc("/dashboard/monthly", h.dashboard.Monthly).Methods("GET")

	return router
}
