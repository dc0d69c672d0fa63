package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mlindgren/vitrine/internal"
	"github.com/mlindgren/vitrine/internal/auth"
	"github.com/mlindgren/vitrine/internal/bootstrap"
	"github.com/mlindgren/vitrine/internal/handler"
	"github.com/mlindgren/vitrine/internal/handler/api"
	"github.com/mlindgren/vitrine/internal/handler/storefront"
	"github.com/mlindgren/vitrine/internal/middleware"
	"github.com/mlindgren/vitrine/internal/repository"
	"github.com/mlindgren/vitrine/internal/router"
	"github.com/mlindgren/vitrine/internal/routes"
	"github.com/mlindgren/vitrine/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := repository.NewStore(pool)

	// Seed privileged accounts
	if err := bootstrap.EnsurePrivilegedUsers(ctx, repo, cfg.Seed, logger); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	// Initialize services
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	catalogService := service.NewCatalogService(repo)
	cartService := service.NewCartService(repo)
	checkoutService := service.NewCheckoutService(repo)
	orderService := service.NewOrderService(repo)
	userService := service.NewUserService(repo, cfg.SessionTTL)
	tokenService := service.NewTokenService(repo, tokenManager, cfg.RefreshTokenTTL)

	// Load templates with renderer
	renderer, err := handler.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	secure := cfg.Env == "prod"

	// Storefront dependencies
	storefrontDeps := routes.StorefrontDeps{
		ProductHandler:  storefront.NewProductHandler(catalogService, cartService, renderer),
		CartHandler:     storefront.NewCartHandler(cartService, userService, renderer, secure),
		AuthHandler:     storefront.NewAuthHandler(userService, cartService, renderer, secure),
		CheckoutHandler: storefront.NewCheckoutHandler(cartService, checkoutService, orderService, userService, renderer),
		OrderHandler:    storefront.NewOrderHandler(orderService, cartService, renderer),
		AccountHandler:  storefront.NewAccountHandler(userService, cartService, renderer),
	}

	// API dependencies
	apiDeps := routes.APIDeps{
		CatalogHandler: api.NewCatalogHandler(catalogService),
		CartHandler:    api.NewCartHandler(cartService),
		OrderHandler:   api.NewOrderHandler(orderService, checkoutService),
		TokenHandler:   api.NewTokenHandler(tokenService),
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("vitrine")

	// Main router: session cookie auth for the storefront, bearer tokens for
	// the API. Both identity middlewares are optional; route groups enforce
	// authentication where needed.
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithSession(userService),
		middleware.BearerAuth(tokenManager, userService),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register route groups
	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAPIRoutes(r, apiDeps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)
	return http.ListenAndServe(addr, r)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
