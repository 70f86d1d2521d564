package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-agency/internal/api"
	"travel-agency/internal/config"
	"travel-agency/internal/migrate"
	"travel-agency/internal/modules/auth"
	"travel-agency/internal/modules/customers"
	"travel-agency/internal/modules/locations"
	emailSvc "travel-agency/pkg/email"
	"travel-agency/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(os.Getenv("APP_ENV") == "development")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// 2. --- HTTP server and middleware ---
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal("unable to parse database configuration", zap.Error(err))
	}
	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		appLogger.Fatal("unable to create connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("unable to ping database", zap.Error(err))
	}
	appLogger.Info("connected to the database")

	if err := migrate.Apply(context.Background(), dbPool); err != nil {
		appLogger.Fatal("database migration failed", zap.Error(err))
	}
	appLogger.Info("database schema up to date")

	// 4. --- Outbound email (optional) ---
	var emailer emailSvc.ServiceInterface
	if cfg.EmailFrom != "" {
		sender, err := emailSvc.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.EmailFrom)
		if err != nil {
			appLogger.Fatal("failed to initialize SES sender", zap.Error(err))
		}
		emailer = sender
	} else {
		appLogger.Warn("EMAIL_FROM not set, credential emails disabled")
	}
	templateManager, err := emailSvc.NewTemplateManager()
	if err != nil {
		appLogger.Fatal("failed to parse email templates", zap.Error(err))
	}

	// 5. --- Module wiring ---
	userRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(userRepo, emailer, templateManager, cfg.JWTSecret, cfg.JWTExpiry, appLogger)
	authHandler := auth.NewHandler(authService)

	locationRepo := locations.NewRepository(dbPool)
	locationService := locations.NewService(locationRepo, appLogger)
	locationHandler := locations.NewHandler(locationService)

	customerRepo := customers.NewRepository(dbPool)
	customerService := customers.NewService(customerRepo, locationRepo, appLogger)
	customerHandler := customers.NewHandler(customerService)

	api.SetupRoutes(e,
		authHandler,
		customerHandler,
		locationHandler,
		userRepo,
		cfg.JWTSecret,
	)

	// 6. --- Start with graceful shutdown ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		appLogger.Fatal("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server exiting")
}
