package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/AmirejibiIlia/RateBridge/internal/config"
	httpserver "github.com/AmirejibiIlia/RateBridge/internal/http"
	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/auth"
	"github.com/AmirejibiIlia/RateBridge/pkg/feedback"
	"github.com/AmirejibiIlia/RateBridge/pkg/qr"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
	"github.com/AmirejibiIlia/RateBridge/pkg/summary"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	usersRepo := repository.NewUsersRepository(db)
	companiesRepo := repository.NewCompaniesRepository(db)
	qrCodesRepo := repository.NewQRCodesRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	authService, err := auth.NewService(db, usersRepo, companiesRepo)
	if err != nil {
		logger.Error("failed to initialize auth service", "error", err)
		os.Exit(1)
	}
	tokenService := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	qrService := qr.NewService(qrCodesRepo, cfg.FrontendURL)
	feedbackService := feedback.NewService(feedbackRepo, qrCodesRepo)
	analyticsService := analytics.NewService(companiesRepo, qrCodesRepo, feedbackRepo)

	// The summary service gates itself on the API key; constructing it
	// unconfigured keeps the endpoint mounted and returning 503.
	summaryService := summary.NewService(summary.Config{
		APIKey:  cfg.GroqAPIKey,
		Model:   cfg.GroqModel,
		BaseURL: cfg.GroqBaseURL,
		Timeout: cfg.SummaryTimeout,
	}, feedbackRepo)
	if cfg.HasSummarizer() {
		logger.Info("feedback summarizer enabled")
	}

	if cfg.HasSuperAdmin() {
		if err := authService.EnsureSuperAdmin(context.Background(), cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
			logger.Error("failed to ensure super-admin account", "error", err)
			os.Exit(1)
		}
		logger.Info("super-admin account ensured", "email", cfg.SuperAdminEmail)
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:            logger,
		AuthService:       authService,
		TokenService:      tokenService,
		QRService:         qrService,
		FeedbackService:   feedbackService,
		AnalyticsService:  analyticsService,
		SummaryService:    summaryService,
		UsersRepo:         usersRepo,
		CompaniesRepo:     companiesRepo,
		RateLimitEnabled:  cfg.RateLimitEnabled,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
