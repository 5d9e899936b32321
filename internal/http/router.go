// Package http wires the feature handlers into a single router.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/accounts"
	"github.com/AmirejibiIlia/RateBridge/internal/http/features/companies"
	"github.com/AmirejibiIlia/RateBridge/internal/http/features/insights"
	"github.com/AmirejibiIlia/RateBridge/internal/http/features/public"
	"github.com/AmirejibiIlia/RateBridge/internal/http/features/qrcodes"
	"github.com/AmirejibiIlia/RateBridge/internal/http/features/superadmin"
	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/auth"
	"github.com/AmirejibiIlia/RateBridge/pkg/feedback"
	"github.com/AmirejibiIlia/RateBridge/pkg/qr"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
	"github.com/AmirejibiIlia/RateBridge/pkg/summary"
)

// maxRequestBodySize caps request bodies; the largest legitimate payload is a
// feedback comment.
const maxRequestBodySize = 64 * 1024

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	TokenService     *auth.TokenService
	QRService        *qr.Service
	FeedbackService  *feedback.Service
	AnalyticsService *analytics.Service
	SummaryService   *summary.Service
	UsersRepo        *repository.UsersRepository
	CompaniesRepo    *repository.CompaniesRepository

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.RequestSizeLimit(maxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	rateLimit := middleware.NoRateLimit()
	if cfg.RateLimitEnabled {
		rateLimit = middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.RateLimitRequests,
			Window:   cfg.RateLimitWindow,
			Logger:   cfg.Logger,
		})
	}

	authed := middleware.Auth(cfg.TokenService, cfg.UsersRepo)

	accountsHandler := accounts.NewHandler(cfg.Logger, cfg.AuthService, cfg.TokenService)
	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/api/auth/register", accountsHandler.Register)
		r.Post("/api/auth/login", accountsHandler.Login)
	})
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Get("/api/auth/me", accountsHandler.Me)
		r.Patch("/api/auth/change-password", accountsHandler.ChangePassword)
	})

	// Anonymous submission endpoints, reached by scanning a QR code.
	publicHandler := public.NewHandler(cfg.Logger, cfg.QRService, cfg.FeedbackService)
	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Get("/api/feedback/{publicID}", publicHandler.Resolve)
		r.Post("/api/feedback/{publicID}", publicHandler.Submit)
	})

	// Company-scoped endpoints.
	companiesHandler := companies.NewHandler(cfg.Logger, cfg.CompaniesRepo, cfg.AnalyticsService)
	qrcodesHandler := qrcodes.NewHandler(cfg.Logger, cfg.QRService, cfg.AnalyticsService)
	insightsHandler := insights.NewHandler(cfg.Logger, cfg.FeedbackService, cfg.AnalyticsService, cfg.SummaryService)
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireCompany)

		r.Get("/api/company/profile", companiesHandler.GetProfile)
		r.Patch("/api/company/profile", companiesHandler.UpdateProfile)
		r.Get("/api/company/dashboard", companiesHandler.Dashboard)

		r.Post("/api/company/qr-codes", qrcodesHandler.Create)
		r.Get("/api/company/qr-codes", qrcodesHandler.List)
		r.Patch("/api/company/qr-codes/{id}", qrcodesHandler.Update)
		r.Delete("/api/company/qr-codes/{id}", qrcodesHandler.Delete)
		r.Get("/api/company/qr-codes/{id}/image", qrcodesHandler.Image)
		r.Get("/api/company/qr-codes/{id}/stats", qrcodesHandler.Stats)

		r.Get("/api/company/feedback", insightsHandler.List)
		r.Get("/api/company/feedback/stats", insightsHandler.Stats)
		r.Get("/api/company/feedback/highlights", insightsHandler.Highlights)
		r.Get("/api/company/feedback/timeline", insightsHandler.Timeline)
		r.Post("/api/company/feedback/summary", insightsHandler.Summarize)
	})

	// Cross-tenant endpoints.
	superadminHandler := superadmin.NewHandler(cfg.Logger, cfg.FeedbackService, cfg.AnalyticsService)
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireSuperAdmin)
		r.Get("/api/superadmin/companies", superadminHandler.Companies)
		r.Get("/api/superadmin/feedback", superadminHandler.Feedback)
	})

	return r
}
