// Package companies handles the company profile and dashboard endpoints.
package companies

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/common"
	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

// Handler handles company profile endpoints.
type Handler struct {
	logger    *slog.Logger
	companies *repository.CompaniesRepository
	analytics *analytics.Service
}

// NewHandler creates a new companies handler.
func NewHandler(logger *slog.Logger, companies *repository.CompaniesRepository, analyticsService *analytics.Service) *Handler {
	return &Handler{
		logger:    logger,
		companies: companies,
		analytics: analyticsService,
	}
}

// UpdateRequest represents a partial company profile update. Absent fields are
// left untouched.
type UpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	LogoURL *string `json:"logo_url,omitempty" validate:"omitempty,max=2000"`
}

// GetProfile returns the caller's company.
// GET /api/company/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	company, err := h.companies.GetByID(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			httputil.Error(w, http.StatusNotFound, "company not found")
			return
		}
		h.logger.Error("company lookup failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load company")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromCompany(company))
}

// UpdateProfile applies partial changes to the caller's company.
// PATCH /api/company/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid profile fields")
		return
	}

	company, err := h.companies.GetByID(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			httputil.Error(w, http.StatusNotFound, "company not found")
			return
		}
		h.logger.Error("company lookup failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load company")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.LogoURL != nil {
		company.LogoURL = req.LogoURL
	}

	if err := h.companies.Update(r.Context(), company); err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			httputil.Error(w, http.StatusNotFound, "company not found")
			return
		}
		h.logger.Error("company update failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to update company")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromCompany(company))
}

// Dashboard returns the company's rollup: feedback totals, average rating, and
// QR code counts.
// GET /api/company/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	stats, err := h.analytics.CompanyStats(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			httputil.Error(w, http.StatusNotFound, "company not found")
			return
		}
		h.logger.Error("dashboard rollup failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromCompanyStats(stats))
}
