// Package superadmin handles the cross-tenant endpoints available only to the
// bootstrap super-admin account.
package superadmin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/common"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/feedback"
)

// Handler handles super-admin endpoints.
type Handler struct {
	logger    *slog.Logger
	feedback  *feedback.Service
	analytics *analytics.Service
}

// NewHandler creates a new super-admin handler.
func NewHandler(logger *slog.Logger, feedbackService *feedback.Service, analyticsService *analytics.Service) *Handler {
	return &Handler{
		logger:    logger,
		feedback:  feedbackService,
		analytics: analyticsService,
	}
}

// Companies returns the rollup for every registered company.
// GET /api/superadmin/companies
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.AllCompanyStats(r.Context())
	if err != nil {
		h.logger.Error("cross-tenant rollup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load companies")
		return
	}

	out := make([]common.CompanyStatsResponse, 0, len(stats))
	for i := range stats {
		out = append(out, common.FromCompanyStats(&stats[i]))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Feedback returns one page of feedback across every company, newest first.
// GET /api/superadmin/feedback?page=&page_size=
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, _ = strconv.Atoi(raw)
	}
	var pageSize int
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		pageSize, _ = strconv.Atoi(raw)
	}

	rows, err := h.feedback.ListAll(r.Context(), page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPage) {
			httputil.Error(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		h.logger.Error("cross-tenant feedback listing failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromFeedbackList(rows))
}
