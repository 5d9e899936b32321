// Package insights handles the company's feedback listing and analytics
// endpoints.
package insights

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/common"
	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/feedback"
	"github.com/AmirejibiIlia/RateBridge/pkg/summary"
)

// Handler handles company feedback and analytics endpoints.
type Handler struct {
	logger    *slog.Logger
	feedback  *feedback.Service
	analytics *analytics.Service
	summary   *summary.Service
}

// NewHandler creates a new insights handler.
func NewHandler(logger *slog.Logger, feedbackService *feedback.Service, analyticsService *analytics.Service, summaryService *summary.Service) *Handler {
	return &Handler{
		logger:    logger,
		feedback:  feedbackService,
		analytics: analyticsService,
		summary:   summaryService,
	}
}

// SummaryRequest represents an AI summary request for a closed date range.
type SummaryRequest struct {
	DateFrom   string   `json:"date_from" validate:"required"`
	DateTo     string   `json:"date_to" validate:"required"`
	Categories []string `json:"categories,omitempty"`
}

// SummaryResponse represents a generated summary.
type SummaryResponse struct {
	Summary       string `json:"summary"`
	FeedbackCount int    `json:"feedback_count"`
}

// List returns one page of the company's feedback, newest first.
// GET /api/company/feedback?page=&page_size=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	page, pageSize := pageParams(r)
	rows, err := h.feedback.ListByCompany(r.Context(), companyID, page, pageSize)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPage) {
			httputil.Error(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		h.logger.Error("feedback listing failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromFeedbackList(rows))
}

// Stats returns the company's rating rollup.
// GET /api/company/feedback/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	stats, err := h.analytics.FeedbackStats(r.Context(), companyID)
	if err != nil {
		h.logger.Error("feedback stats failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load feedback stats")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromFeedbackStats(stats))
}

// Highlights returns the top-3 and worst-3 rated feedback rows.
// GET /api/company/feedback/highlights
func (h *Handler) Highlights(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	highlights, err := h.analytics.Highlights(r.Context(), companyID)
	if err != nil {
		h.logger.Error("highlights failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load highlights")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromHighlights(highlights))
}

// Timeline returns the trailing-30-day daily and weekly rating series,
// optionally narrowed to one QR code.
// GET /api/company/feedback/timeline?qr_id=
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	var qrID *uuid.UUID
	if raw := r.URL.Query().Get("qr_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		qrID = &id
	}

	timeline, err := h.analytics.Timeline(r.Context(), companyID, qrID)
	if err != nil {
		if errors.Is(err, domain.ErrQRCodeNotFound) {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		h.logger.Error("timeline failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load timeline")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromTimeline(timeline))
}

// Summarize generates an AI summary of the company's feedback within a date
// range.
// POST /api/company/feedback/summary
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "date_from and date_to are required")
		return
	}

	result, err := h.summary.Summarize(r.Context(), companyID, summary.Request{
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Categories: req.Categories,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSummaryNotConfigured):
			httputil.Error(w, http.StatusServiceUnavailable, "summary service is not configured")
		case errors.Is(err, domain.ErrInvalidDate):
			httputil.Error(w, http.StatusBadRequest, "dates must be in YYYY-MM-DD format")
		case errors.Is(err, domain.ErrSummaryUpstream):
			h.logger.Error("summary upstream failed", "error", err, "company_id", companyID)
			httputil.Error(w, http.StatusBadGateway, "summary generation failed")
		default:
			h.logger.Error("summary failed", "error", err, "company_id", companyID)
			httputil.Error(w, http.StatusInternalServerError, "failed to generate summary")
		}
		return
	}

	httputil.JSON(w, http.StatusOK, SummaryResponse{
		Summary:       result.Summary,
		FeedbackCount: result.FeedbackCount,
	})
}

// pageParams reads the page and page_size query parameters. A missing page
// defaults to 1; a missing or unparseable page_size defers to the service
// default. A present but unparseable page reads as 0 so the service rejects it.
func pageParams(r *http.Request) (page, pageSize int) {
	page = 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		pageSize, _ = strconv.Atoi(raw)
	}
	return page, pageSize
}
