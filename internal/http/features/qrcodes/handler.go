// Package qrcodes handles the company-scoped QR code endpoints.
package qrcodes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/common"
	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/analytics"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/qr"
)

// Handler handles QR code management endpoints. Every route is scoped to the
// caller's company.
type Handler struct {
	logger    *slog.Logger
	qr        *qr.Service
	analytics *analytics.Service
}

// NewHandler creates a new QR codes handler.
func NewHandler(logger *slog.Logger, qrService *qr.Service, analyticsService *analytics.Service) *Handler {
	return &Handler{
		logger:    logger,
		qr:        qrService,
		analytics: analyticsService,
	}
}

// CreateRequest represents a QR code creation request.
type CreateRequest struct {
	Label string `json:"label" validate:"required,min=1,max=200"`
}

// UpdateRequest represents a partial QR code update. Absent fields are left
// untouched.
type UpdateRequest struct {
	Label    *string `json:"label,omitempty" validate:"omitempty,min=1,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Create creates an active QR code for the caller's company.
// POST /api/company/qr-codes
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "label is required")
		return
	}

	code, err := h.qr.Create(r.Context(), companyID, req.Label)
	if err != nil {
		h.logger.Error("qr code creation failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create qr code")
		return
	}

	h.logger.Info("qr code created", "qr_code_id", code.ID, "company_id", companyID)
	httputil.JSON(w, http.StatusCreated, common.FromQRCode(code))
}

// List returns all of the company's QR codes, newest first.
// GET /api/company/qr-codes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return
	}

	codes, err := h.qr.List(r.Context(), companyID)
	if err != nil {
		h.logger.Error("qr code listing failed", "error", err, "company_id", companyID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list qr codes")
		return
	}

	out := make([]common.QRCodeResponse, 0, len(codes))
	for i := range codes {
		out = append(out, common.FromQRCode(&codes[i]))
	}
	httputil.JSON(w, http.StatusOK, out)
}

// Update applies partial changes to a QR code's label and active flag.
// PATCH /api/company/qr-codes/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scopedID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid qr code fields")
		return
	}

	code, err := h.qr.Update(r.Context(), companyID, id, req.Label, req.IsActive)
	if err != nil {
		if errors.Is(err, domain.ErrQRCodeNotFound) {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		h.logger.Error("qr code update failed", "error", err, "qr_code_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to update qr code")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromQRCode(code))
}

// Delete removes a QR code.
// DELETE /api/company/qr-codes/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scopedID(w, r)
	if !ok {
		return
	}

	if err := h.qr.Delete(r.Context(), companyID, id); err != nil {
		if errors.Is(err, domain.ErrQRCodeNotFound) {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		h.logger.Error("qr code deletion failed", "error", err, "qr_code_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete qr code")
		return
	}

	h.logger.Info("qr code deleted", "qr_code_id", id, "company_id", companyID)
	httputil.NoContent(w)
}

// Image returns the QR code with its submission URL rendered as a base64 PNG.
// GET /api/company/qr-codes/{id}/image
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scopedID(w, r)
	if !ok {
		return
	}

	code, image, err := h.qr.Image(r.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrQRCodeNotFound) {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		h.logger.Error("qr image rendering failed", "error", err, "qr_code_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to render qr image")
		return
	}

	resp := common.FromQRCode(code)
	resp.ImageBase64 = &image
	httputil.JSON(w, http.StatusOK, resp)
}

// Stats returns the rating rollup for one QR code.
// GET /api/company/qr-codes/{id}/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	companyID, id, ok := h.scopedID(w, r)
	if !ok {
		return
	}

	stats, err := h.analytics.QRCodeStats(r.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, domain.ErrQRCodeNotFound) {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		h.logger.Error("qr stats failed", "error", err, "qr_code_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to load qr stats")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromFeedbackStats(stats))
}

// scopedID resolves the caller's company id and the {id} path parameter,
// writing the error response itself when either is missing.
func (h *Handler) scopedID(w http.ResponseWriter, r *http.Request) (companyID, id uuid.UUID, ok bool) {
	companyID, hasCompany := middleware.CompanyID(r.Context())
	if !hasCompany {
		httputil.Error(w, http.StatusForbidden, "no company associated with this account")
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "qr code not found")
		return uuid.Nil, uuid.Nil, false
	}
	return companyID, id, true
}
