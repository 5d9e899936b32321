// Package public handles the anonymous endpoints behind a QR code: resolving
// the code for the submission form and accepting feedback. Nothing here
// requires authentication.
package public

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/common"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/feedback"
	"github.com/AmirejibiIlia/RateBridge/pkg/qr"
)

// Handler handles the anonymous submission endpoints.
type Handler struct {
	logger   *slog.Logger
	qr       *qr.Service
	feedback *feedback.Service
}

// NewHandler creates a new public handler.
func NewHandler(logger *slog.Logger, qrService *qr.Service, feedbackService *feedback.Service) *Handler {
	return &Handler{
		logger:   logger,
		qr:       qrService,
		feedback: feedbackService,
	}
}

// SubmitRequest represents an anonymous feedback submission.
type SubmitRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=10"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// Resolve returns the anonymous projection of a QR code for the submission
// form. Inactive codes still resolve; the form uses the active flag to show a
// closed notice.
// GET /api/feedback/{publicID}
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	info, err := h.qr.ResolvePublic(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, domain.ErrQRCodeNotFound) {
			httputil.Error(w, http.StatusNotFound, "qr code not found")
			return
		}
		h.logger.Error("public qr resolve failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to resolve qr code")
		return
	}

	httputil.JSON(w, http.StatusOK, common.FromQRCodePublicInfo(info))
}

// Submit records one anonymous rating against a QR code.
// POST /api/feedback/{publicID}
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "rating must be between 1 and 10")
		return
	}

	fb, err := h.feedback.Submit(r.Context(), publicID, req.Rating, req.Comment, httputil.ClientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRating):
			httputil.Error(w, http.StatusBadRequest, "rating must be between 1 and 10")
		case errors.Is(err, domain.ErrQRCodeNotFound):
			httputil.Error(w, http.StatusNotFound, "qr code not found")
		case errors.Is(err, domain.ErrQRCodeInactive):
			httputil.Error(w, http.StatusBadRequest, "this qr code is no longer accepting feedback")
		default:
			h.logger.Error("feedback submission failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "failed to submit feedback")
		}
		return
	}

	h.logger.Info("feedback submitted", "feedback_id", fb.ID, "company_id", fb.CompanyID, "rating", fb.Rating)
	httputil.JSON(w, http.StatusCreated, common.FromFeedback(fb))
}
