package qrcodes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// companyRequest builds a request carrying a company principal and an {id}
// route parameter. Handlers under test must reject it before reaching storage.
func companyRequest(method, target, body, idParam string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))

	companyID := uuid.New()
	user := &domain.User{ID: uuid.New(), CompanyID: &companyID}
	ctx := context.WithValue(req.Context(), middleware.PrincipalKey, user)

	if idParam != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", idParam)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func TestCreate_RejectsBadInput(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"label":`},
		{"missing label", `{}`},
		{"empty label", `{"label":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Create(rec, companyRequest(http.MethodPost, "/api/company/qr-codes", tt.body, ""))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreate_RequiresCompany(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/company/qr-codes", strings.NewReader(`{"label":"Front desk"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestScopedRoutes_RejectBadID(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
	}{
		{"update", h.Update, http.MethodPatch},
		{"delete", h.Delete, http.MethodDelete},
		{"image", h.Image, http.MethodGet},
		{"stats", h.Stats, http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, companyRequest(tt.method, "/api/company/qr-codes/not-a-uuid", `{}`, "not-a-uuid"))

			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
			}
		})
	}
}
