package accounts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/pkg/auth"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	service, err := auth.NewService(nil, nil, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte("test-secret"),
		Issuer: "ratebridge-test",
		TTL:    time.Hour,
	})
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), service, tokens)
}

func TestRegister_RejectsBadInput(t *testing.T) {
	h := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"company_name":`},
		{"missing company name", `{"email":"a@b.com","password":"longenough"}`},
		{"missing email", `{"company_name":"Cafe","password":"longenough"}`},
		{"bad email", `{"company_name":"Cafe","email":"nope","password":"longenough"}`},
		{"missing password", `{"company_name":"Cafe","email":"a@b.com"}`},
		{"short password", `{"company_name":"Cafe","email":"a@b.com","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLogin_RejectsBadInput(t *testing.T) {
	h := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `not json`},
		{"missing email", `{"password":"whatever"}`},
		{"missing password", `{"email":"a@b.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func withPrincipal(req *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.PrincipalKey, user)
	return req.WithContext(ctx)
}

func TestMe(t *testing.T) {
	h := testHandler(t)

	t.Run("no principal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()

		h.Me(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		companyID := uuid.New()
		user := &domain.User{ID: uuid.New(), Email: "owner@example.com", CompanyID: &companyID}

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), user)
		rec := httptest.NewRecorder()

		h.Me(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var body struct {
			ID        string  `json:"id"`
			Email     string  `json:"email"`
			CompanyID *string `json:"company_id"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if body.ID != user.ID.String() {
			t.Errorf("id = %q, want %q", body.ID, user.ID)
		}
		if body.Email != user.Email {
			t.Errorf("email = %q, want %q", body.Email, user.Email)
		}
		if body.CompanyID == nil || *body.CompanyID != companyID.String() {
			t.Errorf("company_id = %v, want %v", body.CompanyID, companyID)
		}
	})
}

func TestChangePassword(t *testing.T) {
	h := testHandler(t)
	user := &domain.User{ID: uuid.New(), Email: "owner@example.com"}

	tests := []struct {
		name       string
		principal  *domain.User
		body       string
		wantStatus int
	}{
		{"no principal", nil, `{"new_password":"longenough"}`, http.StatusUnauthorized},
		{"malformed json", user, `{`, http.StatusBadRequest},
		{"missing password", user, `{}`, http.StatusBadRequest},
		{"short password", user, `{"new_password":"short"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/auth/change-password", strings.NewReader(tt.body))
			if tt.principal != nil {
				req = withPrincipal(req, tt.principal)
			}
			rec := httptest.NewRecorder()

			h.ChangePassword(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
