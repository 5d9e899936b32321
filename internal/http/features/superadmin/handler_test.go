package superadmin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AmirejibiIlia/RateBridge/pkg/feedback"
)

func TestFeedback_RejectsInvalidPage(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), feedback.NewService(nil, nil), nil)

	tests := []struct {
		name   string
		target string
	}{
		{"page zero", "/api/superadmin/feedback?page=0"},
		{"negative page", "/api/superadmin/feedback?page=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			h.Feedback(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
