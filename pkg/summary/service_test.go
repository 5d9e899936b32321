package summary

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

func strPtr(s string) *string { return &s }

func TestSummarize_NotConfigured(t *testing.T) {
	svc := NewService(Config{}, nil)

	_, err := svc.Summarize(context.Background(), uuid.New(), Request{
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-31",
	})
	if !errors.Is(err, domain.ErrSummaryNotConfigured) {
		t.Errorf("error = %v, want ErrSummaryNotConfigured", err)
	}
}

func TestSummarize_InvalidDates(t *testing.T) {
	svc := NewService(Config{APIKey: "test-key"}, nil)

	tests := []struct {
		name     string
		from, to string
	}{
		{"garbage from", "not-a-date", "2025-01-31"},
		{"garbage to", "2025-01-01", "31/01/2025"},
		{"empty from", "", "2025-01-31"},
		{"month out of range", "2025-13-01", "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Summarize(context.Background(), uuid.New(), Request{DateFrom: tt.from, DateTo: tt.to})
			if !errors.Is(err, domain.ErrInvalidDate) {
				t.Errorf("error = %v, want ErrInvalidDate", err)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	rows := []domain.Feedback{
		{Rating: 9, QRLabel: strPtr("Front Desk"), Comment: strPtr("great service")},
		{Rating: 2, QRLabel: strPtr("Checkout")},
		{Rating: 5},
	}

	prompt := buildPrompt(rows, []string{"Service", "  ", "Cleanliness"})

	for _, want := range []string{
		`- rating 9/10, location "Front Desk": great service`,
		`- rating 2/10, location "Checkout": (no comment)`,
		`- rating 5/10, location "unlabeled": (no comment)`,
		"Categories: Service, Cleanliness, Other",
		"executive summary",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}
}

func TestBuildPrompt_AlwaysHasCatchAll(t *testing.T) {
	prompt := buildPrompt([]domain.Feedback{{Rating: 7}}, nil)
	if !strings.Contains(prompt, "Categories: Other") {
		t.Errorf("prompt missing catch-all category:\n%s", prompt)
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotAuth string
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  Customers are mostly happy.  "}},{"message":{"content":"second candidate"}}]}`))
	}))
	defer server.Close()

	svc := NewService(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second}, nil)

	text, err := svc.generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text != "  Customers are mostly happy.  " {
		t.Errorf("text = %q, want first candidate verbatim", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer credential", gotAuth)
	}
	if !strings.Contains(gotBody, `"the prompt"`) {
		t.Errorf("request body missing prompt: %s", gotBody)
	}
	if !strings.Contains(gotBody, DefaultModel) {
		t.Errorf("request body missing model: %s", gotBody)
	}
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
	}))
	defer server.Close()

	svc := NewService(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, err := svc.generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrSummaryUpstream) {
		t.Fatalf("error = %v, want ErrSummaryUpstream", err)
	}
	if !strings.Contains(err.Error(), "rate limit reached") {
		t.Errorf("error %q does not surface the upstream body", err)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewService(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, err := svc.generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrSummaryUpstream) {
		t.Errorf("error = %v, want ErrSummaryUpstream", err)
	}
}
