package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
	DefaultTimeout = 30 * time.Second

	dateFormat = "2006-01-02"

	// maxRows bounds how much feedback a single summary may consume.
	maxRows = 500

	// catchAllCategory is always appended to the caller's category list.
	catchAllCategory = "Other"
)

// Config holds summarizer configuration. An empty APIKey disables the feature.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Request is a summary request for a closed date range. DateTo is inclusive
// through end-of-day UTC.
type Request struct {
	DateFrom   string
	DateTo     string
	Categories []string
}

// Result is a generated summary and the number of rows it covers.
type Result struct {
	Summary       string
	FeedbackCount int
}

// Service formats a bounded feedback window into a prompt and forwards it to
// the text-generation endpoint. It performs no writes; an upstream failure
// cannot corrupt persisted state.
type Service struct {
	config     Config
	feedback   *repository.FeedbackRepository
	httpClient *http.Client
}

// NewService creates a new summary service.
func NewService(config Config, feedback *repository.FeedbackRepository) *Service {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Service{
		config:     config,
		feedback:   feedback,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Summarize selects the company's feedback within the date range and returns
// an executive summary generated upstream. With no matching rows it returns a
// canned zero-count result without calling the external service.
func (s *Service) Summarize(ctx context.Context, companyID uuid.UUID, req Request) (*Result, error) {
	if s.config.APIKey == "" {
		return nil, domain.ErrSummaryNotConfigured
	}

	from, err := time.ParseInLocation(dateFormat, req.DateFrom, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date_from %q", domain.ErrInvalidDate, req.DateFrom)
	}
	to, err := time.ParseInLocation(dateFormat, req.DateTo, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date_to %q", domain.ErrInvalidDate, req.DateTo)
	}
	// Inclusive through end of day.
	to = to.AddDate(0, 0, 1)

	rows, err := s.feedback.ListRange(ctx, companyID, from, to, maxRows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Result{
			Summary:       "No feedback was submitted in the selected period.",
			FeedbackCount: 0,
		}, nil
	}

	text, err := s.generate(ctx, buildPrompt(rows, req.Categories))
	if err != nil {
		return nil, err
	}
	return &Result{
		Summary:       strings.TrimSpace(text),
		FeedbackCount: len(rows),
	}, nil
}

// buildPrompt enumerates every row's rating, QR label, and comment, followed
// by the category list the summary should be grouped by.
func buildPrompt(rows []domain.Feedback, categories []string) string {
	var b strings.Builder
	b.WriteString("You are an analyst reviewing customer feedback for a business. Feedback entries:\n")
	for _, fb := range rows {
		label := "unlabeled"
		if fb.QRLabel != nil && *fb.QRLabel != "" {
			label = *fb.QRLabel
		}
		comment := "(no comment)"
		if fb.Comment != nil && *fb.Comment != "" {
			comment = *fb.Comment
		}
		fmt.Fprintf(&b, "- rating %d/10, location %q: %s\n", fb.Rating, label, comment)
	}

	all := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			all = append(all, c)
		}
	}
	all = append(all, catchAllCategory)

	fmt.Fprintf(&b, "\nCategories: %s\n", strings.Join(all, ", "))
	b.WriteString("Write a short executive summary (3-5 sentences) of this feedback, grouping the findings by category.")
	return b.String()
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// generate sends one chat-completion request and returns the first generated
// candidate verbatim. Any non-success upstream response surfaces its body.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    s.config.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummaryUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrSummaryUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrSummaryUpstream, resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", domain.ErrSummaryUpstream, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no candidates", domain.ErrSummaryUpstream)
	}
	return parsed.Choices[0].Message.Content, nil
}
