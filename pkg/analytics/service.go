package analytics

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

const highlightCount = 3

// FeedbackStats is a rating rollup for one scope: row count, mean rating
// rounded to 2 decimals (nil when the scope is empty), and a histogram that
// always carries all ten buckets.
type FeedbackStats struct {
	Total         int
	AverageRating *float64
	Distribution  map[string]int
}

// CompanyStats is the dashboard rollup for one company.
type CompanyStats struct {
	Company       domain.Company
	TotalFeedback int
	AverageRating *float64
	TotalQRCodes  int
	ActiveQRCodes int
}

// Highlights are the extreme-rating rows surfaced for quick review. Either
// list may be shorter than three when the company has little feedback.
type Highlights struct {
	Top3   []domain.Feedback
	Worst3 []domain.Feedback
}

// Service computes rollups over the feedback ledger. Every query is scoped by
// the caller's company id; QR-scoped queries verify ownership first.
type Service struct {
	companies *repository.CompaniesRepository
	codes     *repository.QRCodesRepository
	feedback  *repository.FeedbackRepository
}

// NewService creates a new analytics service.
func NewService(companies *repository.CompaniesRepository, codes *repository.QRCodesRepository, feedback *repository.FeedbackRepository) *Service {
	return &Service{companies: companies, codes: codes, feedback: feedback}
}

// CompanyStats returns the dashboard rollup for one company.
func (s *Service) CompanyStats(ctx context.Context, companyID uuid.UUID) (*CompanyStats, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	agg, err := s.feedback.StatsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	totalQR, err := s.codes.CountByCompany(ctx, companyID, false)
	if err != nil {
		return nil, err
	}
	activeQR, err := s.codes.CountByCompany(ctx, companyID, true)
	if err != nil {
		return nil, err
	}

	return &CompanyStats{
		Company:       *company,
		TotalFeedback: agg.Total,
		AverageRating: roundedAverage(agg),
		TotalQRCodes:  totalQR,
		ActiveQRCodes: activeQR,
	}, nil
}

// AllCompanyStats returns the dashboard rollup for every company.
func (s *Service) AllCompanyStats(ctx context.Context) ([]CompanyStats, error) {
	companies, err := s.companies.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]CompanyStats, 0, len(companies))
	for _, c := range companies {
		cs, err := s.CompanyStats(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *cs)
	}
	return stats, nil
}

// FeedbackStats returns the rating rollup for a company.
func (s *Service) FeedbackStats(ctx context.Context, companyID uuid.UUID) (*FeedbackStats, error) {
	agg, err := s.feedback.StatsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return statsFromAggregate(agg), nil
}

// QRCodeStats returns the rating rollup for one of the company's QR codes.
// A QR id the company does not own reads as not found.
func (s *Service) QRCodeStats(ctx context.Context, companyID, qrCodeID uuid.UUID) (*FeedbackStats, error) {
	code, err := s.codes.GetByID(ctx, companyID, qrCodeID)
	if err != nil {
		return nil, err
	}

	agg, err := s.feedback.StatsByQRCode(ctx, code.ID)
	if err != nil {
		return nil, err
	}
	return statsFromAggregate(agg), nil
}

// Highlights returns the top-3 and worst-3 rated feedback rows for a company,
// ties broken most recent first.
func (s *Service) Highlights(ctx context.Context, companyID uuid.UUID) (*Highlights, error) {
	top, err := s.feedback.Best(ctx, companyID, highlightCount)
	if err != nil {
		return nil, err
	}
	worst, err := s.feedback.Worst(ctx, companyID, highlightCount)
	if err != nil {
		return nil, err
	}
	return &Highlights{Top3: top, Worst3: worst}, nil
}

// Timeline returns the daily and weekly series for the trailing 30 days,
// optionally narrowed to one of the company's QR codes.
func (s *Service) Timeline(ctx context.Context, companyID uuid.UUID, qrCodeID *uuid.UUID) (*Timeline, error) {
	if qrCodeID != nil {
		if _, err := s.codes.GetByID(ctx, companyID, *qrCodeID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -DailyBuckets)
	rows, err := s.feedback.ListSince(ctx, companyID, qrCodeID, since)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(rows, now), nil
}

func statsFromAggregate(agg *repository.RatingAggregate) *FeedbackStats {
	distribution := make(map[string]int, domain.MaxRating)
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		distribution[strconv.Itoa(r)] = agg.Distribution[r]
	}
	return &FeedbackStats{
		Total:         agg.Total,
		AverageRating: roundedAverage(agg),
		Distribution:  distribution,
	}
}

func roundedAverage(agg *repository.RatingAggregate) *float64 {
	if agg.Total == 0 || !agg.Average.Valid {
		return nil
	}
	avg := math.Round(agg.Average.Float64*100) / 100
	return &avg
}
