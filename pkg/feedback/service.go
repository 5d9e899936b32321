package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

// Pagination bounds. Company listings default to smaller pages than the
// super-admin's cross-tenant view.
const (
	DefaultPageSize      = 20
	MaxPageSize          = 100
	DefaultAdminPageSize = 50
	MaxAdminPageSize     = 200
)

// Service is the feedback ledger: anonymous submissions in, ordered pages out.
type Service struct {
	feedback *repository.FeedbackRepository
	codes    *repository.QRCodesRepository
}

// NewService creates a new feedback service.
func NewService(feedback *repository.FeedbackRepository, codes *repository.QRCodesRepository) *Service {
	return &Service{feedback: feedback, codes: codes}
}

// Submit appends one rating event against a QR code's public identifier.
// The stored row carries the QR's owning company id, written here and never
// re-derived afterwards.
func (s *Service) Submit(ctx context.Context, publicID string, rating int, comment *string, ip string) (*domain.Feedback, error) {
	if !domain.ValidRating(rating) {
		return nil, domain.ErrInvalidRating
	}

	code, err := s.codes.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !code.IsActive {
		return nil, domain.ErrQRCodeInactive
	}

	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if trimmed == "" {
			comment = nil
		} else {
			comment = &trimmed
		}
	}

	var ipAddr *string
	if ip != "" {
		ipAddr = &ip
	}

	fb := &domain.Feedback{
		ID:        uuid.New(),
		QRCodeID:  code.ID,
		CompanyID: code.CompanyID,
		Rating:    rating,
		Comment:   comment,
		IPAddress: ipAddr,
		CreatedAt: time.Now().UTC(),
		QRLabel:   &code.Label,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// ListByCompany returns one page of a company's feedback, newest first.
// Pages are 1-indexed.
func (s *Service) ListByCompany(ctx context.Context, companyID uuid.UUID, page, pageSize int) ([]domain.Feedback, error) {
	limit, offset, err := pageBounds(page, pageSize, DefaultPageSize, MaxPageSize)
	if err != nil {
		return nil, err
	}
	return s.feedback.ListByCompany(ctx, companyID, limit, offset)
}

// ListAll returns one page of feedback across every company, newest first.
func (s *Service) ListAll(ctx context.Context, page, pageSize int) ([]domain.Feedback, error) {
	limit, offset, err := pageBounds(page, pageSize, DefaultAdminPageSize, MaxAdminPageSize)
	if err != nil {
		return nil, err
	}
	return s.feedback.ListAll(ctx, limit, offset)
}

func pageBounds(page, pageSize, def, max int) (limit, offset int, err error) {
	if page < 1 {
		return 0, 0, domain.ErrInvalidPage
	}
	if pageSize < 1 {
		pageSize = def
	}
	if pageSize > max {
		pageSize = max
	}
	return pageSize, (page - 1) * pageSize, nil
}
