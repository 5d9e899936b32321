package qr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

// Service manages a company's QR codes. Every operation is scoped to the
// calling company; a QR id owned by another tenant is indistinguishable from a
// missing one.
type Service struct {
	codes       *repository.QRCodesRepository
	frontendURL string
}

// NewService creates a new QR service. frontendURL is the base URL embedded in
// rendered QR images.
func NewService(codes *repository.QRCodesRepository, frontendURL string) *Service {
	return &Service{
		codes:       codes,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// FeedbackURL returns the public submission URL for a QR code.
func (s *Service) FeedbackURL(publicID string) string {
	return fmt.Sprintf("%s/feedback/%s", s.frontendURL, publicID)
}

// Create creates an active QR code with a fresh public identifier.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, label string) (*domain.QRCode, error) {
	code := &domain.QRCode{
		ID:        uuid.New(),
		CompanyID: companyID,
		PublicID:  uuid.New().String(),
		Label:     label,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// List returns all of a company's QR codes, newest first.
func (s *Service) List(ctx context.Context, companyID uuid.UUID) ([]domain.QRCode, error) {
	return s.codes.ListByCompany(ctx, companyID)
}

// Get returns one of the company's QR codes.
func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*domain.QRCode, error) {
	return s.codes.GetByID(ctx, companyID, id)
}

// Update applies partial changes to a QR code's label and active flag.
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, label *string, isActive *bool) (*domain.QRCode, error) {
	code, err := s.codes.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if label != nil {
		code.Label = *label
	}
	if isActive != nil {
		code.IsActive = *isActive
	}
	if err := s.codes.Update(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// Delete removes a QR code.
func (s *Service) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.codes.Delete(ctx, companyID, id)
}

// Image renders the QR code's submission URL as a base64 PNG.
func (s *Service) Image(ctx context.Context, companyID, id uuid.UUID) (*domain.QRCode, string, error) {
	code, err := s.codes.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	image, err := RenderPNGBase64(s.FeedbackURL(code.PublicID))
	if err != nil {
		return nil, "", err
	}
	return code, image, nil
}

// ResolvePublic returns the anonymous projection used by the submission form.
// It exposes nothing beyond label, company name, and the active flag.
func (s *Service) ResolvePublic(ctx context.Context, publicID string) (*domain.QRCodePublicInfo, error) {
	return s.codes.ResolvePublic(ctx, publicID)
}
