package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// QRCodesRepository handles QR code persistence. All company-scoped lookups
// filter by both the QR id and the owning company id; a mismatch surfaces as
// not-found so other tenants' resources stay invisible.
type QRCodesRepository struct {
	db *sql.DB
}

// NewQRCodesRepository creates a new QR codes repository.
func NewQRCodesRepository(db *sql.DB) *QRCodesRepository {
	return &QRCodesRepository{db: db}
}

// Create creates a new QR code.
func (r *QRCodesRepository) Create(ctx context.Context, qr *domain.QRCode) error {
	query := `
		INSERT INTO qr_codes (id, company_id, public_id, label, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		qr.ID, qr.CompanyID, qr.PublicID, qr.Label, qr.IsActive, qr.CreatedAt,
	)
	return err
}

// GetByID retrieves a QR code by id scoped to its owning company.
func (r *QRCodesRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.QRCode, error) {
	query := `
		SELECT id, company_id, public_id, label, is_active, created_at
		FROM qr_codes
		WHERE id = $1 AND company_id = $2
	`
	qr := &domain.QRCode{}
	err := r.db.QueryRowContext(ctx, query, id, companyID).Scan(
		&qr.ID, &qr.CompanyID, &qr.PublicID, &qr.Label, &qr.IsActive, &qr.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQRCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return qr, nil
}

// GetByPublicID retrieves a QR code by its public identifier.
func (r *QRCodesRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.QRCode, error) {
	query := `
		SELECT id, company_id, public_id, label, is_active, created_at
		FROM qr_codes
		WHERE public_id = $1
	`
	qr := &domain.QRCode{}
	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&qr.ID, &qr.CompanyID, &qr.PublicID, &qr.Label, &qr.IsActive, &qr.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQRCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return qr, nil
}

// ResolvePublic retrieves the anonymous projection of a QR code, joining the
// owning company for its display name.
func (r *QRCodesRepository) ResolvePublic(ctx context.Context, publicID string) (*domain.QRCodePublicInfo, error) {
	query := `
		SELECT q.public_id, q.label, c.name, q.is_active
		FROM qr_codes q
		JOIN companies c ON c.id = q.company_id
		WHERE q.public_id = $1
	`
	info := &domain.QRCodePublicInfo{}
	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&info.PublicID, &info.Label, &info.CompanyName, &info.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQRCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// ListByCompany retrieves all QR codes for a company, newest first.
func (r *QRCodesRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.QRCode, error) {
	query := `
		SELECT id, company_id, public_id, label, is_active, created_at
		FROM qr_codes
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []domain.QRCode
	for rows.Next() {
		var qr domain.QRCode
		if err := rows.Scan(&qr.ID, &qr.CompanyID, &qr.PublicID, &qr.Label, &qr.IsActive, &qr.CreatedAt); err != nil {
			return nil, err
		}
		codes = append(codes, qr)
	}
	return codes, rows.Err()
}

// Update persists the mutable QR fields (label, active flag), scoped to the
// owning company.
func (r *QRCodesRepository) Update(ctx context.Context, qr *domain.QRCode) error {
	query := `
		UPDATE qr_codes
		SET label = $3, is_active = $4
		WHERE id = $1 AND company_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, qr.ID, qr.CompanyID, qr.Label, qr.IsActive)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrQRCodeNotFound
	}
	return nil
}

// Delete removes a QR code, scoped to the owning company.
func (r *QRCodesRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM qr_codes WHERE id = $1 AND company_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrQRCodeNotFound
	}
	return nil
}

// CountByCompany counts a company's QR codes, optionally only active ones.
func (r *QRCodesRepository) CountByCompany(ctx context.Context, companyID uuid.UUID, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM qr_codes WHERE company_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	var count int
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(&count)
	return count, err
}
