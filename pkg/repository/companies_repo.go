package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// CompaniesRepository handles company (tenant) persistence.
type CompaniesRepository struct {
	db *sql.DB
}

// NewCompaniesRepository creates a new companies repository.
func NewCompaniesRepository(db *sql.DB) *CompaniesRepository {
	return &CompaniesRepository{db: db}
}

// CreateTx creates a new company using the given querier (typically a transaction).
func (r *CompaniesRepository) CreateTx(ctx context.Context, q Querier, company *domain.Company) error {
	query := `
		INSERT INTO companies (id, name, slug, logo_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.ExecContext(ctx, query,
		company.ID, company.Name, company.Slug, company.LogoURL, company.CreatedAt,
	)
	return err
}

// GetByID retrieves a company by ID.
func (r *CompaniesRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `
		SELECT id, name, slug, logo_url, created_at
		FROM companies
		WHERE id = $1
	`
	company := &domain.Company{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID, &company.Name, &company.Slug, &company.LogoURL, &company.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Update updates the mutable company fields (name, logo).
func (r *CompaniesRepository) Update(ctx context.Context, company *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, logo_url = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, company.ID, company.Name, company.LogoURL)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// ListAll retrieves all companies ordered by creation time.
func (r *CompaniesRepository) ListAll(ctx context.Context) ([]domain.Company, error) {
	query := `
		SELECT id, name, slug, logo_url, created_at
		FROM companies
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.LogoURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
