package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// RatingAggregate holds the raw aggregates for one scope: row count, average
// rating (invalid when the scope is empty), and counts per rating value.
type RatingAggregate struct {
	Total        int
	Average      sql.NullFloat64
	Distribution map[int]int
}

// FeedbackRepository handles the append-only feedback ledger. Rows are never
// updated or deleted; every list is ordered newest first.
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create appends a feedback row.
func (r *FeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, qr_code_id, company_id, rating, comment, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		fb.ID, fb.QRCodeID, fb.CompanyID, fb.Rating, fb.Comment, fb.IPAddress, fb.CreatedAt,
	)
	return err
}

const feedbackSelect = `
	SELECT f.id, f.qr_code_id, f.company_id, f.rating, f.comment, f.ip_address, f.created_at, q.label
	FROM feedbacks f
	LEFT JOIN qr_codes q ON q.id = f.qr_code_id
`

func scanFeedbackRows(rows *sql.Rows) ([]domain.Feedback, error) {
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID, &fb.QRCodeID, &fb.CompanyID, &fb.Rating, &fb.Comment, &fb.IPAddress, &fb.CreatedAt, &fb.QRLabel,
		); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}

// ListByCompany retrieves a page of a company's feedback, newest first.
func (r *FeedbackRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.Feedback, error) {
	query := feedbackSelect + `
		WHERE f.company_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanFeedbackRows(rows)
}

// ListAll retrieves a page of feedback across all companies, newest first.
func (r *FeedbackRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Feedback, error) {
	query := feedbackSelect + `
		ORDER BY f.created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanFeedbackRows(rows)
}

// ListSince retrieves a company's feedback created at or after since, with an
// optional QR code filter, newest first.
func (r *FeedbackRepository) ListSince(ctx context.Context, companyID uuid.UUID, qrCodeID *uuid.UUID, since time.Time) ([]domain.Feedback, error) {
	query := feedbackSelect + `
		WHERE f.company_id = $1 AND f.created_at >= $2
	`
	args := []any{companyID, since}
	if qrCodeID != nil {
		query += ` AND f.qr_code_id = $3`
		args = append(args, *qrCodeID)
	}
	query += ` ORDER BY f.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanFeedbackRows(rows)
}

// ListRange retrieves up to limit rows of a company's feedback in the half-open
// interval [from, to), newest first.
func (r *FeedbackRepository) ListRange(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]domain.Feedback, error) {
	query := feedbackSelect + `
		WHERE f.company_id = $1 AND f.created_at >= $2 AND f.created_at < $3
		ORDER BY f.created_at DESC
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, err
	}
	return scanFeedbackRows(rows)
}

// StatsByCompany computes the rating aggregates for one company.
func (r *FeedbackRepository) StatsByCompany(ctx context.Context, companyID uuid.UUID) (*RatingAggregate, error) {
	return r.aggregate(ctx, `WHERE company_id = $1`, companyID)
}

// StatsByQRCode computes the rating aggregates for one QR code.
func (r *FeedbackRepository) StatsByQRCode(ctx context.Context, qrCodeID uuid.UUID) (*RatingAggregate, error) {
	return r.aggregate(ctx, `WHERE qr_code_id = $1`, qrCodeID)
}

func (r *FeedbackRepository) aggregate(ctx context.Context, where string, arg any) (*RatingAggregate, error) {
	agg := &RatingAggregate{Distribution: make(map[int]int)}

	query := `SELECT COUNT(*), AVG(rating) FROM feedbacks ` + where
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&agg.Total, &agg.Average); err != nil {
		return nil, err
	}

	query = `SELECT rating, COUNT(*) FROM feedbacks ` + where + ` GROUP BY rating`
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		agg.Distribution[rating] = count
	}
	return agg, rows.Err()
}

// Best retrieves a company's highest-rated feedback, ties broken newest first.
func (r *FeedbackRepository) Best(ctx context.Context, companyID uuid.UUID, limit int) ([]domain.Feedback, error) {
	query := feedbackSelect + `
		WHERE f.company_id = $1
		ORDER BY f.rating DESC, f.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	return scanFeedbackRows(rows)
}

// Worst retrieves a company's lowest-rated feedback, ties broken newest first.
func (r *FeedbackRepository) Worst(ctx context.Context, companyID uuid.UUID, limit int) ([]domain.Feedback, error) {
	query := feedbackSelect + `
		WHERE f.company_id = $1
		ORDER BY f.rating ASC, f.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	return scanFeedbackRows(rows)
}
