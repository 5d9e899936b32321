package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a feedback submission (closed range).
const (
	MinRating = 1
	MaxRating = 10
)

// Feedback is a single append-only rating event. CompanyID is denormalized from
// the owning QR code at write time so company-scoped queries need no join; the
// invariant CompanyID == qr_code.CompanyID is enforced in the ledger, never
// re-derived on read.
type Feedback struct {
	ID        uuid.UUID
	QRCodeID  uuid.UUID
	CompanyID uuid.UUID
	Rating    int
	Comment   *string
	IPAddress *string
	CreatedAt time.Time

	// QRLabel is populated by list queries via an explicit join; it is not a
	// stored column.
	QRLabel *string
}

// ValidRating reports whether r is within the accepted closed range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
