package domain

import (
	"time"

	"github.com/google/uuid"
)

// QRCode is a feedback entry point owned by a company. PublicID is the random
// externally-facing identifier embedded in the QR image URL; it is immutable
// and globally unique, unlike the internal ID it never leaks ownership.
type QRCode struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	PublicID  string
	Label     string
	IsActive  bool
	CreatedAt time.Time
}

// QRCodePublicInfo is the only QR projection reachable without authentication.
type QRCodePublicInfo struct {
	PublicID    string
	Label       string
	CompanyName string
	IsActive    bool
}
