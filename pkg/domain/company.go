package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a tenant. Everything else in the system (users, QR codes,
// feedback) is scoped to exactly one company.
type Company struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	LogoURL   *string
	CreatedAt time.Time
}
