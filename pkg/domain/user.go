package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. A regular user belongs to exactly one company;
// a super-admin has no company binding and may read across tenants.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CompanyID    *uuid.UUID
	IsSuperAdmin bool
	CreatedAt    time.Time
}

// HasCompany returns true if the user is bound to a company.
func (u *User) HasCompany() bool {
	return u.CompanyID != nil
}
