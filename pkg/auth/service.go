package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
	"github.com/AmirejibiIlia/RateBridge/pkg/repository"
)

const minPasswordLen = 8

// uniqueViolation is the Postgres error code for duplicate unique keys.
const uniqueViolation = "23505"

// Service handles registration, login, and account credentials.
type Service struct {
	db        *sql.DB
	users     *repository.UsersRepository
	companies *repository.CompaniesRepository

	// dummyHash is verified against when login hits an unknown email, so the
	// unknown-email and wrong-password paths cost the same.
	dummyHash string
}

// NewService creates a new auth service.
func NewService(db *sql.DB, users *repository.UsersRepository, companies *repository.CompaniesRepository) (*Service, error) {
	dummyHash, err := HashPassword(uuid.New().String())
	if err != nil {
		return nil, err
	}
	return &Service{
		db:        db,
		users:     users,
		companies: companies,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a company and its first user atomically. The user is bound
// to the new company and is never a super-admin.
func (s *Service) Register(ctx context.Context, companyName, email, password string) (*domain.User, error) {
	if len(password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	company := &domain.Company{
		ID:        uuid.New(),
		Name:      companyName,
		Slug:      MakeSlug(companyName),
		CreatedAt: now,
	}
	companyID := company.ID
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CompanyID:    &companyID,
		IsSuperAdmin: false,
		CreatedAt:    now,
	}

	err = repository.Tx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.companies.CreateTx(ctx, tx, company); err != nil {
			return err
		}
		return s.users.CreateTx(ctx, tx, user)
	})
	if err != nil {
		// The pre-check races with concurrent registrations; the unique index
		// is the authority.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the user. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			VerifyPassword(password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword re-hashes and stores a new password for the user.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// EnsureSuperAdmin idempotently creates the configured super-admin account.
// An existing account with that email is left untouched.
func (s *Service) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CompanyID:    nil,
		IsSuperAdmin: true,
		CreatedAt:    time.Now().UTC(),
	}
	err = s.users.Create(ctx, user)
	if err != nil {
		// A concurrent bootstrap won the race; the account exists.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil
		}
	}
	return err
}
