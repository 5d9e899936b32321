package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

func testTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		Secret: []byte("test-secret-key"),
		Issuer: "ratebridge-test",
		TTL:    ttl,
	})
}

func TestTokenService_IssueValidate(t *testing.T) {
	svc := testTokenService(time.Hour)

	companyID := uuid.New()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     "owner@example.com",
		CompanyID: &companyID,
	}

	token, expiresAt, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > time.Hour {
		t.Errorf("expiresAt %v, want ~1h from now", until)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != user.ID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.CompanyID != companyID.String() {
		t.Errorf("CompanyID = %q, want %q", claims.CompanyID, companyID)
	}
	if claims.SuperAdmin {
		t.Error("SuperAdmin = true for a company user")
	}
}

func TestTokenService_Validate_Failures(t *testing.T) {
	svc := testTokenService(time.Hour)
	user := &domain.User{ID: uuid.New(), Email: "u@example.com"}

	good, _, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	expired := testTokenService(-time.Minute)
	expiredToken, _, err := expired.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	otherKey := NewTokenService(TokenConfig{Secret: []byte("other-secret"), Issuer: "ratebridge-test", TTL: time.Hour})
	foreignToken, _, err := otherKey.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"truncated", good[:len(good)/2]},
		{"expired", expiredToken},
		{"wrong signing key", foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Validate(tt.token); !errors.Is(err, domain.ErrInvalidToken) {
				t.Errorf("Validate(%s) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: []byte("k")})
	if svc.TTL() != DefaultTokenTTL {
		t.Errorf("TTL = %v, want %v", svc.TTL(), DefaultTokenTTL)
	}
}
