package security

import (
	"errors"
	"testing"
	"time"

	"github.com/arklim/social-platform-api/internal/core/domain"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenServiceOptions{
		Secret:    "unit-test-secret",
		Issuer:    "social-platform-api",
		AccessTTL: 24 * time.Hour,
		ResetTTL:  30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(TokenServiceOptions{Secret: "   "}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken(42, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return issuedAt })

	token, err := svc.IssueAccessToken(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	svc.WithClock(func() time.Time { return issuedAt.Add(23 * time.Hour) })
	if _, err := svc.ParseAccessToken(token); err != nil {
		t.Fatalf("token should still be valid before expiry: %v", err)
	}

	svc.WithClock(func() time.Time { return issuedAt.Add(25 * time.Hour) })
	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseAccessTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewTokenService(TokenServiceOptions{Secret: "different-secret"})
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, err := other.IssueAccessToken(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)
	if _, err := svc.ParseAccessToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssuePasswordResetToken(99)
	if err != nil {
		t.Fatalf("IssuePasswordResetToken returned error: %v", err)
	}

	userID, err := svc.ParsePasswordResetToken(token)
	if err != nil {
		t.Fatalf("ParsePasswordResetToken returned error: %v", err)
	}
	if userID != 99 {
		t.Fatalf("expected user id 99, got %d", userID)
	}
}

func TestPasswordResetTokenExpiresAfterThirtyMinutes(t *testing.T) {
	svc := newTestTokenService(t)

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return issuedAt })

	token, err := svc.IssuePasswordResetToken(5)
	if err != nil {
		t.Fatalf("IssuePasswordResetToken returned error: %v", err)
	}

	svc.WithClock(func() time.Time { return issuedAt.Add(31 * time.Minute) })
	if _, err := svc.ParsePasswordResetToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAccessTokenIsNotAResetToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken(3, domain.RoleUser)
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	if _, err := svc.ParsePasswordResetToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access token on reset path, got %v", err)
	}
}
