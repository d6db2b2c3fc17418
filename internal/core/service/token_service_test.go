package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shipsy/shipsy-api/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expected expires_in 900, got %d", pair.ExpiresIn)
	}
	if pair.RefreshTokenID == "" {
		t.Fatalf("expected a rotation id on the refresh token")
	}

	access, err := svc.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if access.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, access.UserID)
	}
	if access.Email != "owner@example.com" {
		t.Fatalf("expected email claim, got %q", access.Email)
	}

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if refresh.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, refresh.UserID)
	}
	if refresh.TokenID != pair.RefreshTokenID {
		t.Fatalf("expected jti %q, got %q", pair.RefreshTokenID, refresh.TokenID)
	}
}

func TestTokenService_SecretsAreDistinct(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
	pair, err := svc.IssuePair(uuid.New(), "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	// An access token must not pass refresh verification and vice versa.
	if _, err := svc.VerifyRefresh(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.VerifyAccess(pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	// Negative TTLs fall back to the defaults in the constructor, so build an
	// already-expired service explicitly.
	svc.accessTTL = -time.Minute

	pair, err := svc.IssuePair(uuid.New(), "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	if _, err := svc.VerifyAccess(pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_DecodeSkipsVerification(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	claims, expiry, err := svc.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != userID || claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	wantExpiry := time.Now().Add(15 * time.Minute)
	if diff := expiry.Sub(wantExpiry); diff < -5*time.Second || diff > 5*time.Second {
		t.Fatalf("expiry = %v, want about %v", expiry, wantExpiry)
	}

	// A token from a foreign key still decodes; scheduling needs only the
	// payload. Verification of the same token must keep failing.
	other := NewTokenService("other-secret", "other-refresh", time.Minute, time.Hour)
	foreignPair, err := other.IssuePair(userID, "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	if _, _, err := svc.Decode(foreignPair.AccessToken); err != nil {
		t.Fatalf("decode foreign-signed token: %v", err)
	}
	if _, err := svc.VerifyAccess(foreignPair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken from verify, got %v", err)
	}
}

func TestTokenService_DecodeExpiredToken(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc.accessTTL = -time.Minute

	pair, err := svc.IssuePair(uuid.New(), "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	// Decode reads the past expiry instead of rejecting it, so a client can
	// tell the token is already stale and refresh immediately.
	_, expiry, err := svc.Decode(pair.AccessToken)
	if err != nil {
		t.Fatalf("decode expired token: %v", err)
	}
	if !expiry.Before(time.Now()) {
		t.Fatalf("expiry = %v, want in the past", expiry)
	}

	if _, _, err := svc.Decode("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestTokenService_UniformFailures(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewTokenService("other-secret", "other-refresh", time.Minute, time.Hour)

	pair, err := other.IssuePair(uuid.New(), "owner@example.com")
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	cases := map[string]string{
		"malformed":    "not-a-token",
		"empty":        "",
		"wrong secret": pair.AccessToken,
	}
	for name, token := range cases {
		if _, err := svc.VerifyAccess(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
