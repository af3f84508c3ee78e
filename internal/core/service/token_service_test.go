package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

var tokenEpoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	now := tokenEpoch
	svc := NewTokenService("secret", time.Hour).WithClock(fixedClock(&now))

	token, issued, err := svc.Issue(domain.SessionClaim{
		Subject: "alice",
		Name:    "alice",
		Email:   "a@x.io",
		Role:    domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected compact JWT, got %q", token)
	}
	if !issued.IssuedAt.Equal(tokenEpoch) || !issued.ExpiresAt.Equal(tokenEpoch.Add(time.Hour)) {
		t.Fatalf("unexpected stamped times: iat=%v exp=%v", issued.IssuedAt, issued.ExpiresAt)
	}

	claim, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if *claim != issued {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", *claim, issued)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	if got := NewTokenService("secret", 0).TTL(); got != 2*time.Hour {
		t.Fatalf("expected 2h default TTL, got %v", got)
	}
}

func TestTokenService_ExpiryBoundaryIsInclusive(t *testing.T) {
	now := tokenEpoch
	svc := NewTokenService("secret", time.Hour).WithClock(fixedClock(&now))

	token, _, err := svc.Issue(domain.SessionClaim{Subject: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	now = tokenEpoch.Add(time.Hour - time.Second)
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("expected token valid one second before exp, got %v", err)
	}

	now = tokenEpoch.Add(time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at exp, got %v", err)
	}

	now = tokenEpoch.Add(48 * time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired after exp, got %v", err)
	}
}

func TestTokenService_IssueTruncatesToSeconds(t *testing.T) {
	now := tokenEpoch.Add(750 * time.Millisecond)
	svc := NewTokenService("secret", time.Hour).WithClock(fixedClock(&now))

	token, issued, err := svc.Issue(domain.SessionClaim{Subject: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	claim, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !claim.IssuedAt.Equal(issued.IssuedAt) || !claim.IssuedAt.Equal(tokenEpoch) {
		t.Fatalf("expected iat %v, got %v (issued %v)", tokenEpoch, claim.IssuedAt, issued.IssuedAt)
	}
}

func TestTokenService_Rejections(t *testing.T) {
	now := tokenEpoch
	svc := NewTokenService("secret", time.Hour).WithClock(fixedClock(&now))
	other := NewTokenService("other-secret", time.Hour).WithClock(fixedClock(&now))

	good, _, err := svc.Issue(domain.SessionClaim{Subject: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	foreign, _, err := other.Issue(domain.SessionClaim{Subject: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Swap the payload for one claiming a different subject, keep the signature.
	parts := strings.Split(good, ".")
	forged, _, _ := svc.Issue(domain.SessionClaim{Subject: "mallory", Role: "admin"})
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign HS512: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "alice",
		IssuedAt: jwt.NewNumericDate(now),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", domain.ErrTokenMalformed},
		{"garbage", "not-a-jwt", domain.ErrTokenMalformed},
		{"bad base64", "a.b.c", domain.ErrTokenMalformed},
		{"tampered payload", tampered, domain.ErrTokenInvalidSignature},
		{"wrong key", foreign, domain.ErrTokenInvalidSignature},
		{"wrong algorithm", hs512, domain.ErrTokenInvalidSignature},
		{"alg none", unsigned, domain.ErrTokenInvalidSignature},
		{"missing subject", noSubject, domain.ErrTokenMalformed},
		{"missing exp", noExpiry, domain.ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
