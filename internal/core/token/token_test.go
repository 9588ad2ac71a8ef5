package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "8f14e45f-ea3f-4c6a-9d3b-111111111111",
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	iss := NewIssuer("secret", "workplace-api", "workplace-clients", time.Hour)

	signed, err := iss.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := iss.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "8f14e45f-ea3f-4c6a-9d3b-111111111111" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "alice@example.com" || claims.Name != "Alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestIssuer_Verify_WrongSecret(t *testing.T) {
	iss := NewIssuer("secret", "workplace-api", "workplace-clients", time.Hour)
	other := NewIssuer("other-secret", "workplace-api", "workplace-clients", time.Hour)

	signed, err := iss.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_Verify_Tampered(t *testing.T) {
	iss := NewIssuer("secret", "workplace-api", "workplace-clients", time.Hour)

	signed, err := iss.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tampered := signed[:len(signed)-2] + "xx"

	if _, err := iss.Verify(tampered); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_Verify_Expired(t *testing.T) {
	iss := NewIssuer("secret", "workplace-api", "workplace-clients", time.Hour)

	now := time.Now().UTC()
	claims := Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			Issuer:    "workplace-api",
			Audience:  jwt.ClaimStrings{"workplace-clients"},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := iss.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	// The refresh path still accepts it and returns the original claims.
	parsed, err := iss.ParseExpired(signed)
	if err != nil {
		t.Fatalf("parse expired: %v", err)
	}
	if parsed.Subject != "u1" {
		t.Fatalf("unexpected subject: %s", parsed.Subject)
	}
}

func TestIssuer_Verify_WrongAlgorithm(t *testing.T) {
	iss := NewIssuer("secret", "workplace-api", "workplace-clients", time.Hour)

	claims := jwt.MapClaims{
		"sub": "u1",
		"iss": "workplace-api",
		"aud": "workplace-clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := iss.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
	if _, err := iss.ParseExpired(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for HS512 token in expired mode, got %v", err)
	}
}

func TestIssuer_Verify_WrongIssuerOrAudience(t *testing.T) {
	foreign := NewIssuer("secret", "other-service", "other-clients", time.Hour)
	iss := NewIssuer("secret", "workplace-api", "workplace-clients", time.Hour)

	signed, err := foreign.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := iss.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := iss.ParseExpired(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken in expired mode, got %v", err)
	}
}
