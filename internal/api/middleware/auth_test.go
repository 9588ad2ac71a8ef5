package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
	"github.com/workplace-hq/workplace-api/internal/core/token"
)

func testIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", "workplace-api", "workplace-clients", time.Hour)
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "5f3c1a2e-0000-4000-8000-000000000001",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  domain.RoleClient,
	}
}

func invokeAuth(t *testing.T, issuer *token.Issuer, header string) (int, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(issuer)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err == nil {
		return rec.Code, c
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("unexpected error type: %v", err)
	}
	return he.Code, c
}

func TestAuth_ValidToken(t *testing.T) {
	issuer := testIssuer()
	user := testUser()
	signed, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	code, c := invokeAuth(t, issuer, "Bearer "+signed)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got, _ := c.Get("user_id").(string); got != user.ID {
		t.Errorf("user_id = %q, want %q", got, user.ID)
	}
	if got, _ := c.Get("email").(string); got != user.Email {
		t.Errorf("email = %q, want %q", got, user.Email)
	}
	if got, _ := c.Get("role").(string); got != user.Role {
		t.Errorf("role = %q, want %q", got, user.Role)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	code, _ := invokeAuth(t, testIssuer(), "")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	code, _ := invokeAuth(t, testIssuer(), "Token abc")
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	other := token.NewIssuer("other-secret", "workplace-api", "workplace-clients", time.Hour)
	signed, err := other.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	code, _ := invokeAuth(t, testIssuer(), "Bearer "+signed)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   testUser().ID,
		Issuer:    "workplace-api",
		Audience:  jwt.ClaimStrings{"workplace-clients"},
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	code, _ := invokeAuth(t, testIssuer(), "Bearer "+signed)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
