// Package token issues and verifies the signed bearer tokens used by
// the API. Tokens are HS256 JWTs bound to a configured issuer and
// audience; any other signing algorithm is rejected outright.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

const defaultTTL = 10 * time.Hour

// Claims carries the identity attributes embedded in a token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with a symmetric key.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewIssuer(secret, issuer, audience string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

// Issue returns a signed token asserting the user's identity, valid
// for the configured window from now.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify checks signature, algorithm, issuer, audience, and expiry.
// Every failure surfaces as domain.ErrInvalidToken; callers get no
// hint about which check rejected the token.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenStr, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil || !t.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// ParseExpired reads claims from a token whose lifetime may already
// have elapsed, for the refresh flow. Signature, algorithm, issuer,
// and audience are still enforced.
func (i *Issuer) ParseExpired(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenStr, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !t.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Issuer != i.issuer || !containsAudience(claims.Audience, i.audience) {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (i *Issuer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return i.secret, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
