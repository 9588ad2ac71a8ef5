package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workplace-hq/workplace-api/internal/api/metrics"
	"github.com/workplace-hq/workplace-api/internal/auth"
	"github.com/workplace-hq/workplace-api/internal/core/domain"
	"github.com/workplace-hq/workplace-api/internal/core/ports"
	"github.com/workplace-hq/workplace-api/internal/core/token"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// AuthService implements registration, login, token refresh, and user
// account management.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Issuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Register creates a new user. The email is the natural key: a second
// registration with the same email fails with domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.log.Info().Str("email", email).Msg("registration rejected, email already taken")
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a bearer token plus a rotating
// refresh token. A missing user and a wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("login: refresh token: %w", err)
	}
	if err := s.repo.SetRefreshToken(ctx, user.Email, refresh, time.Now().UTC().Add(refreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("login: store refresh token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: signed, RefreshToken: refresh, User: user}, nil
}

// Refresh exchanges an expired bearer token plus its refresh token for
// a fresh pair. The refresh token is single-use: it rotates on every
// exchange.
func (s *AuthService) Refresh(ctx context.Context, expiredToken, refreshToken string) (*ports.RefreshResult, error) {
	claims, err := s.tokens.ParseExpired(expiredToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if refreshToken == "" || user.RefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	if user.RefreshTokenExpire == nil || time.Now().UTC().After(*user.RefreshTokenExpire) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("refresh: issue token: %w", err)
	}
	rotated, err := newRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("refresh: rotate token: %w", err)
	}
	if err := s.repo.SetRefreshToken(ctx, user.Email, rotated, time.Now().UTC().Add(refreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("refresh: store token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("token refreshed")
	return &ports.RefreshResult{Token: signed, RefreshToken: rotated}, nil
}

// Update replaces a user's mutable fields. The write is guarded by the
// concurrency stamp read during the lookup, so a concurrent update
// between the read and the write fails with domain.ErrStaleStamp.
func (s *AuthService) Update(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if role != "" && !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("update user: hash password: %w", err)
	}

	updated := *existing
	updated.Name = name
	updated.PasswordHash = hash
	if role != "" {
		updated.Role = role
	}

	result, err := s.repo.Update(ctx, &updated, existing.ETag)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", result.ID).Msg("user updated")
	return result, nil
}

// Delete removes a user by email, failing with domain.ErrUserNotFound
// when no such user exists.
func (s *AuthService) Delete(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, email); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("user deleted")
	return nil
}

func (s *AuthService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.repo.All(ctx)
}

// GetByID looks up a user by their UUID. A malformed id fails with
// domain.ErrInvalidInput before any repository call.
func (s *AuthService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.FindByID(ctx, id)
}

// newRefreshToken returns 36 bytes of randomness, base64 encoded.
func newRefreshToken() (string, error) {
	b := make([]byte, 36)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
