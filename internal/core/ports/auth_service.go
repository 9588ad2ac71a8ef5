package ports

import (
	"context"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token        string
	RefreshToken string
	User         *domain.User
}

// RefreshResult is returned when an expired token is exchanged.
type RefreshResult struct {
	Token        string
	RefreshToken string
}

// AuthService defines the user registration, authentication, and
// account management use cases.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, expiredToken, refreshToken string) (*RefreshResult, error)
	Update(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Delete(ctx context.Context, email string) error
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
