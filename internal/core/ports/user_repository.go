package ports

import (
	"context"
	"time"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

// UserRepository defines persistence for user records. Update is a
// conditional write: it only succeeds when etag matches the stored
// concurrency stamp, surfacing domain.ErrStaleStamp otherwise.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User, etag string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, email, refreshToken string, expire time.Time) error
	Delete(ctx context.Context, email string) error
	All(ctx context.Context) ([]domain.User, error)
}
