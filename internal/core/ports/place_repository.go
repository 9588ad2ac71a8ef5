package ports

import (
	"context"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

// PlaceRepository defines persistence for place records.
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) (*domain.Place, error)
	FindByID(ctx context.Context, id string) (*domain.Place, error)
	All(ctx context.Context) ([]domain.Place, error)
	Delete(ctx context.Context, id string) error
}
