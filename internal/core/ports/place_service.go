package ports

import (
	"context"
	"io"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

// CreatePlaceInput carries the already-validated fields of a place
// submission. Filenames are the logical names used for the blobs.
type CreatePlaceInput struct {
	Name           string
	Description    string
	Capacity       int
	IsActive       bool
	PosterFileName string
	VideoFileName  string
}

// PlaceService defines the place management use cases. Create uploads
// both media streams before persisting; a record is never written with
// only one media URL populated.
type PlaceService interface {
	Create(ctx context.Context, input CreatePlaceInput, poster, video io.Reader) (*domain.Place, error)
	GetAll(ctx context.Context) ([]domain.Place, error)
	GetByID(ctx context.Context, id string) (*domain.Place, error)
	Delete(ctx context.Context, id string) error
}
