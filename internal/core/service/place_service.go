package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workplace-hq/workplace-api/internal/api/metrics"
	"github.com/workplace-hq/workplace-api/internal/core/domain"
	"github.com/workplace-hq/workplace-api/internal/core/ports"
)

// BlobCleaner schedules background deletion of uploaded blobs. Used
// for compensating deletes when a place submission fails after one or
// both uploads succeeded, and for cleanup when a place is removed.
type BlobCleaner interface {
	Enqueue(urls ...string)
}

// PlaceCache abstracts the read cache (Redis). A nil result with a nil
// error is a miss. Cache failures are never fatal to a request.
type PlaceCache interface {
	GetPlace(ctx context.Context, id string) (*domain.Place, error)
	SetPlace(ctx context.Context, place *domain.Place) error
	GetAll(ctx context.Context) ([]domain.Place, error)
	SetAll(ctx context.Context, places []domain.Place) error
	Invalidate(ctx context.Context, id string) error
}

// PlaceService implements place creation with dual media uploads,
// cached reads, and deletion.
type PlaceService struct {
	repo    ports.PlaceRepository
	media   ports.MediaStore
	cache   PlaceCache
	cleaner BlobCleaner
	log     zerolog.Logger
}

func NewPlaceService(repo ports.PlaceRepository, media ports.MediaStore, cache PlaceCache, cleaner BlobCleaner, log zerolog.Logger) *PlaceService {
	return &PlaceService{repo: repo, media: media, cache: cache, cleaner: cleaner, log: log}
}

// Create uploads the poster and video, then persists the record with
// both URLs. The record is never written with a single URL: when the
// second upload or the persist step fails, the blobs already uploaded
// are handed to the cleaner for compensating deletion.
func (s *PlaceService) Create(ctx context.Context, in ports.CreatePlaceInput, poster, video io.Reader) (*domain.Place, error) {
	posterURL, err := s.media.UploadPoster(ctx, poster, in.PosterFileName)
	if err != nil {
		return nil, fmt.Errorf("create place: upload poster: %w", err)
	}

	videoURL, err := s.media.UploadVideo(ctx, video, in.VideoFileName)
	if err != nil {
		s.log.Warn().Str("poster_url", posterURL).Msg("video upload failed, scheduling poster cleanup")
		s.cleaner.Enqueue(posterURL)
		return nil, fmt.Errorf("create place: upload video: %w", err)
	}

	now := time.Now().UTC()
	place := &domain.Place{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Capacity:    in.Capacity,
		IsActive:    in.IsActive,
		PosterURL:   posterURL,
		VideoURL:    videoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, place)
	if err != nil {
		s.log.Warn().Str("place_id", place.ID).Msg("persist failed, scheduling blob cleanup")
		s.cleaner.Enqueue(posterURL, videoURL)
		return nil, fmt.Errorf("create place: %w", err)
	}

	if cerr := s.cache.Invalidate(ctx, created.ID); cerr != nil {
		s.log.Warn().Err(cerr).Msg("cache invalidation failed")
	}

	metrics.PlacesCreatedTotal.Inc()
	s.log.Info().Str("place_id", created.ID).Str("name", created.Name).Msg("place created")
	return created, nil
}

// GetByID serves a place from the cache when possible, falling back to
// the repository and repopulating the cache on a miss.
func (s *PlaceService) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	cached, err := s.cache.GetPlace(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("place_id", id).Msg("place cache read failed")
	}
	if cached != nil {
		metrics.PlaceCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.PlaceCacheTotal.WithLabelValues("miss").Inc()

	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cerr := s.cache.SetPlace(ctx, place); cerr != nil {
		s.log.Warn().Err(cerr).Str("place_id", id).Msg("place cache write failed")
	}
	return place, nil
}

// GetAll lists all places, cache-first.
func (s *PlaceService) GetAll(ctx context.Context) ([]domain.Place, error) {
	cached, err := s.cache.GetAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("place list cache read failed")
	}
	if cached != nil {
		metrics.PlaceCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.PlaceCacheTotal.WithLabelValues("miss").Inc()

	places, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if places == nil {
		// A nil listing would read as a cache miss forever and render
		// as null; empty listings are real, cacheable results.
		places = []domain.Place{}
	}
	if cerr := s.cache.SetAll(ctx, places); cerr != nil {
		s.log.Warn().Err(cerr).Msg("place list cache write failed")
	}
	return places, nil
}

// Delete removes a place and schedules deletion of its media blobs.
func (s *PlaceService) Delete(ctx context.Context, id string) error {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cleaner.Enqueue(place.PosterURL, place.VideoURL)
	if cerr := s.cache.Invalidate(ctx, id); cerr != nil {
		s.log.Warn().Err(cerr).Str("place_id", id).Msg("cache invalidation failed")
	}

	s.log.Info().Str("place_id", id).Msg("place deleted")
	return nil
}
