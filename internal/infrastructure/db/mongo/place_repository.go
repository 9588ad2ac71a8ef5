package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

const placesCollection = "places"

// PlaceRepository persists place records.
type PlaceRepository struct {
	coll *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{coll: db.Collection(placesCollection)}
}

type placeDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	Capacity    int    `bson:"capacity"`
	IsActive    bool   `bson:"is_active"`
	PosterURL   string `bson:"poster_url"`
	VideoURL    string `bson:"video_url"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
	ETag        string `bson:"etag"`
}

func (d placeDoc) toDomain() *domain.Place {
	return &domain.Place{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Capacity:    d.Capacity,
		IsActive:    d.IsActive,
		PosterURL:   d.PosterURL,
		VideoURL:    d.VideoURL,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
		ETag:        d.ETag,
	}
}

func (r *PlaceRepository) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := placeDoc{
		ID:          place.ID,
		Name:        place.Name,
		Description: place.Description,
		Capacity:    place.Capacity,
		IsActive:    place.IsActive,
		PosterURL:   place.PosterURL,
		VideoURL:    place.VideoURL,
		CreatedAt:   place.CreatedAt.Unix(),
		UpdatedAt:   place.UpdatedAt.Unix(),
		ETag:        uuid.NewString(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert place: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id string) (*domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc placeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("find place: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaceRepository) All(ctx context.Context) ([]domain.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer cursor.Close(ctx)

	// Initialized so an empty collection lists as [] rather than null.
	places := make([]domain.Place, 0)
	for cursor.Next(ctx) {
		var doc placeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list places: decode: %w", err)
		}
		places = append(places, *doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return places, nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaceNotFound
	}
	return nil
}
