package domain

import (
	"errors"
	"time"
)

var ErrPlaceNotFound = errors.New("place not found")

// Place is a bookable venue. PosterURL and VideoURL point at blobs in
// the media store; a Place is only persisted once both uploads succeed.
type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	IsActive    bool      `json:"is_active"`
	PosterURL   string    `json:"poster_url"`
	VideoURL    string    `json:"video_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ETag        string    `json:"etag,omitempty"`
}
