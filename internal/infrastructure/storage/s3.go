package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/workplace-hq/workplace-api/internal/api/metrics"
)

const (
	posterPrefix = "places-posters"
	videoPrefix  = "places-videos"

	posterContentType = "image/jpeg"
	videoContentType  = "video/mp4"
)

// Config holds the settings for an S3-compatible object store.
type Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	PublicDomain string
}

// BlobStore uploads place media to an S3-compatible bucket and returns
// publicly servable URLs. Object keys are prefixed per media kind and
// carry a random component so reuploads of the same filename never
// collide.
type BlobStore struct {
	client *s3.Client
	bucket string
	domain string
	log    zerolog.Logger
}

// NewBlobStore builds an S3 client against the configured endpoint
// using static credentials and path-style addressing.
func NewBlobStore(ctx context.Context, cfg Config, log zerolog.Logger) (*BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("blob store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &BlobStore{
		client: client,
		bucket: cfg.Bucket,
		domain: strings.TrimSuffix(cfg.PublicDomain, "/"),
		log:    log,
	}, nil
}

func (s *BlobStore) UploadPoster(ctx context.Context, r io.Reader, filename string) (string, error) {
	return s.upload(ctx, r, posterPrefix, filename, posterContentType)
}

func (s *BlobStore) UploadVideo(ctx context.Context, r io.Reader, filename string) (string, error) {
	return s.upload(ctx, r, videoPrefix, filename, videoContentType)
}

func (s *BlobStore) upload(ctx context.Context, r io.Reader, prefix, filename, contentType string) (string, error) {
	kind := kindForPrefix(prefix)
	key := fmt.Sprintf("%s/%s_%s", prefix, uuid.NewString(), filename)

	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	metrics.MediaUploadDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues(kind, "failure").Inc()
		return "", fmt.Errorf("upload %s: %w", kind, err)
	}
	metrics.MediaUploadsTotal.WithLabelValues(kind, "success").Inc()

	url := fmt.Sprintf("%s/%s/%s", s.domain, s.bucket, key)
	s.log.Debug().Str("key", key).Str("kind", kind).Msg("blob uploaded")
	return url, nil
}

// Delete removes the object a public URL points at. URLs minted by
// another store (different domain or bucket) are rejected rather than
// guessed at.
func (s *BlobStore) Delete(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *BlobStore) keyFromURL(url string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.domain, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("blob url %q outside bucket %s", url, s.bucket)
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", fmt.Errorf("blob url %q has empty key", url)
	}
	return key, nil
}

func kindForPrefix(prefix string) string {
	if prefix == videoPrefix {
		return "video"
	}
	return "poster"
}
