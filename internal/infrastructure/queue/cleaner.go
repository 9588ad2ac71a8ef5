package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/workplace-hq/workplace-api/internal/api/metrics"
	"github.com/workplace-hq/workplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deleteTimeout  = 30 * time.Second
)

// BlobCleaner deletes orphaned media objects in the background. URLs
// are sharded across a fixed set of workers by consistent hashing, so
// retries for the same object never race each other.
type BlobCleaner struct {
	workers []chan string
	store   ports.MediaStore
	log     zerolog.Logger
}

// NewBlobCleaner creates a BlobCleaner with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewBlobCleaner(numWorkers int, store ports.MediaStore, log zerolog.Logger) *BlobCleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	c := &BlobCleaner{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range c.workers {
		c.workers[i] = make(chan string, channelBuffer)
	}
	return c
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (c *BlobCleaner) Start(ctx context.Context) {
	for i, ch := range c.workers {
		go c.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules blob URLs for deletion. Empty URLs are skipped.
// The call is non-blocking up to channelBuffer capacity.
func (c *BlobCleaner) Enqueue(urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		c.workers[c.shardIndex(url)] <- url
	}
}

func (c *BlobCleaner) shardIndex(url string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return int(h.Sum32()) % len(c.workers)
}

func (c *BlobCleaner) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-ch:
			if !ok {
				return
			}
			deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
			err := c.store.Delete(deleteCtx, url)
			cancel()
			if err != nil {
				metrics.BlobCleanupTotal.WithLabelValues("failure").Inc()
				c.log.Error().Err(err).
					Str("url", url).
					Int("worker_id", id).
					Msg("blob cleanup failed")
				continue
			}
			metrics.BlobCleanupTotal.WithLabelValues("success").Inc()
			c.log.Info().Str("url", url).Msg("orphaned blob deleted")
		}
	}
}
