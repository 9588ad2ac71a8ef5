// Package metrics defines and registers all custom Prometheus metrics
// for the workplace API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with
// the default registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersRegisteredTotal counts successfully registered users.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// MediaUploadsTotal counts blob uploads.
// Labels:
//   - kind: "poster" or "video"
//   - result: "success" or "failure"
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of media blob uploads, by kind and result.",
	},
	[]string{"kind", "result"},
)

// MediaUploadDuration measures how long a single blob upload takes.
// Label:
//   - kind: "poster" or "video"
var MediaUploadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "media_upload_duration_seconds",
		Help:      "Duration of a single media blob upload.",
		Buckets:   prometheus.DefBuckets, // .005 … 10
	},
	[]string{"kind"},
)

// BlobCleanupTotal counts compensating blob deletions performed by the
// background cleanup worker.
// Label:
//   - result: "success" or "failure"
var BlobCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_cleanup_total",
		Help:      "Total number of background blob deletions, by result.",
	},
	[]string{"result"},
)

// ── Place metrics ─────────────────────────────────────────────────────────────

// PlacesCreatedTotal counts newly created places.
var PlacesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "places_created_total",
		Help:      "Total number of places created.",
	},
)

// PlaceCacheTotal counts place cache lookups.
// Label:
//   - result: "hit" or "miss"
var PlaceCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "place_cache_total",
		Help:      "Total number of place cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
