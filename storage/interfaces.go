package storage

import (
	"context"

	"github.com/poiesic/rankit/core"
)

// VectorCache stores precomputed document embedding vectors, keyed by
// embedding model and document ID. Implementations must be thread-safe.
//
// A cache is only ever valid for one loaded catalogue: the stored
// fingerprint records which. When a dataset is reloaded the whole cache
// is purged, never updated incrementally.
type VectorCache interface {
	// Get retrieves the cached vector for a document.
	// Returns ErrNotFound if no vector is cached for this model and ID.
	Get(ctx context.Context, model string, id core.ID) ([]float32, error)

	// Put stores the vector for a document, replacing any existing entry.
	Put(ctx context.Context, model string, id core.ID, vector []float32) error

	// Fingerprint returns the catalogue fingerprint this cache was filled
	// for. ok is false when the cache has never been bound to a catalogue.
	Fingerprint(ctx context.Context) (fp core.ID, ok bool, err error)

	// Bind purges all cached vectors and records the given catalogue
	// fingerprint as the cache's new owner.
	Bind(ctx context.Context, fp core.ID) error

	// Close closes the cache and releases resources.
	Close() error
}
