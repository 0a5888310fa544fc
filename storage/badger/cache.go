// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/storage"
)

// VectorCache is a BadgerDB-backed implementation of storage.VectorCache.
type VectorCache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a vector cache over an open backend.
// The backend remains owned by the caller and is not closed by the cache.
func NewVectorCache(backend *Backend) (*VectorCache, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &VectorCache{
		backend: backend,
		logger:  slog.Default().With("component", "vector-cache"),
	}, nil
}

// Get retrieves the cached vector for a document.
func (c *VectorCache) Get(_ context.Context, model string, id core.ID) ([]float32, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var vector []float32
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(model, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		vector, err = storage.UnmarshalVector(data)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// Put stores the vector for a document, replacing any existing entry.
func (c *VectorCache) Put(_ context.Context, model string, id core.ID, vector []float32) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(model, id), storage.MarshalVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Fingerprint returns the catalogue fingerprint this cache is bound to.
func (c *VectorCache) Fingerprint(_ context.Context) (core.ID, bool, error) {
	if c.backend.IsClosed() {
		return 0, false, storage.ErrStorageClosed
	}

	var (
		fp    core.ID
		bound bool
	)
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(fingerprintKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		fp, err = storage.UnmarshalID(data)
		if err != nil {
			return err
		}
		bound = true
		return nil
	}, false)
	if err != nil {
		return 0, false, err
	}
	return fp, bound, nil
}

// Bind purges all cached vectors and binds the cache to a new catalogue
// fingerprint. Invalidation is always wholesale, never incremental.
func (c *VectorCache) Bind(_ context.Context, fp core.ID) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	if err := c.backend.DropAll(); err != nil {
		return err
	}
	c.logger.Debug("vector cache purged", "fingerprint", uint64(fp))

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(fingerprintKey(), storage.MarshalID(fp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close releases cache resources. The underlying backend is owned by
// the caller and stays open.
func (c *VectorCache) Close() error {
	return nil
}
