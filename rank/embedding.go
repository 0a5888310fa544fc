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


package rank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/storage"
)

// EmbeddingScorer ranks documents by cosine similarity between the query
// vector and each document vector, both obtained from an injected encoder.
//
// Document vectors are memoized for the lifetime of the scorer (which is
// the lifetime of the store snapshot) and optionally read through a
// persistent cache keyed by embedding model and document ID.
type EmbeddingScorer struct {
	store    *catalog.Store
	embedder ai.Embedder
	cache    storage.VectorCache
	model    string
	logger   *slog.Logger

	mu  sync.RWMutex
	mem map[core.ID][]float32
}

// EmbeddingOption configures an EmbeddingScorer.
type EmbeddingOption func(*EmbeddingScorer)

// WithVectorCache sets a persistent vector cache and the embedding model
// identifier used for cache keys.
func WithVectorCache(cache storage.VectorCache, model string) EmbeddingOption {
	return func(s *EmbeddingScorer) {
		s.cache = cache
		s.model = model
	}
}

// WithEmbeddingLogger sets a custom logger.
// Default is slog.Default().
func WithEmbeddingLogger(logger *slog.Logger) EmbeddingOption {
	return func(s *EmbeddingScorer) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewEmbeddingScorer creates an embedding scorer. The embedder may be nil,
// in which case every scoring call fails with core.ErrEncoderUnavailable.
func NewEmbeddingScorer(store *catalog.Store, embedder ai.Embedder, opts ...EmbeddingOption) *EmbeddingScorer {
	s := &EmbeddingScorer{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
		mem:      make(map[core.ID][]float32, store.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score ranks every document against the query. The query goes to the
// encoder as raw text, not tokens: embedding models do their own
// normalization. Encoder failure surfaces as core.ErrEncoderUnavailable.
func (s *EmbeddingScorer) Score(ctx context.Context, query string) ([]core.ScoreEntry, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("%w: no embedder configured", core.ErrEncoderUnavailable)
	}

	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, encoderUnavailable(err)
	}

	vectors, err := s.documentVectors(ctx)
	if err != nil {
		return nil, err
	}

	docs := s.store.Documents()
	entries := make([]core.ScoreEntry, len(docs))
	for i, doc := range docs {
		entries[i] = core.ScoreEntry{
			Document: doc,
			Score:    CosineSimilarity(queryVec, vectors[i]),
		}
	}
	return entries, nil
}

// Precompute embeds every document that has no memoized or cached vector
// yet, running batches concurrently on a worker pool of the given size.
// Ranking afterwards pays no per-document encoder round trips.
func (s *EmbeddingScorer) Precompute(ctx context.Context, poolSize int) error {
	if s.embedder == nil {
		return fmt.Errorf("%w: no embedder configured", core.ErrEncoderUnavailable)
	}
	return s.precompute(ctx, poolSize)
}

// documentVectors returns one vector per document, in insertion order.
// Lookup order is memo, then persistent cache, then a single batched
// encoder call for whatever is still missing.
func (s *EmbeddingScorer) documentVectors(ctx context.Context) ([][]float32, error) {
	docs := s.store.Documents()
	vectors := make([][]float32, len(docs))

	missing := make([]int, 0)
	for i, doc := range docs {
		if vec, ok := s.lookup(ctx, doc.Id); ok {
			vectors[i] = vec
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	embedded, err := s.embedBatch(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, i := range missing {
		vectors[i] = embedded[j]
	}
	return vectors, nil
}

// lookup checks the memo, falling back to the persistent cache. Cache
// hits are promoted into the memo.
func (s *EmbeddingScorer) lookup(ctx context.Context, id core.ID) ([]float32, bool) {
	s.mu.RLock()
	vec, ok := s.mem[id]
	s.mu.RUnlock()
	if ok {
		return vec, true
	}

	if s.cache == nil {
		return nil, false
	}

	vec, err := s.cache.Get(ctx, s.model, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("vector cache read failed", "id", uint64(id), "err", err)
		}
		return nil, false
	}

	s.mu.Lock()
	s.mem[id] = vec
	s.mu.Unlock()
	return vec, true
}

// embedBatch embeds the documents at the given insertion indexes in one
// encoder call and stores the results in the memo and cache.
func (s *EmbeddingScorer) embedBatch(ctx context.Context, indexes []int) ([][]float32, error) {
	docs := s.store.Documents()
	texts := make([]string, len(indexes))
	for j, i := range indexes {
		texts[j] = docs[i].Text
	}

	embedded, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		s.logger.Error("error generating document embeddings", "count", len(texts), "err", err)
		return nil, encoderUnavailable(err)
	}
	if len(embedded) != len(texts) {
		return nil, fmt.Errorf("%w: encoder returned %d vectors for %d texts",
			core.ErrEncoderUnavailable, len(embedded), len(texts))
	}

	s.mu.Lock()
	for j, i := range indexes {
		s.mem[docs[i].Id] = embedded[j]
	}
	s.mu.Unlock()

	if s.cache != nil {
		for j, i := range indexes {
			if err := s.cache.Put(ctx, s.model, docs[i].Id, embedded[j]); err != nil {
				s.logger.Warn("vector cache write failed", "id", uint64(docs[i].Id), "err", err)
			}
		}
	}

	return embedded, nil
}

func encoderUnavailable(err error) error {
	return fmt.Errorf("%w: %v", core.ErrEncoderUnavailable, err)
}

// CosineSimilarity computes the normalized dot product of two vectors.
// Defined as zero when either vector has zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	var normA, normB float64
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
