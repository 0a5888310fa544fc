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


package rankit

import (
	"context"
	"log/slog"

	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/ai/openai"
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/rank"
	"github.com/poiesic/rankit/storage"
	"github.com/poiesic/rankit/storage/badger"
)

// Engine ties a loaded catalogue, the three ranking strategies, an
// optional embedding encoder, and an optional persistent vector cache
// into one handle.
type Engine struct {
	store    *catalog.Store
	ranker   *rank.Ranker
	embedder ai.Embedder
	cache    storage.VectorCache
	backend  *badger.Backend
	options  *engineOptions
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig   *ai.Config
	embedder   ai.Embedder
	cachePath  string
	k1         float64
	b          float64
	filterZero bool
	poolSize   int
	precompute bool
	logger     *slog.Logger
}

// WithAIConfig configures an OpenAI-compatible embedding encoder.
// Without this (or WithEmbedder) the embedding strategy is unavailable
// and fails with core.ErrEncoderUnavailable.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder injects an encoder directly, bypassing config-based
// construction. Takes precedence over WithAIConfig.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithVectorCachePath enables the persistent BadgerDB vector cache at
// the given directory. The cache is purged automatically when the
// catalogue fingerprint or embedding model changes.
func WithVectorCachePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.cachePath = path
	}
}

// WithBM25Parameters overrides the BM25 tunables k1 and b.
func WithBM25Parameters(k1, b float64) EngineOption {
	return func(o *engineOptions) {
		o.k1 = k1
		o.b = b
	}
}

// WithZeroScoreFilter drops zero-score documents from lexical results.
func WithZeroScoreFilter() EngineOption {
	return func(o *engineOptions) {
		o.filterZero = true
	}
}

// WithPoolSize sets the worker pool size for vector precompute.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithPrecompute bulk-embeds the catalogue at open time so the first
// embedding query already hits warm vectors.
func WithPrecompute() EngineOption {
	return func(o *engineOptions) {
		o.precompute = true
	}
}

// WithEngineLogger sets a custom logger. Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// Open loads a catalogue dataset from a CSV file and builds an engine
// over it.
func Open(dataPath string, opts ...EngineOption) (*Engine, error) {
	store, err := catalog.LoadFile(dataPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(store, opts...)
}

// NewEngine builds an engine over an already-loaded store.
func NewEngine(store *catalog.Store, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		k1: rank.DefaultK1,
		b:  rank.DefaultB,
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := &Engine{
		store:   store,
		options: options,
		logger:  logger,
	}

	// Resolve the encoder capability.
	switch {
	case options.embedder != nil:
		engine.embedder = options.embedder
	case options.aiConfig != nil:
		embedder, err := openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
		engine.embedder = embedder
	}

	if err := engine.openCache(); err != nil {
		return nil, err
	}

	ranker, err := engine.newRanker(store)
	if err != nil {
		engine.Close()
		return nil, err
	}
	engine.ranker = ranker

	if options.precompute && engine.embedder != nil {
		if err := ranker.PrecomputeVectors(context.Background()); err != nil {
			logger.Warn("vector precompute failed, embeddings will be computed per query", "err", err)
		}
	}

	return engine, nil
}

func (e *Engine) openCache() error {
	if e.options.cachePath == "" {
		return nil
	}

	backend, err := badger.OpenBackend(e.options.cachePath, false)
	if err != nil {
		return err
	}

	cache, err := badger.NewVectorCache(backend)
	if err != nil {
		backend.Close()
		return err
	}

	e.backend = backend
	e.cache = cache
	return e.bindCache()
}

// bindCache purges the vector cache unless it is already bound to this
// exact catalogue.
func (e *Engine) bindCache() error {
	ctx := context.Background()
	fp := e.store.Fingerprint()

	bound, ok, err := e.cache.Fingerprint(ctx)
	if err != nil {
		return err
	}
	if ok && bound == fp {
		return nil
	}

	if ok {
		e.logger.Info("catalogue changed, purging vector cache",
			"previous", uint64(bound), "current", uint64(fp))
	}
	return e.cache.Bind(ctx, fp)
}

func (e *Engine) newRanker(store *catalog.Store) (*rank.Ranker, error) {
	rankOpts := []rank.Option{
		rank.WithLogger(e.logger),
		rank.WithK1(e.options.k1),
		rank.WithB(e.options.b),
	}
	if e.options.filterZero {
		rankOpts = append(rankOpts, rank.WithZeroScoreFilter())
	}
	if e.options.poolSize > 0 {
		rankOpts = append(rankOpts, rank.WithPoolSize(e.options.poolSize))
	}
	if e.embedder != nil {
		rankOpts = append(rankOpts, rank.WithEmbedder(e.embedder))
	}
	if e.cache != nil {
		rankOpts = append(rankOpts, rank.WithEmbeddingCache(e.cache, e.embeddingModel()))
	}
	return rank.NewRanker(store, rankOpts...)
}

func (e *Engine) embeddingModel() string {
	if e.options.aiConfig != nil {
		return e.options.aiConfig.EmbeddingModel
	}
	return "injected"
}

// Store returns the loaded catalogue.
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// Ranker returns the underlying ranker.
func (e *Engine) Ranker() *rank.Ranker {
	return e.ranker
}

// Rank scores the catalogue against the query with the chosen strategy,
// returning up to topN entries (0 = all) in descending score order.
func (e *Engine) Rank(ctx context.Context, query string, strategy rank.Strategy, topN int) ([]core.ScoreEntry, error) {
	return e.ranker.Rank(ctx, query, strategy, topN)
}

// Compare runs all three strategies on one query. The lexical rankings
// always come back; an encoder failure is recorded in EmbeddingErr
// rather than discarding the lexical results.
func (e *Engine) Compare(ctx context.Context, query string, topN int) (*core.Comparison, error) {
	exact, err := e.ranker.Rank(ctx, query, rank.StrategyExact, topN)
	if err != nil {
		return nil, err
	}
	bm25, err := e.ranker.Rank(ctx, query, rank.StrategyBM25, topN)
	if err != nil {
		return nil, err
	}

	comparison := &core.Comparison{
		Query: query,
		Exact: exact,
		BM25:  bm25,
	}

	embedding, err := e.ranker.Rank(ctx, query, rank.StrategyEmbedding, topN)
	if err != nil {
		comparison.EmbeddingErr = err
	} else {
		comparison.Embedding = embedding
	}

	return comparison, nil
}

// Reload replaces the catalogue with a freshly loaded dataset. Term
// statistics are rebuilt from scratch and the vector cache is re-bound,
// purging it if the content changed.
func (e *Engine) Reload(dataPath string) error {
	store, err := catalog.LoadFile(dataPath)
	if err != nil {
		return err
	}

	ranker, err := e.newRanker(store)
	if err != nil {
		return err
	}

	e.store = store
	e.ranker = ranker

	if e.cache != nil {
		return e.bindCache()
	}
	return nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing vector cache", "err", err)
		}
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing cache backend", "err", err)
			return err
		}
	}
	return nil
}
