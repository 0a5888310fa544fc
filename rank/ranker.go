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
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/storage"
)

// Strategy selects a ranking algorithm. It is a closed enumeration;
// anything outside the three known values fails with
// core.ErrInvalidStrategy at dispatch time.
type Strategy int

const (
	// StrategyExact counts raw query-token occurrences per document.
	StrategyExact Strategy = iota + 1
	// StrategyBM25 applies Okapi BM25 term saturation with corpus IDF.
	StrategyBM25
	// StrategyEmbedding ranks by embedding cosine similarity.
	StrategyEmbedding
)

// Strategies lists every valid strategy, in selector order.
var Strategies = []Strategy{StrategyExact, StrategyBM25, StrategyEmbedding}

func (s Strategy) valid() bool {
	return s >= StrategyExact && s <= StrategyEmbedding
}

// String returns the selector form used on the CLI surface.
func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyBM25:
		return "bm25"
	case StrategyEmbedding:
		return "embedding"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps a selector string to its Strategy.
// Unrecognized selectors fail with core.ErrInvalidStrategy.
func ParseStrategy(selector string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "exact":
		return StrategyExact, nil
	case "bm25":
		return StrategyBM25, nil
	case "embedding":
		return StrategyEmbedding, nil
	default:
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidStrategy, selector)
	}
}

// Ranker dispatches queries to one of the three scorers and returns
// ordered score entries.
//
// Query policy: a query that tokenizes to nothing fails with
// core.ErrEmptyQuery for every strategy, including embedding — one
// policy for all three, so callers never have to guess. An empty store
// returns an empty result set without error for any valid strategy.
type Ranker struct {
	store     *catalog.Store
	stats     *CorpusStats
	exact     *ExactScorer
	bm25      *BM25Scorer
	embedding *EmbeddingScorer

	k1         float64
	b          float64
	embedder   ai.Embedder
	cache      storage.VectorCache
	model      string
	poolSize   int
	filterZero bool
	logger     *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithK1 sets the BM25 term-frequency saturation parameter.
// Default is DefaultK1.
func WithK1(k1 float64) Option {
	return func(r *Ranker) error {
		if k1 < 0 {
			return fmt.Errorf("k1 must be non-negative, got %v", k1)
		}
		r.k1 = k1
		return nil
	}
}

// WithB sets the BM25 length-normalization parameter, in [0, 1].
// Default is DefaultB.
func WithB(b float64) Option {
	return func(r *Ranker) error {
		if b < 0 || b > 1 {
			return fmt.Errorf("b must be in [0, 1], got %v", b)
		}
		r.b = b
		return nil
	}
}

// WithZeroScoreFilter drops zero-score documents from exact-match and
// BM25 results. Default is to retain them: a caller asking for top-5
// over a three-document store still sees all three.
func WithZeroScoreFilter() Option {
	return func(r *Ranker) error {
		r.filterZero = true
		return nil
	}
}

// WithEmbedder sets the encoder capability for the embedding strategy.
// Without one, embedding queries fail with core.ErrEncoderUnavailable.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(r *Ranker) error {
		r.embedder = embedder
		return nil
	}
}

// WithEmbeddingCache sets a persistent vector cache and the model
// identifier used for its keys.
func WithEmbeddingCache(cache storage.VectorCache, model string) Option {
	return func(r *Ranker) error {
		r.cache = cache
		r.model = model
		return nil
	}
}

// WithPoolSize sets the worker pool size for vector precompute.
// Default is DefaultPoolSize().
func WithPoolSize(size int) Option {
	return func(r *Ranker) error {
		if size < 1 {
			size = 1
		}
		r.poolSize = size
		return nil
	}
}

// NewRanker creates a ranker over a loaded store, computing the term
// statistics snapshot all lexical scoring shares.
func NewRanker(store *catalog.Store, opts ...Option) (*Ranker, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	r := &Ranker{
		store:  store,
		k1:     DefaultK1,
		b:      DefaultB,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.stats = NewCorpusStats(store)
	r.exact = NewExactScorer(store, r.stats)
	r.bm25 = NewBM25Scorer(store, r.stats, r.k1, r.b)

	embOpts := []EmbeddingOption{WithEmbeddingLogger(r.logger)}
	if r.cache != nil {
		embOpts = append(embOpts, WithVectorCache(r.cache, r.model))
	}
	r.embedding = NewEmbeddingScorer(store, r.embedder, embOpts...)

	return r, nil
}

// Stats returns the ranker's corpus statistics snapshot.
func (r *Ranker) Stats() *CorpusStats {
	return r.stats
}

// Rank scores the store against the query with the chosen strategy and
// returns up to limit entries in descending score order (0 = all).
// Ties keep catalogue insertion order.
func (r *Ranker) Rank(ctx context.Context, query string, strategy Strategy, limit int) ([]core.ScoreEntry, error) {
	return r.RankWithMonitor(ctx, query, strategy, limit, nil)
}

// RankWithMonitor ranks with callbacks at each stage of the process.
func (r *Ranker) RankWithMonitor(ctx context.Context, query string, strategy Strategy, limit int, monitor RankMonitor) ([]core.ScoreEntry, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if !strategy.valid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidStrategy, strategy)
	}

	monitor.Start(query, strategy)

	if r.store.Len() == 0 {
		results := []core.ScoreEntry{}
		monitor.Finish(results)
		return results, nil
	}

	tokens := Tokenize(query)
	monitor.AfterTokenize(tokens)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrEmptyQuery, query)
	}

	var (
		entries []core.ScoreEntry
		err     error
	)
	switch strategy {
	case StrategyExact:
		entries = r.exact.Score(tokens)
	case StrategyBM25:
		entries = r.bm25.Score(tokens)
	case StrategyEmbedding:
		entries, err = r.embedding.Score(ctx, query)
	}
	if err != nil {
		r.logger.Error("ranking failed", "strategy", strategy.String(), "err", err)
		return nil, err
	}
	monitor.AfterScore(entries)

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if r.filterZero && strategy != StrategyEmbedding {
		entries = dropZeroScores(entries)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	monitor.Finish(entries)
	return entries, nil
}

// PrecomputeVectors bulk-embeds the catalogue so embedding queries hit
// warm vectors. Safe to call more than once; already-known documents
// are skipped.
func (r *Ranker) PrecomputeVectors(ctx context.Context) error {
	return r.embedding.Precompute(ctx, r.poolSize)
}

func dropZeroScores(entries []core.ScoreEntry) []core.ScoreEntry {
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.Score > 0 {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
