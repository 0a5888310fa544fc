package rank

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/rankit/ai/mock"
	"github.com/poiesic/rankit/core"
	badgerstore "github.com/poiesic/rankit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score one", func(t *testing.T) {
		v := []float32{0.3, 0.5, 0.2}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("opposite vectors score minus one", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 2}, []float32{-1, -2}), 1e-9)
	})

	t.Run("zero magnitude defined as zero", func(t *testing.T) {
		assert.Zero(t, CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
		assert.Zero(t, CosineSimilarity([]float32{1, 2, 3}, []float32{0, 0, 0}))
		assert.Zero(t, CosineSimilarity(nil, []float32{1}))
	})

	t.Run("scale invariant", func(t *testing.T) {
		a := []float32{1, 2, 3}
		scaled := []float32{10, 20, 30}
		assert.InDelta(t, 1.0, CosineSimilarity(a, scaled), 1e-6)
	})

	t.Run("bounded", func(t *testing.T) {
		a := []float32{0.9, -0.1, 0.4}
		b := []float32{-0.2, 0.8, 0.3}
		sim := CosineSimilarity(a, b)
		assert.GreaterOrEqual(t, sim, -1.0)
		assert.LessOrEqual(t, sim, 1.0)
	})
}

func TestEmbeddingScorer(t *testing.T) {
	ctx := context.Background()

	t.Run("no embedder fails with encoder unavailable", func(t *testing.T) {
		scorer := NewEmbeddingScorer(newTestStore(t, "doc"), nil)
		_, err := scorer.Score(ctx, "query")
		assert.ErrorIs(t, err, core.ErrEncoderUnavailable)
	})

	t.Run("encoder failure wraps encoder unavailable", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("connection refused")
		}
		scorer := NewEmbeddingScorer(newTestStore(t, "doc"), embedder)

		_, err := scorer.Score(ctx, "query")
		assert.ErrorIs(t, err, core.ErrEncoderUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("deterministic scores", func(t *testing.T) {
		store := newTestStore(t, "harbor cruise", "jazz night", "street food tour")
		scorer := NewEmbeddingScorer(store, mock.NewMockEmbedder())

		first, err := scorer.Score(ctx, "evening music")
		require.NoError(t, err)
		second, err := scorer.Score(ctx, "evening music")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("identical text ranks highest", func(t *testing.T) {
		store := newTestStore(t, "harbor cruise", "jazz night")
		scorer := NewEmbeddingScorer(store, mock.NewMockEmbedder())

		entries, err := scorer.Score(ctx, "harbor cruise")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.InDelta(t, 1.0, entries[0].Score, 1e-6)
		assert.Greater(t, entries[0].Score, entries[1].Score)
	})

	t.Run("memoizes document vectors", func(t *testing.T) {
		store := newTestStore(t, "alpha", "beta", "gamma")
		embedder := mock.NewMockEmbedder()
		scorer := NewEmbeddingScorer(store, embedder)

		_, err := scorer.Score(ctx, "query")
		require.NoError(t, err)
		// One EmbedText for the query plus one EmbedTexts batch.
		assert.Equal(t, 2, embedder.CallCount())

		_, err = scorer.Score(ctx, "another query")
		require.NoError(t, err)
		// Only the query call this time.
		assert.Equal(t, 3, embedder.CallCount())
	})

	t.Run("reads document vectors from the persistent cache", func(t *testing.T) {
		cache, backend, err := badgerstore.NewMemoryCache()
		require.NoError(t, err)
		defer backend.Close()

		store := newTestStore(t, "alpha", "beta")

		warm := NewEmbeddingScorer(store, mock.NewMockEmbedder(),
			WithVectorCache(cache, "mock-model"))
		_, err = warm.Score(ctx, "query")
		require.NoError(t, err)

		// A fresh scorer over the same cache never batches documents.
		embedder := mock.NewMockEmbedder()
		cold := NewEmbeddingScorer(store, embedder,
			WithVectorCache(cache, "mock-model"))
		entries, err := cold.Score(ctx, "query")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1, embedder.CallCount())
	})

	t.Run("precompute warms the memo", func(t *testing.T) {
		store := newTestStore(t, "alpha", "beta", "gamma", "delta", "epsilon")
		embedder := mock.NewMockEmbedder()
		scorer := NewEmbeddingScorer(store, embedder)

		require.NoError(t, scorer.Precompute(ctx, 2))
		warmed := embedder.CallCount()
		assert.Greater(t, warmed, 0)

		_, err := scorer.Score(ctx, "query")
		require.NoError(t, err)
		// Only the query call on top of precompute.
		assert.Equal(t, warmed+1, embedder.CallCount())
	})

	t.Run("precompute without embedder fails", func(t *testing.T) {
		scorer := NewEmbeddingScorer(newTestStore(t, "doc"), nil)
		assert.ErrorIs(t, scorer.Precompute(ctx, 1), core.ErrEncoderUnavailable)
	})
}
