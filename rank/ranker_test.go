package rank

import (
	"context"
	"testing"

	"github.com/poiesic/rankit/ai/mock"
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	t.Run("known selectors", func(t *testing.T) {
		for selector, want := range map[string]Strategy{
			"exact":     StrategyExact,
			"bm25":      StrategyBM25,
			"embedding": StrategyEmbedding,
			"BM25":      StrategyBM25,
			" exact ":   StrategyExact,
		} {
			got, err := ParseStrategy(selector)
			require.NoError(t, err, selector)
			assert.Equal(t, want, got, selector)
		}
	})

	t.Run("unknown selector is rejected", func(t *testing.T) {
		_, err := ParseStrategy("fuzzy")
		assert.ErrorIs(t, err, core.ErrInvalidStrategy)
		assert.Contains(t, err.Error(), "fuzzy")
	})

	t.Run("round trips through String", func(t *testing.T) {
		for _, strategy := range Strategies {
			parsed, err := ParseStrategy(strategy.String())
			require.NoError(t, err)
			assert.Equal(t, strategy, parsed)
		}
	})
}

func TestNewRanker(t *testing.T) {
	t.Run("requires a store", func(t *testing.T) {
		_, err := NewRanker(nil)
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("rejects bad tunables", func(t *testing.T) {
		store := newTestStore(t, "doc")
		_, err := NewRanker(store, WithK1(-0.1))
		assert.Error(t, err)
		_, err = NewRanker(store, WithB(1.1))
		assert.Error(t, err)
	})
}

func TestRankerRank(t *testing.T) {
	ctx := context.Background()

	scenarioStore := func(t *testing.T) *catalog.Store {
		return newTestStore(t,
			"cheap eats: the best affordable food stalls in san francisco",
			"san francisco food halls worth the visit",
			"cheap parking tips for downtown san jose",
			"rooftop cocktail bars in chicago",
		)
	}

	t.Run("exact match ranks by occurrence count", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t))
		require.NoError(t, err)

		results, err := ranker.Rank(ctx, "cheap food in San Francisco", StrategyExact, 0)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, core.ID(1), results[0].Document.Id)
		assert.Equal(t, core.ID(2), results[1].Document.Id)
		assert.Equal(t, core.ID(3), results[2].Document.Id)
		assert.Greater(t, results[0].Score, results[1].Score)
		assert.Greater(t, results[1].Score, results[2].Score)
	})

	t.Run("results are sorted descending for every strategy", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t), WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)

		for _, strategy := range Strategies {
			results, err := ranker.Rank(ctx, "cheap food in san francisco", strategy, 0)
			require.NoError(t, err, strategy.String())
			for i := 1; i < len(results); i++ {
				assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score, strategy.String())
			}
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t), WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)

		for _, strategy := range Strategies {
			first, err := ranker.Rank(ctx, "affordable food", strategy, 0)
			require.NoError(t, err)
			second, err := ranker.Rank(ctx, "affordable food", strategy, 0)
			require.NoError(t, err)
			assert.Equal(t, first, second, strategy.String())
		}
	})

	t.Run("ties keep catalogue insertion order", func(t *testing.T) {
		store := newTestStore(t,
			"city walking tour",
			"harbor boat tour",
			"vineyard wine tour",
		)
		ranker, err := NewRanker(store)
		require.NoError(t, err)

		results, err := ranker.Rank(ctx, "tour", StrategyExact, 0)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, core.ID(1), results[0].Document.Id)
		assert.Equal(t, core.ID(2), results[1].Document.Id)
		assert.Equal(t, core.ID(3), results[2].Document.Id)
	})

	t.Run("limit truncates after sorting", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t))
		require.NoError(t, err)

		results, err := ranker.Rank(ctx, "san francisco food", StrategyBM25, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)

		all, err := ranker.Rank(ctx, "san francisco food", StrategyBM25, 0)
		require.NoError(t, err)
		assert.Len(t, all, 4)
		assert.Equal(t, all[:2], results)
	})

	t.Run("zero-score documents are retained by default", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t))
		require.NoError(t, err)

		results, err := ranker.Rank(ctx, "cocktail", StrategyExact, 10)
		require.NoError(t, err)
		assert.Len(t, results, 4)
		assert.Equal(t, core.ID(4), results[0].Document.Id)
		assert.Zero(t, results[1].Score)
	})

	t.Run("zero-score filter drops non-matches", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t), WithZeroScoreFilter())
		require.NoError(t, err)

		for _, strategy := range []Strategy{StrategyExact, StrategyBM25} {
			results, err := ranker.Rank(ctx, "cocktail", strategy, 10)
			require.NoError(t, err, strategy.String())
			require.Len(t, results, 1, strategy.String())
			assert.Equal(t, core.ID(4), results[0].Document.Id)
		}
	})

	t.Run("empty query fails for every strategy", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t), WithEmbedder(mock.NewMockEmbedder()))
		require.NoError(t, err)

		for _, strategy := range Strategies {
			for _, query := range []string{"", "   ", "..!?"} {
				_, err := ranker.Rank(ctx, query, strategy, 0)
				assert.ErrorIs(t, err, core.ErrEmptyQuery, strategy.String())
			}
		}
	})

	t.Run("invalid strategy fails before scoring", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t))
		require.NoError(t, err)

		_, err = ranker.Rank(ctx, "anything", Strategy(9), 0)
		assert.ErrorIs(t, err, core.ErrInvalidStrategy)
		_, err = ranker.Rank(ctx, "anything", Strategy(0), 0)
		assert.ErrorIs(t, err, core.ErrInvalidStrategy)
	})

	t.Run("empty store returns empty results without error", func(t *testing.T) {
		ranker, err := NewRanker(newTestStore(t))
		require.NoError(t, err)

		// Holds even for embedding with no embedder configured.
		for _, strategy := range Strategies {
			results, err := ranker.Rank(ctx, "anything", strategy, 5)
			require.NoError(t, err, strategy.String())
			assert.Empty(t, results, strategy.String())
			assert.NotNil(t, results, strategy.String())
		}
	})

	t.Run("embedding without embedder fails", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t))
		require.NoError(t, err)

		_, err = ranker.Rank(ctx, "anything", StrategyEmbedding, 0)
		assert.ErrorIs(t, err, core.ErrEncoderUnavailable)
	})

	t.Run("monitor observes every stage", func(t *testing.T) {
		ranker, err := NewRanker(scenarioStore(t))
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		results, err := ranker.RankWithMonitor(ctx, "san francisco", StrategyBM25, 2, monitor)
		require.NoError(t, err)

		assert.Equal(t, "san francisco", monitor.query)
		assert.Equal(t, StrategyBM25, monitor.strategy)
		assert.Equal(t, []string{"san", "francisco"}, monitor.tokens)
		assert.Equal(t, 4, monitor.scored)
		assert.Equal(t, results, monitor.finished)
	})
}

type recordingMonitor struct {
	query    string
	strategy Strategy
	tokens   []string
	scored   int
	finished []core.ScoreEntry
}

func (m *recordingMonitor) Start(query string, strategy Strategy) {
	m.query = query
	m.strategy = strategy
}

func (m *recordingMonitor) AfterTokenize(tokens []string) { m.tokens = tokens }

func (m *recordingMonitor) AfterScore(entries []core.ScoreEntry) { m.scored = len(entries) }

func (m *recordingMonitor) Finish(results []core.ScoreEntry) { m.finished = results }
