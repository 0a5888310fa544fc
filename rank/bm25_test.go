package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repeatedDoc builds a document with count occurrences of term, padded
// with a unique filler token to a fixed length of ten tokens.
func repeatedDoc(term, filler string, count int) string {
	parts := make([]string, 0, 10)
	for i := 0; i < count; i++ {
		parts = append(parts, term)
	}
	for len(parts) < 10 {
		parts = append(parts, filler)
	}
	return strings.Join(parts, " ")
}

func TestBM25Scorer(t *testing.T) {
	t.Run("higher term frequency scores higher with diminishing gains", func(t *testing.T) {
		// Equal-length documents so only term frequency varies.
		store := newTestStore(t,
			repeatedDoc("apple", "fillera", 1),
			repeatedDoc("apple", "fillerb", 2),
			repeatedDoc("apple", "fillerc", 3),
			repeatedDoc("apple", "fillerd", 4),
		)
		stats := NewCorpusStats(store)
		scorer := NewBM25Scorer(store, stats, DefaultK1, DefaultB)

		entries := scorer.Score([]string{"apple"})
		require.Len(t, entries, 4)

		for i := 1; i < 4; i++ {
			assert.Greater(t, entries[i].Score, entries[i-1].Score,
				"score should grow with term frequency")
		}

		gain1 := entries[1].Score - entries[0].Score
		gain2 := entries[2].Score - entries[1].Score
		gain3 := entries[3].Score - entries[2].Score
		assert.Greater(t, gain1, gain2, "marginal gains should shrink")
		assert.Greater(t, gain2, gain3, "marginal gains should shrink")
	})

	t.Run("rare terms outweigh common terms", func(t *testing.T) {
		store := newTestStore(t,
			"tour of the gardens",
			"tour of the castle",
			"tour of the docks",
			"observatory stargazing night",
		)
		stats := NewCorpusStats(store)
		scorer := NewBM25Scorer(store, stats, DefaultK1, DefaultB)

		entries := scorer.Score([]string{"observatory", "tour"})
		require.Len(t, entries, 4)
		assert.Greater(t, entries[3].Score, entries[0].Score,
			"the document with the rare term should outrank tf-only matches")
	})

	t.Run("absent tokens contribute nothing", func(t *testing.T) {
		store := newTestStore(t, "kayak rental on the lake")
		stats := NewCorpusStats(store)
		scorer := NewBM25Scorer(store, stats, DefaultK1, DefaultB)

		entries := scorer.Score([]string{"submarine"})
		require.Len(t, entries, 1)
		assert.Zero(t, entries[0].Score)
	})

	t.Run("length normalization penalizes long documents", func(t *testing.T) {
		store := newTestStore(t,
			"harbor cruise",
			"harbor cruise with dinner drinks music and a very long onboard program",
		)
		stats := NewCorpusStats(store)
		scorer := NewBM25Scorer(store, stats, DefaultK1, DefaultB)

		entries := scorer.Score([]string{"harbor"})
		require.Len(t, entries, 2)
		assert.Greater(t, entries[0].Score, entries[1].Score)
	})

	t.Run("b zero disables length normalization", func(t *testing.T) {
		store := newTestStore(t,
			"harbor cruise",
			"harbor cruise with dinner drinks music and a very long onboard program",
		)
		stats := NewCorpusStats(store)
		scorer := NewBM25Scorer(store, stats, DefaultK1, 0)

		entries := scorer.Score([]string{"harbor"})
		require.Len(t, entries, 2)
		assert.InDelta(t, entries[0].Score, entries[1].Score, 1e-12)
	})

	t.Run("scores are non-negative", func(t *testing.T) {
		// "the" appears in most documents; the plain-IDF variant would go
		// negative here, the +1 smoothing keeps it above zero.
		store := newTestStore(t,
			"the old town square",
			"the river walk",
			"the botanical garden",
			"mountain trail",
		)
		stats := NewCorpusStats(store)
		scorer := NewBM25Scorer(store, stats, DefaultK1, DefaultB)

		for _, entry := range scorer.Score([]string{"the"}) {
			assert.GreaterOrEqual(t, entry.Score, 0.0)
		}
	})
}
