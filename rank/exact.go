package rank

import (
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
)

// ExactScorer counts raw query-token occurrences per document.
// A query token repeated in the document counts once per occurrence,
// and a token repeated in the query counts once per query occurrence.
type ExactScorer struct {
	store *catalog.Store
	stats *CorpusStats
}

// NewExactScorer creates an exact-match scorer over the store's
// term-statistics snapshot.
func NewExactScorer(store *catalog.Store, stats *CorpusStats) *ExactScorer {
	return &ExactScorer{store: store, stats: stats}
}

// Score computes one entry per document, in insertion order.
// Zero-score documents are included; filtering is the orchestrator's job.
func (s *ExactScorer) Score(queryTokens []string) []core.ScoreEntry {
	docs := s.store.Documents()
	entries := make([]core.ScoreEntry, len(docs))

	for i, doc := range docs {
		var score int
		for _, token := range queryTokens {
			score += s.stats.TermFrequency(i, token)
		}
		entries[i] = core.ScoreEntry{Document: doc, Score: float64(score)}
	}

	return entries
}
