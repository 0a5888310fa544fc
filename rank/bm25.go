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
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
)

// Default BM25 tunables (Okapi variant, standard values).
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// BM25Scorer applies the Okapi BM25 term-saturation formula per document:
//
//	score(D,Q) = Σ_t IDF(t) · f(t,D)·(k1+1) / (f(t,D) + k1·(1 − b + b·|D|/avgdl))
//
// Corpus statistics come from the store's immutable snapshot; k1 controls
// term-frequency saturation and b controls length normalization.
type BM25Scorer struct {
	store *catalog.Store
	stats *CorpusStats
	k1    float64
	b     float64
}

// NewBM25Scorer creates a BM25 scorer with the given tunables.
func NewBM25Scorer(store *catalog.Store, stats *CorpusStats, k1, b float64) *BM25Scorer {
	return &BM25Scorer{store: store, stats: stats, k1: k1, b: b}
}

// Score computes one entry per document, in insertion order.
// Documents sharing no token with the query score zero and are included;
// filtering is the orchestrator's job.
func (s *BM25Scorer) Score(queryTokens []string) []core.ScoreEntry {
	docs := s.store.Documents()
	entries := make([]core.ScoreEntry, len(docs))
	avgdl := s.stats.AverageDocumentLength()

	for i, doc := range docs {
		var score float64
		if avgdl > 0 {
			norm := s.k1 * (1 - s.b + s.b*float64(s.stats.DocumentLength(i))/avgdl)
			for _, token := range queryTokens {
				tf := float64(s.stats.TermFrequency(i, token))
				if tf == 0 {
					continue
				}
				score += s.stats.IDF(token) * tf * (s.k1 + 1) / (tf + norm)
			}
		}
		entries[i] = core.ScoreEntry{Document: doc, Score: score}
	}

	return entries
}
