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
	"math"

	"github.com/poiesic/rankit/catalog"
)

// CorpusStats is an immutable snapshot of term statistics over one
// loaded store: per-document term frequencies and token lengths, the
// average document length, and per-term document frequencies. It is
// computed once per store and never updated; reloading a dataset means
// building a new snapshot. Safe for concurrent readers.
type CorpusStats struct {
	termFreqs  []map[string]int // termFreqs[i][t] = f(t, D_i)
	docLengths []int
	docFreq    map[string]int // number of documents containing each term
	avgDocLen  float64
	n          int
}

// NewCorpusStats tokenizes every document in the store and builds the
// term-statistics snapshot both lexical scorers share.
func NewCorpusStats(store *catalog.Store) *CorpusStats {
	docs := store.Documents()

	stats := &CorpusStats{
		termFreqs:  make([]map[string]int, len(docs)),
		docLengths: make([]int, len(docs)),
		docFreq:    make(map[string]int),
		n:          len(docs),
	}

	var totalLength int
	for i, doc := range docs {
		tokens := Tokenize(doc.Text)
		stats.docLengths[i] = len(tokens)
		totalLength += len(tokens)

		freqs := make(map[string]int, len(tokens))
		for _, token := range tokens {
			if freqs[token] == 0 {
				stats.docFreq[token]++
			}
			freqs[token]++
		}
		stats.termFreqs[i] = freqs
	}

	if stats.n > 0 {
		stats.avgDocLen = float64(totalLength) / float64(stats.n)
	}

	return stats
}

// N returns the corpus size.
func (s *CorpusStats) N() int {
	return s.n
}

// AverageDocumentLength returns the mean token count across the corpus.
func (s *CorpusStats) AverageDocumentLength() float64 {
	return s.avgDocLen
}

// DocumentFrequency returns the number of documents containing term at
// least once. Always between 1 and N for terms present in the corpus.
func (s *CorpusStats) DocumentFrequency(term string) int {
	return s.docFreq[term]
}

// TermFrequency returns f(term, D) for the document at insertion index i.
func (s *CorpusStats) TermFrequency(i int, term string) int {
	return s.termFreqs[i][term]
}

// DocumentLength returns the token count of the document at insertion index i.
func (s *CorpusStats) DocumentLength(i int) int {
	return s.docLengths[i]
}

// IDF computes the BM25 inverse document frequency for a term:
//
//	IDF(t) = ln((N - n(t) + 0.5) / (n(t) + 0.5) + 1)
//
// Terms absent from the corpus use n(t) = 0, which still yields a
// finite positive value.
func (s *CorpusStats) IDF(term string) float64 {
	n := float64(s.docFreq[term])
	return math.Log((float64(s.n)-n+0.5)/(n+0.5) + 1)
}
