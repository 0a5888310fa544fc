package core

import (
	"encoding/binary"
	"strconv"
)

// ID is a unique identifier for domain entities.
// It is taken from the source dataset when a record carries one, or
// generated with content-based hashing when it does not.
type ID uint64

// ParseID parses a decimal ID string from the source dataset.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// Document is a single catalogue record available for ranking.
// Documents are immutable after loading: scorers only ever read them.
type Document struct {
	Id   ID
	City string
	Text string // free-text name/description, the field that gets ranked

	// Theme is an optional category tag. It is not scored directly but is
	// used by semantic theme expansion.
	Theme string

	// Metadata carries passthrough columns from the source dataset
	// (cost, duration, opening hours). Opaque to the ranking core.
	Metadata map[string]string
}

// ScoreEntry pairs a document with its relevance score for one query.
// Entries are produced fresh per ranking call and ordered by descending
// score, with ties resolved by catalogue insertion order.
type ScoreEntry struct {
	Document *Document
	Score    float64
}

// Comparison holds the rankings every strategy produced for one query.
type Comparison struct {
	Query     string
	Exact     []ScoreEntry
	BM25      []ScoreEntry
	Embedding []ScoreEntry

	// EmbeddingErr records an encoder failure for the embedding strategy.
	// The lexical rankings are still valid when it is set.
	EmbeddingErr error
}

// ThemeMatch is a catalogue theme ranked by similarity to a seed theme.
type ThemeMatch struct {
	Theme string
	Score float64
}

// fingerprintSeed separates fingerprint hashing from document ID hashing
// so a single-document corpus never shares its ID with its fingerprint.
const fingerprintSeed = "rankit-fingerprint:"

// Fingerprint computes a content-derived identity for a document sequence.
// Two corpora with identical documents in identical order share a
// fingerprint; any change in content or order produces a new one.
func Fingerprint(docs []*Document) ID {
	buf := make([]byte, 0, len(docs)*16+len(fingerprintSeed))
	buf = append(buf, fingerprintSeed...)
	for _, doc := range docs {
		var idBytes [8]byte
		binary.LittleEndian.PutUint64(idBytes[:], uint64(doc.Id))
		buf = append(buf, idBytes[:]...)
		buf = append(buf, doc.Text...)
		buf = append(buf, 0)
	}
	return IDFromContent(string(buf))
}
