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


package catalog

import (
	"sort"
	"strconv"

	"github.com/poiesic/rankit/core"
)

// Store is an immutable in-memory collection of documents.
// It is built once from a document slice and never mutated afterwards,
// so it is safe for concurrent readers without locking. Reloading a
// dataset means building a new Store.
type Store struct {
	docs        []*core.Document
	byID        map[core.ID]*core.Document
	fingerprint core.ID
}

// NewStore builds a store from documents, preserving their order.
// Insertion order is the tie-break order for equal ranking scores.
// Documents failing validation are rejected.
func NewStore(docs []*core.Document) (*Store, error) {
	byID := make(map[core.ID]*core.Document, len(docs))
	for _, doc := range docs {
		if err := core.ValidateDocument(doc); err != nil {
			return nil, err
		}
		byID[doc.Id] = doc
	}

	return &Store{
		docs:        docs,
		byID:        byID,
		fingerprint: core.Fingerprint(docs),
	}, nil
}

// Documents returns the stored documents in insertion order.
// Callers must not modify the returned slice or its documents.
func (s *Store) Documents() []*core.Document {
	return s.docs
}

// ByID returns the document with the given ID, or nil if absent.
func (s *Store) ByID(id core.ID) *core.Document {
	return s.byID[id]
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	return len(s.docs)
}

// Fingerprint returns the content-derived identity of this store.
// A reloaded dataset with any change produces a different fingerprint,
// which downstream caches use as their invalidation signal.
func (s *Store) Fingerprint() core.ID {
	return s.fingerprint
}

// Cities returns the distinct city tags in the store, sorted.
func (s *Store) Cities() []string {
	return s.distinct(func(d *core.Document) string { return d.City })
}

// Themes returns the distinct theme tags in the store, sorted.
func (s *Store) Themes() []string {
	return s.distinct(func(d *core.Document) string { return d.Theme })
}

// ThemesForCity returns the distinct themes of documents tagged with city, sorted.
func (s *Store) ThemesForCity(city string) []string {
	seen := make(map[string]bool)
	themes := make([]string, 0)
	for _, doc := range s.docs {
		if doc.City != city || doc.Theme == "" || seen[doc.Theme] {
			continue
		}
		seen[doc.Theme] = true
		themes = append(themes, doc.Theme)
	}
	sort.Strings(themes)
	return themes
}

func (s *Store) distinct(field func(*core.Document) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, doc := range s.docs {
		v := field(doc)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Stats summarizes a loaded catalogue for display.
type Stats struct {
	Documents int
	Cities    []string
	Themes    []string
	MinCost   float64
	MaxCost   float64
	HasCosts  bool
}

// Stats computes summary statistics over the store. Cost values come
// from the "cost_usd" metadata column when present; records without a
// parseable cost are skipped for the range.
func (s *Store) Stats() Stats {
	stats := Stats{
		Documents: len(s.docs),
		Cities:    s.Cities(),
		Themes:    s.Themes(),
	}

	for _, doc := range s.docs {
		raw, ok := doc.Metadata[costColumn]
		if !ok {
			continue
		}
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if !stats.HasCosts || cost < stats.MinCost {
			stats.MinCost = cost
		}
		if !stats.HasCosts || cost > stats.MaxCost {
			stats.MaxCost = cost
		}
		stats.HasCosts = true
	}

	return stats
}
