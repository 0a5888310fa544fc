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
	"fmt"
	"sort"

	"github.com/poiesic/rankit/core"
	"github.com/poiesic/rankit/rank"
)

// Theme expansion defaults: how many similar themes one seed pulls in,
// and the similarity floor below which a theme is not considered close.
const (
	themeExpansionLimit = 3
	themeSimilarityMin  = 0.3
)

// SimilarThemes ranks the catalogue themes of a city by embedding
// similarity to the seed theme. City may be empty to search all themes.
// Requires an encoder; fails with core.ErrEncoderUnavailable otherwise.
func (e *Engine) SimilarThemes(ctx context.Context, seed, city string, limit int) ([]core.ThemeMatch, error) {
	if e.embedder == nil {
		return nil, fmt.Errorf("%w: no embedder configured", core.ErrEncoderUnavailable)
	}

	var themes []string
	if city == "" {
		themes = e.store.Themes()
	} else {
		themes = e.store.ThemesForCity(city)
	}
	if len(themes) == 0 {
		return []core.ThemeMatch{}, nil
	}

	seedVec, err := e.embedder.EmbedText(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEncoderUnavailable, err)
	}

	themeVecs, err := e.embedder.EmbedTexts(ctx, themes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEncoderUnavailable, err)
	}
	if len(themeVecs) != len(themes) {
		return nil, fmt.Errorf("%w: encoder returned %d vectors for %d themes",
			core.ErrEncoderUnavailable, len(themeVecs), len(themes))
	}

	matches := make([]core.ThemeMatch, len(themes))
	for i, theme := range themes {
		matches[i] = core.ThemeMatch{
			Theme: theme,
			Score: rank.CosineSimilarity(seedVec, themeVecs[i]),
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// ExpandThemes widens a theme list with semantically close catalogue
// themes: for each seed, the top three themes above the similarity
// floor join the set. Seeds are always kept, so a failed or empty
// expansion degrades to the input list.
func (e *Engine) ExpandThemes(ctx context.Context, seeds []string, city string) ([]string, error) {
	expanded := make([]string, 0, len(seeds))
	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		if !seen[seed] {
			seen[seed] = true
			expanded = append(expanded, seed)
		}
	}

	for _, seed := range seeds {
		matches, err := e.SimilarThemes(ctx, seed, city, themeExpansionLimit)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if match.Score < themeSimilarityMin || seen[match.Theme] {
				continue
			}
			seen[match.Theme] = true
			expanded = append(expanded, match.Theme)
		}
	}

	return expanded, nil
}
