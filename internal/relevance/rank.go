// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"sort"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// Rank sorts scored sections descending by composite score and assigns
// dense 1-based ranks across the whole document set. Ties break by
// per-document ordinal ascending, then by document ingestion order.
// The input slice is not modified.
func Rank(scored []types.ScoredSection, docOrder []string) []types.ScoredSection {
	order := make(map[string]int, len(docOrder))
	for i, id := range docOrder {
		order[id] = i
	}

	ranked := make([]types.ScoredSection, len(scored))
	copy(ranked, scored)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Ordinal != b.Ordinal {
			return a.Ordinal < b.Ordinal
		}
		return order[a.DocumentID] < order[b.DocumentID]
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
