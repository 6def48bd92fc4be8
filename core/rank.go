package core

import (
	"sort"
	"strings"

	"github.com/vanadhikar/sifarish/schema"
)

// ApplyPriorityTiers assigns High/Medium/Low tiers to rows by global rank:
// the top third of ranked rows is High, the next third Medium, and the
// remainder Low. When the count is not divisible by three the Low tier
// absorbs the extra rows — the uneven remainder is intentional. The input
// slice keeps its original (pipeline) order; only the Priority fields are
// written. Ties at tier boundaries are broken by stable original ordering.
func ApplyPriorityTiers(rows []schema.RecommendationRow) {
	n := len(rows)
	if n == 0 {
		return
	}

	ranked := make([]*schema.RecommendationRow, n)
	for i := range rows {
		ranked[i] = &rows[i]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	highCount := n / 3
	mediumCount := n / 3
	for i, r := range ranked {
		switch {
		case i < highCount:
			r.Priority = schema.HighPriority
		case i < highCount+mediumCount:
			r.Priority = schema.MediumPriority
		default:
			r.Priority = schema.LowPriority
		}
	}
}

// SortRows returns a copy of rows ordered by the given key and direction.
// Priority sorts by tier weight (High=3, Low=1), name sorts by holder name
// case-insensitively, and score sorts numerically. The sort is stable, so
// equal rows keep their pipeline order.
func SortRows(rows []schema.RecommendationRow, key schema.SortKey, dir schema.SortDir) []schema.RecommendationRow {
	sorted := make([]schema.RecommendationRow, len(rows))
	copy(sorted, rows)

	var less func(i, j int) bool
	switch key {
	case schema.SortByPriority:
		less = func(i, j int) bool {
			return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
		}
	case schema.SortByName:
		less = func(i, j int) bool {
			return strings.ToLower(sorted[i].HolderName) < strings.ToLower(sorted[j].HolderName)
		}
	default: // SortByScore
		less = func(i, j int) bool {
			return sorted[i].Score < sorted[j].Score
		}
	}

	if dir == schema.SortAsc {
		sort.SliceStable(sorted, less)
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return less(j, i) })
	}
	return sorted
}
