// Package ranking orders scored suggestions and shapes the final result list.
package ranking

import (
	"sort"

	"github.com/jonathan/admission-advisor/internal/types"
)

// MaxTenthResults caps the result list for 10th-qualified students.
const MaxTenthResults = 50

// Sort orders suggestions by relevance score (descending), then fees
// (ascending). Equal keys keep their catalog order.
func Sort(suggestions []types.Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		return a.Fees < b.Fees
	})
}

// Shape applies the per-qualification result policy to an already sorted list:
// 12th results are balanced across buckets, everything else is truncated.
func Shape(qualification string, sorted []types.Suggestion) []types.Suggestion {
	if qualification == types.Qualification12th {
		return Balance(sorted)
	}
	if len(sorted) > MaxTenthResults {
		return sorted[:MaxTenthResults]
	}
	return sorted
}

// Rank sorts suggestions in place and returns the shaped result.
func Rank(qualification string, suggestions []types.Suggestion) []types.Suggestion {
	Sort(suggestions)
	return Shape(qualification, suggestions)
}
