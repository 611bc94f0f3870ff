// Package pipeline runs the admission suggestion flow: career mapping,
// eligibility, scoring, ranking and explanations.
package pipeline

import (
	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/eligibility"
	"github.com/jonathan/admission-advisor/internal/ranking"
	"github.com/jonathan/admission-advisor/internal/scoring"
	"github.com/jonathan/admission-advisor/internal/types"
)

// SuggestAdmission returns the ranked suggestions for profile over cat.
// aiCourses is the resolved career mapping and may be empty. The result is
// deterministic for a given catalog, profile and mapping.
func SuggestAdmission(cat *catalog.Catalog, profile *types.StudentProfile, aiCourses types.CourseSet) []types.Suggestion {
	entries := cat.Entries()
	suggestions := make([]types.Suggestion, 0, len(entries))

	for _, entry := range entries {
		decision := eligibility.Check(profile, entry.Course, entry.Offering)
		if !decision.Eligible {
			continue
		}

		result := scoring.Score(profile, entry.Course, decision.Note, aiCourses)

		s := types.NewSuggestion(entry.Offering)
		s.MatchReason = result.Reason()
		s.RelevanceScore = result.Score
		suggestions = append(suggestions, s)
	}

	return ranking.Rank(profile.Qualification, suggestions)
}
