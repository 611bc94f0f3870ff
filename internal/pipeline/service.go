package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/admission-advisor/internal/career"
	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/explain"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/types"
)

// Progress steps.
const (
	StepCareerMapping = "career_mapping"
	StepRanking       = "ranking"
	StepSuggestion    = "suggestion"
	StepComplete      = "complete"
)

// ProgressEvent represents a progress update during a suggestion run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Index   int    `json:"index,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// CatalogProvider returns the current catalog snapshot.
type CatalogProvider interface {
	Current() *catalog.Catalog
}

// Service wires the AI collaborators around SuggestAdmission.
// Mapper and Explainer may be nil.
type Service struct {
	Catalog   CatalogProvider
	Mapper    *career.Mapper
	Explainer *explain.Explainer
	// TopN is how many leading results get a real AI explanation.
	TopN int
}

func (s *Service) topN() int {
	if s.TopN <= 0 {
		return explain.DefaultTopN
	}
	return s.TopN
}

func emit(onProgress ProgressCallback, event ProgressEvent) {
	if onProgress != nil {
		onProgress(event)
	}
}

// rank resolves the career mapping and runs the deterministic core.
func (s *Service) rank(ctx context.Context, profile *types.StudentProfile, onProgress ProgressCallback) []types.Suggestion {
	cat := s.Catalog.Current()

	aiCourses := s.Mapper.Map(ctx, profile.CareerInterest, cat)
	if len(aiCourses) > 0 {
		emit(onProgress, ProgressEvent{
			Step:    StepCareerMapping,
			Message: fmt.Sprintf("Mapped career goal to %d courses", len(aiCourses)),
			Content: aiCourses.Names(),
		})
	}

	results := SuggestAdmission(cat, profile, aiCourses)
	observability.RecordSuggestion(profile.Qualification, len(results))
	emit(onProgress, ProgressEvent{
		Step:    StepRanking,
		Message: fmt.Sprintf("Found %d eligible suggestions", len(results)),
		Content: len(results),
	})
	return results
}

// Suggest returns the ranked and explained suggestions for profile.
func (s *Service) Suggest(ctx context.Context, profile *types.StudentProfile) []types.Suggestion {
	results := s.rank(ctx, profile, nil)
	if s.Explainer != nil {
		s.Explainer.Annotate(ctx, profile, results, s.topN(), nil)
	}
	return results
}

// Stream behaves like Suggest but reports each suggestion through onProgress
// as soon as it and every suggestion ranked above it are explained, so events
// arrive in rank order. A final StepComplete event carries the count.
func (s *Service) Stream(ctx context.Context, profile *types.StudentProfile, onProgress ProgressCallback) []types.Suggestion {
	results := s.rank(ctx, profile, onProgress)

	done := make([]chan struct{}, len(results))
	for i := range done {
		done[i] = make(chan struct{})
	}

	go func() {
		if s.Explainer == nil {
			for i := range done {
				close(done[i])
			}
			return
		}
		s.Explainer.Annotate(ctx, profile, results, s.topN(), func(i int) { close(done[i]) })
	}()

	for i := range results {
		<-done[i]
		emit(onProgress, ProgressEvent{
			Step:    StepSuggestion,
			Message: results[i].CourseName,
			Index:   i,
			Content: results[i],
		})
	}

	emit(onProgress, ProgressEvent{
		Step:    StepComplete,
		Message: fmt.Sprintf("Streamed %d suggestions", len(results)),
		Content: len(results),
	})
	return results
}
