// Package career maps a free-text career goal to catalog course names with an LLM.
// Any failure resolves to the empty set so the mapping only ever adds a
// scoring signal and never blocks a suggestion.
package career

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/admission-advisor/internal/cache"
	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/llm"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/prompts"
	"github.com/jonathan/admission-advisor/internal/types"
)

// DefaultTimeout bounds a single mapping call.
const DefaultTimeout = 8 * time.Second

const component = "career"

// Mapper resolves career goals to course sets.
type Mapper struct {
	client  llm.Client
	cache   cache.JSONCache
	timeout time.Duration
}

// NewMapper creates a mapper. A nil client makes every mapping empty;
// a nil cache disables caching.
func NewMapper(client llm.Client, c cache.JSONCache, timeout time.Duration) *Mapper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mapper{client: client, cache: c, timeout: timeout}
}

// Map returns the lowercase names of catalog courses suited to goal.
// Names the model returns that are not in the catalog are ignored.
func (m *Mapper) Map(ctx context.Context, goal string, cat *catalog.Catalog) types.CourseSet {
	goal = strings.TrimSpace(goal)
	if goal == "" || cat.Len() == 0 {
		return types.CourseSet{}
	}
	if m == nil || m.client == nil {
		observability.RecordAIFallback(component, observability.ReasonNoClient)
		return types.CourseSet{}
	}

	courses := cat.CourseNames()
	key := cache.CareerKey(goal, courses)
	if m.cache != nil {
		var cached []string
		if found, err := m.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return restrict(cached, cat)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	names, err := m.ask(ctx, goal, courses)
	if err != nil {
		reason := observability.ReasonError
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			reason = observability.ReasonTimeout
		case errors.Is(err, errParse):
			reason = observability.ReasonParse
		}
		observability.RecordAIFallback(component, reason)
		log.Printf("[career] mapping %q failed, using empty set: %v", goal, err)
		return types.CourseSet{}
	}

	set := restrict(names, cat)
	if m.cache != nil {
		if err := m.cache.SetJSON(ctx, key, set.Names(), 0); err != nil {
			log.Printf("[career] failed to cache mapping: %v", err)
		}
	}
	return set
}

var errParse = errors.New("unparseable course list")

func (m *Mapper) ask(ctx context.Context, goal string, courses []string) ([]string, error) {
	courseJSON, err := json.Marshal(courses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode course list: %w", err)
	}

	prompt, err := prompts.Render(prompts.CareerFile, "map-career-goal", map[string]string{
		"System":     prompts.MustGet(prompts.CareerFile, "system"),
		"CareerGoal": goal,
		"Courses":    string(courseJSON),
	})
	if err != nil {
		return nil, err
	}

	resp, err := m.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	names, err := llm.ParseStringList(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParse, err)
	}
	return names, nil
}

// restrict lowercases names and drops those the catalog does not offer.
func restrict(names []string, cat *catalog.Catalog) types.CourseSet {
	set := types.NewCourseSet()
	for _, name := range names {
		if cat.HasCourse(name) {
			set.Add(name)
		}
	}
	return set
}
