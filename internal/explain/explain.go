// Package explain writes the short per-suggestion note shown next to each result.
// The note is cosmetic: it never changes a score or the result order.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/admission-advisor/internal/cache"
	"github.com/jonathan/admission-advisor/internal/llm"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/prompts"
	"github.com/jonathan/admission-advisor/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTopN is how many leading results get a real AI note.
	DefaultTopN = 5
	// DefaultTimeout bounds one AI note.
	DefaultTimeout = 6 * time.Second
	// StrongMark is the subject mark from which a subject counts as strong.
	StrongMark = 75.0

	maxConcurrency = 4
	component      = "explain"
)

// Explainer produces notes with the LLM when it can and from templates otherwise.
type Explainer struct {
	client  llm.Client
	cache   cache.JSONCache
	timeout time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewExplainer creates an explainer. client and c may be nil; rng may be nil,
// in which case a randomly seeded source is used.
func NewExplainer(client llm.Client, c cache.JSONCache, timeout time.Duration, rng *rand.Rand) *Explainer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Explainer{client: client, cache: c, timeout: timeout, rng: rng}
}

// StrongSubjects lists subjects with a numeric mark of at least StrongMark, sorted by name.
func StrongSubjects(marks types.SubjectMarks) []string {
	var out []string
	for subject := range marks {
		if v, ok := marks.Value(subject); ok && v >= StrongMark {
			out = append(out, subject)
		}
	}
	sort.Strings(out)
	return out
}

// Templates returns the fallback notes applicable to one suggestion.
func Templates(profile *types.StudentProfile, s types.Suggestion) []string {
	out := []string{
		fmt.Sprintf("Great choice! %s is known for %s, and your marks fit well.", s.CollegeName, s.CourseName),
		fmt.Sprintf("Based on your score, this course at %s is a solid option for your career.", s.CollegeName),
		fmt.Sprintf("Your profile matches the eligibility for %s at %s perfectly.", s.CourseName, s.CollegeName),
	}

	strong := make(map[string]bool)
	for _, subject := range StrongSubjects(profile.SubjectMarks) {
		strong[subject] = true
	}
	course := strings.ToLower(s.CourseName)
	if strings.Contains(course, "computer") && strong["Computer Science"] {
		out = append(out, "Your strong performance in Computer Science makes you a top candidate for this course!")
	}
	if strings.Contains(course, "math") && strong["Maths"] {
		out = append(out, fmt.Sprintf("With your good Maths score, you'll find the curriculum at %s very manageable.", s.CollegeName))
	}
	if strings.Contains(course, "bio") && strong["Biology"] {
		out = append(out, "Your Biology marks suggest you have the right aptitude for this field.")
	}
	return out
}

// Template picks one fallback note at random.
func (e *Explainer) Template(profile *types.StudentProfile, s types.Suggestion) string {
	templates := Templates(profile, s)
	e.mu.Lock()
	i := e.rng.IntN(len(templates))
	e.mu.Unlock()
	return templates[i]
}

// Explain returns the note for one suggestion. With useAI false, or when the
// LLM is unavailable or fails, a template is returned instead.
func (e *Explainer) Explain(ctx context.Context, profile *types.StudentProfile, s types.Suggestion, useAI bool) string {
	if !useAI {
		return e.Template(profile, s)
	}
	if e.client == nil {
		observability.RecordAIFallback(component, observability.ReasonNoClient)
		return e.Template(profile, s)
	}

	key := cache.ExplainKey(profile.Name, profile.CareerInterest, map[string]any(profile.SubjectMarks), s.CollegeName, s.CourseName)
	if e.cache != nil {
		var cached string
		if found, err := e.cache.GetJSON(ctx, key, &cached); err == nil && found && cached != "" {
			return cached
		}
	}

	note, err := e.generate(ctx, profile, s)
	if err != nil {
		reason := observability.ReasonError
		if errors.Is(err, context.DeadlineExceeded) {
			reason = observability.ReasonTimeout
		}
		observability.RecordAIFallback(component, reason)
		log.Printf("[explain] AI note for %s at %s failed, using template: %v", s.CourseName, s.CollegeName, err)
		return e.Template(profile, s)
	}

	if e.cache != nil {
		if err := e.cache.SetJSON(ctx, key, note, 0); err != nil {
			log.Printf("[explain] failed to cache note: %v", err)
		}
	}
	return note
}

func (e *Explainer) generate(ctx context.Context, profile *types.StudentProfile, s types.Suggestion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	marks, err := json.Marshal(profile.SubjectMarks)
	if err != nil {
		return "", fmt.Errorf("failed to encode subject marks: %w", err)
	}
	strong := "your academic profile"
	if subjects := StrongSubjects(profile.SubjectMarks); len(subjects) > 0 {
		strong = strings.Join(subjects, ", ")
	}

	prompt, err := prompts.Render(prompts.ExplainFile, "course-note", map[string]string{
		"StudentName":    profile.Name,
		"CourseName":     s.CourseName,
		"CollegeName":    s.CollegeName,
		"Stream":         profile.Stream,
		"SubjectMarks":   string(marks),
		"StrongSubjects": strong,
		"CareerGoal":     profile.CareerInterest,
	})
	if err != nil {
		return "", err
	}

	resp, err := e.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	note := strings.TrimSpace(resp)
	if note == "" {
		return "", errors.New("empty note")
	}
	return note, nil
}

// Annotate fills AIAnalysis for every suggestion in place. The first topN get
// an AI note, the rest a template. onReady, when set, is called with the index
// of each suggestion as soon as its note is written; calls may be concurrent.
func (e *Explainer) Annotate(ctx context.Context, profile *types.StudentProfile, suggestions []types.Suggestion, topN int, onReady func(i int)) {
	var g errgroup.Group
	g.SetLimit(maxConcurrency)

	for i := range suggestions {
		useAI := i < topN
		if !useAI {
			suggestions[i].AIAnalysis = e.Template(profile, suggestions[i])
			if onReady != nil {
				onReady(i)
			}
			continue
		}
		g.Go(func() error {
			suggestions[i].AIAnalysis = e.Explain(ctx, profile, suggestions[i], true)
			if onReady != nil {
				onReady(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}
