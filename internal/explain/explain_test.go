package explain

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/admission-advisor/internal/llm"
	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls               atomic.Int32
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls.Add(1)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "Recommended because of your strong marks.", nil
}

func (m *MockLLMClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func profile() *types.StudentProfile {
	return &types.StudentProfile{
		Name:           "Priya",
		Qualification:  types.Qualification12th,
		Stream:         types.StreamScience,
		Marks:          88,
		SubjectMarks:   types.SubjectMarks{"Maths": 92, "Computer Science": "81", "Biology": 60, "Art": "A+"},
		CareerInterest: "software engineer",
	}
}

func TestStrongSubjects(t *testing.T) {
	assert.Equal(t, []string{"Computer Science", "Maths"}, StrongSubjects(profile().SubjectMarks))
	assert.Empty(t, StrongSubjects(nil))
}

func TestTemplates_Conditional(t *testing.T) {
	p := profile()

	base := Templates(p, types.Suggestion{CollegeName: "NIT", CourseName: "B.A English"})
	require.Len(t, base, 3)
	assert.Equal(t, "Great choice! NIT is known for B.A English, and your marks fit well.", base[0])

	cs := Templates(p, types.Suggestion{CollegeName: "NIT", CourseName: "B.Sc Computer Science with Mathematics"})
	require.Len(t, cs, 5)
	assert.Contains(t, cs, "Your strong performance in Computer Science makes you a top candidate for this course!")
	assert.Contains(t, cs, "With your good Maths score, you'll find the curriculum at NIT very manageable.")

	// Biology is below the strong mark.
	bio := Templates(p, types.Suggestion{CollegeName: "NIT", CourseName: "B.Sc Biotechnology"})
	assert.Len(t, bio, 3)
}

func TestTemplate_DeterministicWithSeed(t *testing.T) {
	p := profile()
	s := types.Suggestion{CollegeName: "NIT", CourseName: "B.E Computer Science"}

	a := NewExplainer(nil, nil, 0, seeded())
	b := NewExplainer(nil, nil, 0, seeded())
	for i := 0; i < 10; i++ {
		note := a.Template(p, s)
		assert.Equal(t, note, b.Template(p, s))
		assert.Contains(t, Templates(p, s), note)
	}
}

func TestExplain_WithoutAIUsesTemplate(t *testing.T) {
	client := &MockLLMClient{}
	e := NewExplainer(client, nil, 0, seeded())
	s := types.Suggestion{CollegeName: "NIT", CourseName: "BCA"}

	note := e.Explain(context.Background(), profile(), s, false)
	assert.Contains(t, Templates(profile(), s), note)
	assert.Zero(t, client.calls.Load())

	note = NewExplainer(nil, nil, 0, seeded()).Explain(context.Background(), profile(), s, true)
	assert.Contains(t, Templates(profile(), s), note)
}

func TestExplain_AI(t *testing.T) {
	var gotPrompt string
	var mu sync.Mutex
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			mu.Lock()
			gotPrompt = prompt
			mu.Unlock()
			assert.Equal(t, llm.TierLite, tier)
			return "  Recommended because your Maths is excellent.\n", nil
		},
	}
	e := NewExplainer(client, nil, time.Second, seeded())

	note := e.Explain(context.Background(), profile(), types.Suggestion{CollegeName: "NIT", CourseName: "B.E Computer Science"}, true)
	assert.Equal(t, "Recommended because your Maths is excellent.", note)
	assert.Contains(t, gotPrompt, "Priya")
	assert.Contains(t, gotPrompt, "B.E Computer Science at NIT")
	assert.Contains(t, gotPrompt, "Computer Science, Maths")
}

func TestExplain_AIFailureFallsBack(t *testing.T) {
	s := types.Suggestion{CollegeName: "NIT", CourseName: "BCA"}
	tests := []struct {
		name string
		fn   func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	}{
		{"error", func(context.Context, string, llm.ModelTier) (string, error) { return "", errors.New("rate limited") }},
		{"empty", func(context.Context, string, llm.ModelTier) (string, error) { return "   ", nil }},
		{"timeout", func(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExplainer(&MockLLMClient{GenerateContentFunc: tt.fn}, nil, 20*time.Millisecond, seeded())
			note := e.Explain(context.Background(), profile(), s, true)
			assert.Contains(t, Templates(profile(), s), note)
		})
	}
}

func TestAnnotate_TopNUsesAI(t *testing.T) {
	client := &MockLLMClient{}
	e := NewExplainer(client, nil, time.Second, seeded())

	suggestions := []types.Suggestion{
		{CollegeName: "A", CourseName: "BCA", RelevanceScore: 90},
		{CollegeName: "B", CourseName: "B.Com", RelevanceScore: 80},
		{CollegeName: "C", CourseName: "B.A", RelevanceScore: 70},
		{CollegeName: "D", CourseName: "BBA", RelevanceScore: 60},
	}
	before := append([]types.Suggestion(nil), suggestions...)

	var ready sync.Map
	e.Annotate(context.Background(), profile(), suggestions, 2, func(i int) { ready.Store(i, true) })

	assert.Equal(t, int32(2), client.calls.Load())
	for i := range suggestions {
		assert.NotEmpty(t, suggestions[i].AIAnalysis)
		_, ok := ready.Load(i)
		assert.True(t, ok, "index %d reported", i)
		assert.Equal(t, before[i].CourseName, suggestions[i].CourseName, "order unchanged")
		assert.Equal(t, before[i].RelevanceScore, suggestions[i].RelevanceScore, "score unchanged")
	}
	assert.Equal(t, "Recommended because of your strong marks.", suggestions[0].AIAnalysis)
	assert.Contains(t, Templates(profile(), suggestions[3]), suggestions[3].AIAnalysis)
}

func TestAnnotate_Empty(t *testing.T) {
	e := NewExplainer(nil, nil, 0, nil)
	assert.NotPanics(t, func() { e.Annotate(context.Background(), profile(), nil, DefaultTopN, nil) })
}
