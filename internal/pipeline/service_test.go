package pipeline

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/admission-advisor/internal/career"
	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/explain"
	"github.com/jonathan/admission-advisor/internal/llm"
	"github.com/jonathan/admission-advisor/internal/scoring"
	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "Recommended because it fits your goal.", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "[]", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func newService(t *testing.T, client llm.Client) *Service {
	t.Helper()
	var mapper *career.Mapper
	if client != nil {
		mapper = career.NewMapper(client, nil, time.Second)
	}
	return &Service{
		Catalog:   catalog.NewStaticStore(loadTestCatalog(t)),
		Mapper:    mapper,
		Explainer: explain.NewExplainer(client, nil, time.Second, rand.New(rand.NewPCG(7, 7))),
		TopN:      2,
	}
}

func twelfthProfile() *types.StudentProfile {
	return &types.StudentProfile{
		Name:           "Kavya",
		Qualification:  types.Qualification12th,
		Stream:         types.StreamComputerScience,
		Marks:          78,
		SubjectMarks:   types.SubjectMarks{"Maths": 81, "Computer Science": 95},
		CareerInterest: "software developer",
	}
}

func TestService_SuggestWithoutAI(t *testing.T) {
	svc := newService(t, nil)
	profile := twelfthProfile()

	results := svc.Suggest(context.Background(), profile)
	require.NotEmpty(t, results)

	expected := SuggestAdmission(svc.Catalog.Current(), profile, nil)
	require.Len(t, results, len(expected))
	for i := range results {
		assert.Equal(t, expected[i].CourseName, results[i].CourseName)
		assert.Equal(t, expected[i].RelevanceScore, results[i].RelevanceScore)
		assert.NotEmpty(t, results[i].AIAnalysis)
		assert.NotContains(t, results[i].MatchReason, scoring.ReasonAIRecommended)
	}
}

func TestService_SuggestWithAI(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return `["BCA", "Astronaut Training"]`, nil
		},
	}
	svc := newService(t, client)

	results := svc.Suggest(context.Background(), twelfthProfile())
	require.NotEmpty(t, results)

	var bca *types.Suggestion
	for i := range results {
		if results[i].CourseName == "BCA" {
			bca = &results[i]
		}
	}
	require.NotNil(t, bca)
	assert.Contains(t, bca.MatchReason, scoring.ReasonAIRecommended)

	ai := 0
	for _, s := range results {
		if s.AIAnalysis == "Recommended because it fits your goal." {
			ai++
		}
	}
	assert.Equal(t, 2, ai, "only the top N use the LLM")
	assert.Equal(t, "Recommended because it fits your goal.", results[0].AIAnalysis)
}

func TestService_StreamEmitsInRankOrder(t *testing.T) {
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			// Make the first-ranked note finish last.
			if strings.Contains(prompt, "B.E Computer Science") {
				time.Sleep(30 * time.Millisecond)
			}
			return "AI note", nil
		},
	}
	svc := newService(t, client)

	var mu sync.Mutex
	var events []ProgressEvent
	results := svc.Stream(context.Background(), twelfthProfile(), func(e ProgressEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})
	require.NotEmpty(t, results)

	var streamed []types.Suggestion
	for _, e := range events {
		if e.Step == StepSuggestion {
			s, ok := e.Content.(types.Suggestion)
			require.True(t, ok)
			assert.Equal(t, len(streamed), e.Index)
			assert.NotEmpty(t, s.AIAnalysis)
			streamed = append(streamed, s)
		}
	}
	require.Len(t, streamed, len(results))
	for i := range results {
		assert.Equal(t, results[i].CourseName, streamed[i].CourseName)
		assert.Equal(t, results[i].CollegeName, streamed[i].CollegeName)
	}

	assert.Equal(t, StepRanking, events[0].Step)
	last := events[len(events)-1]
	assert.Equal(t, StepComplete, last.Step)
	assert.Equal(t, len(results), last.Content)
}

func TestService_StreamEmpty(t *testing.T) {
	svc := newService(t, nil)
	profile := &types.StudentProfile{Qualification: types.Qualification12th, Marks: 20}

	var steps []string
	results := svc.Stream(context.Background(), profile, func(e ProgressEvent) { steps = append(steps, e.Step) })
	assert.Empty(t, results)
	assert.Equal(t, []string{StepRanking, StepComplete}, steps)
}

func TestService_StreamWithoutExplainer(t *testing.T) {
	svc := &Service{Catalog: catalog.NewStaticStore(loadTestCatalog(t))}
	profile := &types.StudentProfile{Qualification: types.Qualification10th, Marks: 60}

	count := 0
	results := svc.Stream(context.Background(), profile, func(e ProgressEvent) {
		if e.Step == StepSuggestion {
			count++
		}
	})
	assert.Equal(t, len(results), count)
}
