package ranking

import (
	"fmt"
	"testing"

	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestion(course string, score, fees int) types.Suggestion {
	return types.Suggestion{CollegeName: "College", CourseName: course, RelevanceScore: score, Fees: fees}
}

func TestSort_ScoreThenFees(t *testing.T) {
	suggestions := []types.Suggestion{
		suggestion("A", 60, 30000),
		suggestion("B", 90, 80000),
		suggestion("C", 90, 50000),
		suggestion("D", 60, 30000),
		suggestion("E", 75, 10000),
	}

	Sort(suggestions)

	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = s.CourseName
	}
	assert.Equal(t, []string{"C", "B", "E", "A", "D"}, names, "ties on both keys keep input order")

	for i := 1; i < len(suggestions); i++ {
		a, b := suggestions[i-1], suggestions[i]
		assert.True(t, a.RelevanceScore > b.RelevanceScore ||
			(a.RelevanceScore == b.RelevanceScore && a.Fees <= b.Fees))
	}
}

func TestShape_TenthTruncatesToFifty(t *testing.T) {
	suggestions := make([]types.Suggestion, 0, 70)
	for i := 0; i < 70; i++ {
		suggestions = append(suggestions, suggestion(fmt.Sprintf("Diploma %d", i), 100-i, 1000))
	}

	out := Rank(types.Qualification10th, suggestions)
	require.Len(t, out, MaxTenthResults)
	assert.Equal(t, "Diploma 0", out[0].CourseName)
	assert.Equal(t, "Diploma 49", out[49].CourseName)

	short := Rank(types.Qualification10th, suggestions[:3])
	assert.Len(t, short, 3)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		course string
		reason string
		want   Bucket
	}{
		{"Diploma in Civil Engineering", "", BucketDiploma},
		{"Polytechnic Mechanical", "**Direct 2nd Year (Lateral Entry)**", BucketDiploma},
		{"B.E Mechanical", "", BucketEngineering},
		{"B.Architecture", "", BucketEngineering},
		{"B.Arch", "", BucketArts},
		{"Computer Science Engineering", "", BucketEngineering},
		{"B.Sc Physics", "", BucketArts},
		{"BCA", "", BucketArts},
		{"BBA", "", BucketArts},
		{"Fine Arts", "", BucketArts},
		{"MBBS", "", BucketOther},
		{"LLB", "Eligible option.", BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.course, func(t *testing.T) {
			s := types.Suggestion{CourseName: tt.course, MatchReason: tt.reason}
			assert.Equal(t, tt.want, Classify(&s))
		})
	}
}

func TestBalance_CapsAndEmitOrder(t *testing.T) {
	var sorted []types.Suggestion
	// Interleave so classification order differs from emission order.
	for i := 0; i < 25; i++ {
		sorted = append(sorted,
			suggestion(fmt.Sprintf("Diploma %02d", i), 500-i, 1000),
			suggestion(fmt.Sprintf("B.Tech %02d", i), 400-i, 1000),
			suggestion(fmt.Sprintf("B.Sc %02d", i), 300-i, 1000),
			suggestion(fmt.Sprintf("MBBS %02d", i), 200-i, 1000),
		)
	}

	out := Balance(sorted)
	require.Len(t, out, 20+20+20+10)

	counts := map[Bucket]int{}
	for i := range out {
		counts[Classify(&out[i])]++
	}
	assert.Equal(t, 20, counts[BucketEngineering])
	assert.Equal(t, 20, counts[BucketArts])
	assert.Equal(t, 20, counts[BucketDiploma])
	assert.Equal(t, 10, counts[BucketOther])

	assert.Equal(t, "B.Tech 00", out[0].CourseName)
	assert.Equal(t, "B.Tech 19", out[19].CourseName)
	assert.Equal(t, "B.Sc 00", out[20].CourseName)
	assert.Equal(t, "Diploma 00", out[40].CourseName)
	assert.Equal(t, "MBBS 00", out[60].CourseName)
	assert.Equal(t, "MBBS 09", out[69].CourseName)
}

func TestBalance_EmptyBucketsAndIndependenceFromInput(t *testing.T) {
	a := []types.Suggestion{
		suggestion("Diploma in EEE", 90, 1000),
		suggestion("B.Com", 80, 1000),
	}
	b := []types.Suggestion{
		suggestion("B.Com", 80, 1000),
		suggestion("Diploma in EEE", 90, 1000),
	}

	outA := Rank(types.Qualification12th, a)
	outB := Rank(types.Qualification12th, b)
	require.Len(t, outA, 2)
	assert.Equal(t, outA, outB)
	assert.Equal(t, "B.Com", outA[0].CourseName, "arts is emitted before diploma")

	assert.Empty(t, Balance(nil))
}

func TestBucket_StringAndCap(t *testing.T) {
	assert.Equal(t, "engineering", BucketEngineering.String())
	assert.Equal(t, "unknown", Bucket(9).String())
	assert.Equal(t, 20, BucketDiploma.Cap())
	assert.Equal(t, 10, BucketOther.Cap())
}
