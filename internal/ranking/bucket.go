package ranking

import (
	"strings"

	"github.com/jonathan/admission-advisor/internal/classify"
	"github.com/jonathan/admission-advisor/internal/types"
)

// Bucket is a result category used to diversify 12th-grade results.
type Bucket int

// Buckets in classification order. Emission order differs, see emitOrder.
const (
	BucketDiploma Bucket = iota
	BucketEngineering
	BucketArts
	BucketOther
)

func (b Bucket) String() string {
	switch b {
	case BucketDiploma:
		return "diploma"
	case BucketEngineering:
		return "engineering"
	case BucketArts:
		return "arts"
	case BucketOther:
		return "other"
	}
	return "unknown"
}

// Cap returns the maximum number of suggestions kept in the bucket.
func (b Bucket) Cap() int {
	if b == BucketOther {
		return 10
	}
	return 20
}

var (
	engineeringKeywords = []string{"b.e", "b.tech", "engineering", "archi"}
	artsKeywords        = []string{"b.sc", "b.a", "b.com", "bba", "bca", "arts"}

	emitOrder = []Bucket{BucketEngineering, BucketArts, BucketDiploma, BucketOther}
)

// Classify assigns a suggestion to exactly one bucket.
func Classify(s *types.Suggestion) Bucket {
	name := strings.ToLower(s.CourseName)
	switch {
	case strings.Contains(name, "diploma") || strings.Contains(strings.ToLower(s.MatchReason), "lateral"):
		return BucketDiploma
	case classify.ContainsAny(name, engineeringKeywords...):
		return BucketEngineering
	case classify.ContainsAny(name, artsKeywords...):
		return BucketArts
	}
	return BucketOther
}

// Balance distributes sorted suggestions into capped buckets, keeping the
// sorted order within each bucket, and returns engineering, arts, diploma
// then other. Suggestions that overflow their bucket are dropped.
func Balance(sorted []types.Suggestion) []types.Suggestion {
	buckets := make(map[Bucket][]types.Suggestion, len(emitOrder))
	for i := range sorted {
		b := Classify(&sorted[i])
		if len(buckets[b]) < b.Cap() {
			buckets[b] = append(buckets[b], sorted[i])
		}
	}

	out := make([]types.Suggestion, 0, len(sorted))
	for _, b := range emitOrder {
		out = append(out, buckets[b]...)
	}
	return out
}
