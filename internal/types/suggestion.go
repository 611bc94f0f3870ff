//nolint:revive // types is a standard Go package name pattern
package types

// Suggestion is one eligible offering returned for a request.
// Instances are built fresh per request and never shared.
type Suggestion struct {
	CollegeName    string `json:"college_name"`
	CourseName     string `json:"course_name"`
	Fees           int    `json:"fees"`
	Address        string `json:"address"`
	Contact        string `json:"contact"`
	MatchReason    string `json:"match_reason"`
	AIAnalysis     string `json:"ai_analysis"`
	RelevanceScore int    `json:"relevance_score"`
}

// NewSuggestion copies the offering fields into a fresh Suggestion.
func NewSuggestion(offering CourseOffering) Suggestion {
	offering = offering.WithDefaults()
	return Suggestion{
		CollegeName: offering.CollegeName,
		CourseName:  offering.CourseName,
		Fees:        offering.Fees,
		Address:     offering.Address,
		Contact:     offering.Contact,
	}
}

// ChatRequest is the body of an AI counselor chat message.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the counselor reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
