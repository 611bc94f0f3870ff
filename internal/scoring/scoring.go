// Package scoring computes the relevance score and match reasons for an eligible offering.
package scoring

import (
	"strings"

	"github.com/jonathan/admission-advisor/internal/classify"
	"github.com/jonathan/admission-advisor/internal/eligibility"
	"github.com/jonathan/admission-advisor/internal/types"
)

// BaseScore is the starting score of every eligible offering.
const BaseScore = 50

// Score deltas for each clause.
const (
	excellentMarksBoost  = 20
	goodMarksBoost       = 10
	strongMathsBoost     = 15
	strongPhysicsBoost   = 10
	strongBiologyBoost   = 15
	computingCareerBoost = 25
	medicalCareerBoost   = 25 // applied twice
	aiRecommendedBoost   = 40
	foundationBoost      = 25
	lateralOptionBoost   = 5
	degreeBoost          = 15
	preferredCourseBoost = 100
)

// Mark thresholds used by the score clauses.
const (
	ExcellentMarks      = 80.0
	GoodMarks           = 70.0
	StrongSubjectMark   = 80.0
	FoundationCutoff    = 65.0
	DegreePriorityMarks = 70.0
)

// Reason texts. They are joined with single spaces in evaluation order.
const (
	ReasonExcellent     = "Excellent academic record."
	ReasonStrongMaths   = "Strong Maths score."
	ReasonStrongBiology = "Strong Biology score."
	ReasonCareerMatch   = "Matches your career goal."
	ReasonMedical       = "Aligns with medical aspirations."
	ReasonAIRecommended = "🤖 AI Recommended for your Career Goal"
	ReasonFoundation    = "Recommended foundation course."
	ReasonLateral       = "Direct 2nd Year Option."
	ReasonPreferred     = "✨ Your Preferred Course"
	ReasonDefault       = "Eligible option."
)

var (
	computingInterests = []string{"computer", "code", "software"}
	medicalInterests   = []string{"doctor", "medical"}
)

// Result is the outcome of scoring one offering.
type Result struct {
	Score   int
	Reasons []string
}

// Reason joins the reasons into the sentence shown to the student.
func (r Result) Reason() string {
	return strings.Join(r.Reasons, " ")
}

func (r *Result) add(delta int, reason string) {
	r.Score += delta
	if reason != "" {
		r.Reasons = append(r.Reasons, reason)
	}
}

// Score evaluates every clause independently and sums their deltas onto
// BaseScore. note is the special note produced by the eligibility filter;
// aiCourses is the already-resolved career mapping (may be nil).
func Score(profile *types.StudentProfile, course classify.Descriptor, note string, aiCourses types.CourseSet) Result {
	r := Result{Score: BaseScore}

	if note != "" {
		r.add(0, "**"+note+"**")
	}

	switch {
	case profile.Marks >= ExcellentMarks:
		r.add(excellentMarksBoost, ReasonExcellent)
	case profile.Marks >= GoodMarks:
		r.add(goodMarksBoost, "")
	}

	if course.EngineeringWord {
		if eligibility.HasSubject(profile.SubjectMarks, "Math", StrongSubjectMark) {
			r.add(strongMathsBoost, ReasonStrongMaths)
		}
		if eligibility.HasSubject(profile.SubjectMarks, "Physics", StrongSubjectMark) {
			r.add(strongPhysicsBoost, "")
		}
	}

	if course.Bio && eligibility.HasSubject(profile.SubjectMarks, "Biology", StrongSubjectMark) {
		r.add(strongBiologyBoost, ReasonStrongBiology)
	}

	interest := strings.ToLower(profile.CareerInterest)
	if interest != "" {
		if classify.ContainsAny(interest, computingInterests...) && course.ComputingCareer {
			r.add(computingCareerBoost, ReasonCareerMatch)
		}
		if classify.ContainsAny(interest, medicalInterests...) && course.MedicalCareer {
			r.add(2*medicalCareerBoost, ReasonMedical)
		}
	}

	if aiCourses.Has(course.Lower) {
		r.add(aiRecommendedBoost, ReasonAIRecommended)
	}

	if profile.Qualification == types.Qualification12th {
		switch {
		case course.Diploma && profile.Marks < FoundationCutoff:
			r.add(foundationBoost, ReasonFoundation)
		case course.Diploma:
			r.add(lateralOptionBoost, ReasonLateral)
		case profile.Marks >= DegreePriorityMarks:
			r.add(degreeBoost, "")
		}
	}

	if preferred := strings.ToLower(profile.PreferredCourse); preferred != "" && strings.Contains(course.Lower, preferred) {
		r.add(preferredCourseBoost, ReasonPreferred)
	}

	if len(r.Reasons) == 0 {
		r.Reasons = append(r.Reasons, ReasonDefault)
	}

	return r
}
