// Package eligibility decides whether a student may see a catalog offering at all.
package eligibility

import (
	"github.com/jonathan/admission-advisor/internal/classify"
	"github.com/jonathan/admission-advisor/internal/types"
)

// Special notes attached to accepted diploma offerings.
const (
	NoteDiplomaFullTime = "3 Years Full Time"
	NoteLateralEntry    = "Direct 2nd Year (Lateral Entry)"
)

// Rejection reasons. They are diagnostic only and never reach the student.
const (
	ReasonQualification   = "Qualification not eligible"
	ReasonDegreeOnly10th  = "Degrees require 12th"
	ReasonStreamMismatch  = "Stream Mismatch"
	ReasonRequiresMaths   = "Requires Maths"
	ReasonRequiresMathsCS = "CSE Requires Maths/Computer Sc."
	ReasonSubjects        = "Missing required subjects"
	ReasonStreamNotListed = "Stream not eligible"
	ReasonFailed          = "Below pass percentage"
	ReasonBelowDegreeCut  = "Below 60% for engineering degree"
	ReasonBelowHighDemand = "Below 65% for high-demand branch"
)

// Percentage thresholds.
const (
	MinPassPercentage        = 35.0
	MinEngineeringPercentage = 60.0
	MinHighDemandPercentage  = 65.0
)

// Decision is the outcome of checking one offering.
type Decision struct {
	Eligible bool
	// Note is carried into scoring for accepted diploma offerings.
	Note string
	// Reason explains a rejection.
	Reason string
}

func accept(note string) Decision  { return Decision{Eligible: true, Note: note} }
func reject(reason string) Decision { return Decision{Reason: reason} }

// Check runs the eligibility gates in priority order: qualification,
// degree family, overall pass mark, then engineering percentage tiers.
// It is total over all inputs; anything unmatched is rejected.
func Check(profile *types.StudentProfile, course classify.Descriptor, offering types.CourseOffering) Decision {
	var decision Decision

	switch profile.Qualification {
	case types.Qualification10th:
		if !course.Diploma {
			return reject(ReasonDegreeOnly10th)
		}
		decision = accept(NoteDiplomaFullTime)
	case types.Qualification12th:
		if course.Diploma {
			decision = accept(NoteLateralEntry)
		} else {
			decision = checkDegree(profile, course, offering)
			if !decision.Eligible {
				return decision
			}
		}
	default:
		return reject(ReasonQualification)
	}

	return checkPercentage(profile, course, decision)
}

// checkDegree applies the stream and subject rules for 12th-qualified
// students applying to non-diploma courses.
func checkDegree(profile *types.StudentProfile, course classify.Descriptor, offering types.CourseOffering) Decision {
	stream := profile.Stream
	marks := profile.SubjectMarks

	switch course.Family {
	case classify.FamilyEngineering:
		return checkEngineering(profile, course)

	case classify.FamilyBSc:
		switch {
		case course.ComputerOrData:
			if stream == types.StreamComputerScience || passes(marks, "Math", "Computer") {
				return accept("")
			}
		case course.BioOrMicro:
			if stream == types.StreamBiology || passes(marks, "Biology", "Botany") {
				return accept("")
			}
		default:
			if stream != types.StreamCommerce && stream != types.StreamArts {
				return accept("")
			}
		}
		return reject(ReasonSubjects)

	case classify.FamilyBCA:
		return accept("")

	case classify.FamilyCommerce:
		if stream == types.StreamCommerce || passes(marks, "Commerce", "Accountancy", "Business") {
			return accept("")
		}
		return reject(ReasonSubjects)

	case classify.FamilyArts:
		return accept("")

	case classify.FamilyFallback:
		if offering.AcceptsStream(stream) {
			return accept("")
		}
		return reject(ReasonStreamNotListed)
	}

	return reject(ReasonStreamNotListed)
}

func checkEngineering(profile *types.StudentProfile, course classify.Descriptor) Decision {
	stream := profile.Stream
	marks := profile.SubjectMarks

	switch stream {
	case types.StreamCommerce, types.StreamArts:
		return reject(ReasonStreamMismatch)
	case types.StreamVocational:
		return accept("")
	}

	decision := reject(ReasonSubjects)
	hasMath := passes(marks, "Math")
	if stream == types.StreamBiology && !hasMath {
		if course.Biomed {
			decision = accept("")
		} else {
			decision = reject(ReasonRequiresMaths)
		}
	} else if hasMath || passes(marks, "Physics") {
		decision = accept("")
	}

	// Computer branches need Maths or Computer unless the stream already is Computer Science.
	if course.Computer && stream != types.StreamComputerScience && !passes(marks, "Math", "Computer") {
		decision = reject(ReasonRequiresMathsCS)
	}

	return decision
}

// checkPercentage applies the overall pass floor and the engineering tiers.
func checkPercentage(profile *types.StudentProfile, course classify.Descriptor, decision Decision) Decision {
	if profile.Marks < MinPassPercentage {
		return reject(ReasonFailed)
	}

	if course.EngineeringWord && !course.Diploma {
		if profile.Marks < MinEngineeringPercentage && profile.Stream != types.StreamVocational {
			return reject(ReasonBelowDegreeCut)
		}
		if course.HighDemand && profile.Marks < MinHighDemandPercentage {
			return reject(ReasonBelowHighDemand)
		}
	}

	return decision
}
