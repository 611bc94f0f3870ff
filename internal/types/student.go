// Package types provides type definitions for structured data used throughout the admission advisor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Qualification values understood by the eligibility rules.
// Any other value is accepted at the boundary and simply matches nothing.
const (
	Qualification10th = "10th"
	Qualification12th = "12th"
)

// Stream values that the rules compare against (case-sensitive).
const (
	StreamScience         = "Science"
	StreamArts            = "Arts"
	StreamCommerce        = "Commerce"
	StreamDiploma         = "Diploma"
	StreamVocational      = "Vocational"
	StreamBiology         = "Biology"
	StreamComputerScience = "Computer Science"
)

// StudentProfile is the input to a single admission suggestion request.
type StudentProfile struct {
	Name            string       `json:"name" validate:"required"`
	DOB             string       `json:"dob,omitempty"`
	Qualification   string       `json:"qualification" validate:"required"`
	Stream          string       `json:"stream"`
	Marks           float64      `json:"marks" validate:"gte=0,lte=100"`
	SubjectMarks    SubjectMarks `json:"subject_marks,omitempty"`
	PreferredCourse string       `json:"preferred_course,omitempty"`
	CareerInterest  string       `json:"career_interest,omitempty"`
}

// Validate validates the StudentProfile using the validator.
func (p *StudentProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// SubjectMarks maps a free-text subject name to its mark.
// Values arrive as JSON numbers or strings; Value reports whether a mark is numeric.
type SubjectMarks map[string]any

// Value returns the numeric mark stored under key.
// Non-numeric values report ok=false and are meant to be skipped, not failed.
func (m SubjectMarks) Value(key string) (float64, bool) {
	raw, exists := m[key]
	if !exists {
		return 0, false
	}
	return numericMark(raw)
}

func numericMark(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
