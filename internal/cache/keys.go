package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Key prefixes.
const (
	CareerPrefix  = "career:"
	ExplainPrefix = "explain:"
)

func normalizeValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func hashKey(prefix string, v any) string {
	b, _ := json.Marshal(v)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

// CareerKey identifies a career-goal mapping against a specific course list.
func CareerKey(goal string, courses []string) string {
	normalized := make([]string, 0, len(courses))
	for _, c := range courses {
		normalized = append(normalized, normalizeValue(c))
	}
	return hashKey(CareerPrefix, struct {
		Goal    string   `json:"goal"`
		Courses []string `json:"courses"`
	}{normalizeValue(goal), normalized})
}

// ExplainKey identifies an AI explanation for one student and offering.
func ExplainKey(studentName, careerGoal string, subjectMarks map[string]any, college, course string) string {
	return hashKey(ExplainPrefix, struct {
		Student string         `json:"student"`
		Goal    string         `json:"goal"`
		Marks   map[string]any `json:"marks"`
		College string         `json:"college"`
		Course  string         `json:"course"`
	}{studentName, normalizeValue(careerGoal), subjectMarks, normalizeValue(college), normalizeValue(course)})
}
