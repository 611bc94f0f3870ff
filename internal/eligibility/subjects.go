package eligibility

import (
	"strings"

	"github.com/jonathan/admission-advisor/internal/types"
)

// PassMark is the default minimum mark for a subject to count.
const PassMark = 35.0

// HasSubject reports whether any subject whose name contains name
// (case-insensitive) carries a numeric mark of at least minMark.
// Non-numeric marks are skipped.
func HasSubject(marks types.SubjectMarks, name string, minMark float64) bool {
	needle := strings.ToLower(name)
	for key := range marks {
		if !strings.Contains(strings.ToLower(key), needle) {
			continue
		}
		mark, ok := marks.Value(key)
		if !ok {
			continue
		}
		if mark >= minMark {
			return true
		}
	}
	return false
}

// passes is HasSubject at PassMark for any of the names.
func passes(marks types.SubjectMarks, names ...string) bool {
	for _, name := range names {
		if HasSubject(marks, name, PassMark) {
			return true
		}
	}
	return false
}
