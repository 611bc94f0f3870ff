//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Defaults applied to catalog records that omit optional fields.
const (
	DefaultAddress = "Tiruchirappalli"
	DefaultContact = "N/A"
)

// CourseOffering is one (college, course) record of the catalog.
type CourseOffering struct {
	CollegeName       string   `json:"college_name"`
	CourseName        string   `json:"course_name"`
	Fees              int      `json:"fees"`
	Address           string   `json:"address,omitempty"`
	Contact           string   `json:"contact,omitempty"`
	StreamEligibility []string `json:"stream_eligibility,omitempty"`
}

// WithDefaults returns a copy with missing address and contact filled in.
func (c CourseOffering) WithDefaults() CourseOffering {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.Contact == "" {
		c.Contact = DefaultContact
	}
	if c.StreamEligibility != nil {
		c.StreamEligibility = append([]string(nil), c.StreamEligibility...)
	}
	return c
}

// AcceptsStream reports whether stream is listed in the catalog-declared eligibility.
func (c CourseOffering) AcceptsStream(stream string) bool {
	for _, s := range c.StreamEligibility {
		if s == stream {
			return true
		}
	}
	return false
}

// CourseSet is a set of lowercase course names.
type CourseSet map[string]struct{}

// NewCourseSet builds a set from names, lowercasing each one.
func NewCourseSet(names ...string) CourseSet {
	set := make(CourseSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts name in lowercase form.
func (s CourseSet) Add(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether the lowercase form of name is present. A nil set is empty.
func (s CourseSet) Has(name string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Names returns the members in unspecified order.
func (s CourseSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
