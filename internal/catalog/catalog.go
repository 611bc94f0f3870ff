// Package catalog holds the course catalog as an immutable value and swaps it
// atomically on reload.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	rootschemas "github.com/jonathan/admission-advisor/schemas"

	"github.com/jonathan/admission-advisor/internal/classify"
	"github.com/jonathan/admission-advisor/internal/schemas"
	"github.com/jonathan/admission-advisor/internal/types"
)

// ErrEmptySource is returned when a catalog source yields no bytes.
var ErrEmptySource = errors.New("catalog source is empty")

// Entry pairs an offering with its precomputed course descriptor.
type Entry struct {
	Offering types.CourseOffering
	Course   classify.Descriptor
}

// Catalog is a read-only snapshot of the offerings. It is never mutated after
// New returns, so it can be shared across concurrent requests.
type Catalog struct {
	entries     []Entry
	courseNames []string
	courses     types.CourseSet
	source      string
	loadedAt    time.Time
}

// New builds a catalog from offerings. Missing address and contact fields are
// defaulted and every course name is classified once.
func New(offerings []types.CourseOffering) *Catalog {
	c := &Catalog{
		entries:  make([]Entry, 0, len(offerings)),
		courses:  types.NewCourseSet(),
		loadedAt: time.Now(),
	}
	for _, o := range offerings {
		o = o.WithDefaults()
		c.entries = append(c.entries, Entry{Offering: o, Course: classify.Course(o.CourseName)})

		lower := strings.ToLower(strings.TrimSpace(o.CourseName))
		if lower == "" || c.courses.Has(lower) {
			continue
		}
		c.courses.Add(lower)
		c.courseNames = append(c.courseNames, o.CourseName)
	}
	return c
}

// Parse decodes and schema-checks a catalog document.
func Parse(data []byte) ([]types.CourseOffering, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptySource
	}
	if err := schemas.ValidateBytes(rootschemas.Catalog, data); err != nil {
		return nil, fmt.Errorf("catalog failed schema validation: %w", err)
	}

	var offerings []types.CourseOffering
	if err := json.Unmarshal(data, &offerings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return offerings, nil
}

// Len returns the number of offerings.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the offerings with their descriptors. Callers must not modify the slice.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// Offerings returns a copy of the offerings in catalog order.
func (c *Catalog) Offerings() []types.CourseOffering {
	if c == nil {
		return nil
	}
	out := make([]types.CourseOffering, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Offering
	}
	return out
}

// CourseNames returns the distinct course names in first-seen order.
// Names differing only in case are reported once.
func (c *Catalog) CourseNames() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.courseNames...)
}

// HasCourse reports whether a course with this name exists, ignoring case.
func (c *Catalog) HasCourse(name string) bool {
	if c == nil {
		return false
	}
	return c.courses.Has(strings.TrimSpace(name))
}

// Source describes where the snapshot was loaded from.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// LoadedAt returns when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}
