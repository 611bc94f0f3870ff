// Package observability provides formatted output for the CLI and Prometheus metrics for the server.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/admission-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the CLI
type Printer struct {
	out      io.Writer
	maxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, maxItems: maxItemsToShow}
}

// WithMaxItems returns a printer that lists at most n items (n <= 0 lists all).
func (p *Printer) WithMaxItems(n int) *Printer {
	return &Printer{out: p.out, maxItems: n}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", inner, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", inner, truncate(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a summary of the student profile.
func (p *Printer) PrintProfile(profile *types.StudentProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:           %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Qualification:  %s\n", profile.Qualification))
	sb.WriteString(fmt.Sprintf("Stream:         %s\n", profile.Stream))
	sb.WriteString(fmt.Sprintf("Marks:          %.1f%%", profile.Marks))

	if len(profile.SubjectMarks) > 0 {
		subjects := make([]string, 0, len(profile.SubjectMarks))
		for name := range profile.SubjectMarks {
			subjects = append(subjects, name)
		}
		sort.Strings(subjects)
		sb.WriteString("\nSubjects:")
		for _, name := range subjects {
			sb.WriteString(fmt.Sprintf("\n  • %s: %v", name, profile.SubjectMarks[name]))
		}
	}
	if profile.PreferredCourse != "" {
		sb.WriteString(fmt.Sprintf("\nPreferred:      %s", profile.PreferredCourse))
	}
	if profile.CareerInterest != "" {
		sb.WriteString(fmt.Sprintf("\nCareer goal:    %s", profile.CareerInterest))
	}

	p.printBox("STUDENT PROFILE", sb.String())
}

// PrintCareerMapping outputs the courses the AI matched to the career goal.
func (p *Printer) PrintCareerMapping(goal string, courses types.CourseSet) {
	if goal == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Goal: %s\n", goal))
	if len(courses) == 0 {
		sb.WriteString("No AI course matches (fallback)")
	} else {
		names := courses.Names()
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  • %s\n", name))
		}
	}

	p.printBox("CAREER GOAL MAPPING", strings.TrimRight(sb.String(), "\n"))
}

// PrintSuggestions outputs the ranked suggestions.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		p.printBox("SUGGESTIONS", "No eligible courses found for this profile.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total suggestions: %d\n\n", len(suggestions)))

	count := len(suggestions)
	if p.maxItems > 0 {
		count = min(count, p.maxItems)
	}
	for i := 0; i < count; i++ {
		s := suggestions[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, s.CourseName))
		sb.WriteString(fmt.Sprintf("    %s, %s\n", s.CollegeName, s.Address))
		sb.WriteString(fmt.Sprintf("    Score: %d  Fees: ₹%d\n", s.RelevanceScore, s.Fees))
		sb.WriteString(fmt.Sprintf("    %s", s.MatchReason))
		if s.AIAnalysis != "" {
			sb.WriteString(fmt.Sprintf("\n    AI: %s", s.AIAnalysis))
		}
		if i < count-1 {
			sb.WriteString("\n\n")
		}
	}

	if len(suggestions) > count {
		sb.WriteString(fmt.Sprintf("\n\n... and %d more suggestions", len(suggestions)-count))
	}

	p.printBox("SUGGESTIONS", sb.String())
}

// PrintCourseNames lists distinct catalog course names.
func (p *Printer) PrintCourseNames(names []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Distinct courses: %d", len(names)))
	for _, name := range names {
		sb.WriteString("\n  • " + name)
	}
	p.printBox("CATALOG COURSES", sb.String())
}
