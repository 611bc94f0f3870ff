// Package chat answers free-form admission questions using catalog excerpts
// as grounding for the counselor prompt.
package chat

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/admission-advisor/internal/types"
)

const (
	maxOverview = 30
	maxMatches  = 20
	minTokenLen = 2
)

var stopWords = toSet(
	"what", "which", "where", "when", "how", "who", "whom", "whose", "why",
	"is", "are", "was", "were", "be", "been", "being",
	"the", "a", "an", "and", "or", "but", "if", "then", "else",
	"at", "by", "for", "from", "in", "into", "of", "off", "on", "onto", "out", "over", "to", "up", "with",
	"can", "could", "will", "would", "shall", "should", "may", "might", "must",
	"tell", "me", "about", "give", "list", "show", "find", "best", "good", "top", "colleges", "college", "courses",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ContextEntry is one catalog excerpt handed to the counselor prompt.
// Overview entries only carry the college and course.
type ContextEntry struct {
	CollegeName       string   `json:"college_name"`
	CourseName        string   `json:"course_name"`
	Fees              *int     `json:"fees,omitempty"`
	Address           string   `json:"address,omitempty"`
	Contact           string   `json:"contact,omitempty"`
	StreamEligibility []string `json:"stream_eligibility,omitempty"`
}

func fullEntry(o types.CourseOffering) ContextEntry {
	fees := o.Fees
	return ContextEntry{
		CollegeName:       o.CollegeName,
		CourseName:        o.CourseName,
		Fees:              &fees,
		Address:           o.Address,
		Contact:           o.Contact,
		StreamEligibility: o.StreamEligibility,
	}
}

// Tokens splits a query into lowercase search tokens, dropping stop words
// and tokens shorter than two characters.
func Tokens(query string) []string {
	q := strings.ToLower(query)
	q = strings.ReplaceAll(q, "?", "")
	q = strings.NewReplacer(".", " ", ",", " ").Replace(q)

	var tokens []string
	for _, field := range strings.Fields(q) {
		if utf8.RuneCountInString(field) < minTokenLen {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// RetrieveContext selects the offerings relevant to query. A query with no
// usable tokens yields an overview of distinct (college, course) pairs.
func RetrieveContext(query string, offerings []types.CourseOffering) []ContextEntry {
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return overview(offerings)
	}

	type scored struct {
		score int
		entry ContextEntry
	}
	var matches []scored
	for _, o := range offerings {
		firstStream := ""
		if len(o.StreamEligibility) > 0 {
			firstStream = o.StreamEligibility[0]
		}
		haystack := strings.ToLower(o.CourseName + " " + o.CollegeName + " " + firstStream)
		courseWords := strings.Fields(strings.ToLower(o.CourseName))

		score := 0
		for _, token := range tokens {
			if !strings.Contains(haystack, token) {
				continue
			}
			score++
			for _, w := range courseWords {
				if w == token {
					score += 2
					break
				}
			}
		}
		if score > 0 {
			matches = append(matches, scored{score: score, entry: fullEntry(o)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	out := make([]ContextEntry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

func overview(offerings []types.CourseOffering) []ContextEntry {
	type pair struct{ college, course string }
	seen := make(map[pair]struct{})
	var out []ContextEntry
	for _, o := range offerings {
		key := pair{o.CollegeName, o.CourseName}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ContextEntry{CollegeName: o.CollegeName, CourseName: o.CourseName})
		if len(out) == maxOverview {
			break
		}
	}
	return out
}
