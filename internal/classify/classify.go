// Package classify derives course-name facts once per offering so that the
// eligibility and scoring rules never rescan the name with ad-hoc substrings.
package classify

import "strings"

// Family is the degree family that selects which eligibility rule applies.
// Families are resolved in a fixed priority order; the first match wins.
type Family int

// Family values in priority order.
const (
	FamilyNone Family = iota
	FamilyEngineering
	FamilyBSc
	FamilyBCA
	FamilyCommerce
	FamilyArts
	FamilyFallback
)

var familyNames = map[Family]string{
	FamilyNone:        "none",
	FamilyEngineering: "engineering",
	FamilyBSc:         "bsc",
	FamilyBCA:         "bca",
	FamilyCommerce:    "commerce",
	FamilyArts:        "arts",
	FamilyFallback:    "fallback",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "unknown"
}

// familyRule pairs a family with the substrings that select it.
type familyRule struct {
	family   Family
	keywords []string
}

// familyRules is evaluated top to bottom.
var familyRules = []familyRule{
	{FamilyEngineering, []string{"engineering", "b.e", "b.tech"}},
	{FamilyBSc, []string{"b.sc"}},
	{FamilyBCA, []string{"bca"}},
	{FamilyCommerce, []string{"b.com", "bba"}},
	{FamilyArts, []string{"b.a", "arts"}},
}

// Descriptor holds every name-derived fact the rules consult.
type Descriptor struct {
	Name   string
	Lower  string
	Family Family

	// Diploma is true for any name containing "diploma".
	Diploma bool
	// EngineeringWord is the literal "engineering" test used by the
	// percentage tiers and subject boosts (narrower than FamilyEngineering).
	EngineeringWord bool
	// Computer is true for names containing "computer".
	Computer bool
	// ComputerOrData is the B.Sc computer/data branch test.
	ComputerOrData bool
	// Bio is true for names containing "bio".
	Bio bool
	// BioOrMicro is the B.Sc life-science branch test.
	BioOrMicro bool
	// Biomed is true for biomedical or biotech names, the engineering
	// branches open to Biology students without Maths.
	Biomed bool
	// HighDemand branches need a higher overall percentage.
	HighDemand bool
	// ComputingCareer matches a software/computing career interest.
	ComputingCareer bool
	// MedicalCareer matches a doctor/medical career interest.
	MedicalCareer bool
}

// Course classifies a course name.
func Course(name string) Descriptor {
	lower := strings.ToLower(name)
	d := Descriptor{
		Name:            name,
		Lower:           lower,
		Family:          familyOf(lower),
		Diploma:         strings.Contains(lower, "diploma"),
		EngineeringWord: strings.Contains(lower, "engineering"),
		Computer:        strings.Contains(lower, "computer"),
		ComputerOrData:  containsAny(lower, "computer", "data"),
		Bio:             strings.Contains(lower, "bio"),
		BioOrMicro:      containsAny(lower, "bio", "microbiology"),
		Biomed:          containsAny(lower, "biomedical", "biotech"),
		HighDemand:      containsAny(lower, "cse", "computer science", "data", "electronics"),
		ComputingCareer: containsAny(lower, "computer", "bca", "data"),
		MedicalCareer:   containsAny(lower, "bio", "medical"),
	}
	return d
}

// familyOf resolves the family of a lowercase course name.
// An empty name cannot be classified and yields FamilyNone.
func familyOf(lower string) Family {
	if strings.TrimSpace(lower) == "" {
		return FamilyNone
	}
	for _, rule := range familyRules {
		if containsAny(lower, rule.keywords...) {
			return rule.family
		}
	}
	return FamilyFallback
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs ...string) bool {
	return containsAny(s, subs...)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
