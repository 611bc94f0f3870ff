package eligibility

import (
	"testing"

	"github.com/jonathan/admission-advisor/internal/classify"
	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/stretchr/testify/assert"
)

func check(profile types.StudentProfile, offering types.CourseOffering) Decision {
	return Check(&profile, classify.Course(offering.CourseName), offering)
}

func offering(course string, streams ...string) types.CourseOffering {
	return types.CourseOffering{
		CollegeName:       "Test College",
		CourseName:        course,
		Fees:              50000,
		StreamEligibility: streams,
	}
}

func TestCheck_TenthOnlyDiploma(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification10th, Stream: types.StreamScience, Marks: 90}

	d := check(profile, offering("Diploma in Mechanical Engineering"))
	assert.True(t, d.Eligible)
	assert.Equal(t, NoteDiplomaFullTime, d.Note)

	d = check(profile, offering("B.Sc Physics"))
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonDegreeOnly10th, d.Reason)

	d = check(profile, offering("BA History", "Science"))
	assert.False(t, d.Eligible, "fallback streams never open degrees to 10th")
}

func TestCheck_TwelfthDiplomaIsLateralEntry(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamCommerce, Marks: 40}

	d := check(profile, offering("DIPLOMA in Civil Engineering"))
	assert.True(t, d.Eligible)
	assert.Equal(t, NoteLateralEntry, d.Note)
}

func TestCheck_UnknownQualificationFailsClosed(t *testing.T) {
	profile := types.StudentProfile{Qualification: "Graduate", Stream: types.StreamArts, Marks: 99}

	for _, course := range []string{"Diploma in Nursing", "B.A English", "BCA"} {
		d := check(profile, offering(course))
		assert.False(t, d.Eligible, course)
		assert.Equal(t, ReasonQualification, d.Reason)
	}
}

func TestCheck_Engineering(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.StudentProfile
		course   string
		eligible bool
		reason   string
	}{
		{
			name:     "commerce rejected",
			profile:  types.StudentProfile{Stream: types.StreamCommerce, Marks: 55},
			course:   "B.Tech Electronics",
			eligible: false,
			reason:   ReasonStreamMismatch,
		},
		{
			name:     "arts rejected even with maths",
			profile:  types.StudentProfile{Stream: types.StreamArts, Marks: 90, SubjectMarks: types.SubjectMarks{"Maths": 95}},
			course:   "Civil Engineering",
			eligible: false,
			reason:   ReasonStreamMismatch,
		},
		{
			name:     "vocational accepted without subjects",
			profile:  types.StudentProfile{Stream: types.StreamVocational, Marks: 50},
			course:   "Mechanical Engineering",
			eligible: true,
		},
		{
			name:     "biology without maths only biomedical",
			profile:  types.StudentProfile{Stream: types.StreamBiology, Marks: 80, SubjectMarks: types.SubjectMarks{"Biology": 90}},
			course:   "B.E Biomedical Engineering",
			eligible: true,
		},
		{
			name:     "biology without maths rejected for mechanical",
			profile:  types.StudentProfile{Stream: types.StreamBiology, Marks: 80, SubjectMarks: types.SubjectMarks{"Biology": 90}},
			course:   "Mechanical Engineering",
			eligible: false,
			reason:   ReasonRequiresMaths,
		},
		{
			name:     "biology with failing maths still needs maths",
			profile:  types.StudentProfile{Stream: types.StreamBiology, Marks: 80, SubjectMarks: types.SubjectMarks{"Maths": 20}},
			course:   "Mechanical Engineering",
			eligible: false,
			reason:   ReasonRequiresMaths,
		},
		{
			name:     "biology with maths accepted",
			profile:  types.StudentProfile{Stream: types.StreamBiology, Marks: 80, SubjectMarks: types.SubjectMarks{"Business Maths": 60}},
			course:   "Mechanical Engineering",
			eligible: true,
		},
		{
			name:     "science with physics only",
			profile:  types.StudentProfile{Stream: types.StreamScience, Marks: 75, SubjectMarks: types.SubjectMarks{"Physics": 70}},
			course:   "Mechanical Engineering",
			eligible: true,
		},
		{
			name:     "science without maths or physics",
			profile:  types.StudentProfile{Stream: types.StreamScience, Marks: 75, SubjectMarks: types.SubjectMarks{"Chemistry": 70}},
			course:   "Mechanical Engineering",
			eligible: false,
			reason:   ReasonSubjects,
		},
		{
			name:     "computer branch with physics only rejected",
			profile:  types.StudentProfile{Stream: types.StreamScience, Marks: 75, SubjectMarks: types.SubjectMarks{"Physics": 70}},
			course:   "B.E Computer Science",
			eligible: false,
			reason:   ReasonRequiresMathsCS,
		},
		{
			name:     "computer branch with computer subject and physics",
			profile:  types.StudentProfile{Stream: types.StreamScience, Marks: 75, SubjectMarks: types.SubjectMarks{"Physics": 70, "Computer Science": 88}},
			course:   "B.E Computer Science",
			eligible: true,
		},
		{
			name:     "computer science stream skips computer subject check",
			profile:  types.StudentProfile{Stream: types.StreamComputerScience, Marks: 75, SubjectMarks: types.SubjectMarks{"Physics": 70}},
			course:   "B.E Computer Science",
			eligible: true,
		},
		{
			name:     "non-numeric marks are skipped",
			profile:  types.StudentProfile{Stream: types.StreamScience, Marks: 75, SubjectMarks: types.SubjectMarks{"Maths": "A+", "Mathematics": "70"}},
			course:   "Mechanical Engineering",
			eligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.profile.Qualification = types.Qualification12th
			d := check(tt.profile, offering(tt.course))
			assert.Equal(t, tt.eligible, d.Eligible)
			if !tt.eligible {
				assert.Equal(t, tt.reason, d.Reason)
			}
		})
	}
}

func TestCheck_ArtsAndScienceFamilies(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.StudentProfile
		course   string
		streams  []string
		eligible bool
	}{
		{"bsc computer needs maths or cs", types.StudentProfile{Stream: types.StreamCommerce}, "B.Sc Computer Science", nil, false},
		{"bsc computer with cs stream", types.StudentProfile{Stream: types.StreamComputerScience}, "B.Sc Computer Science", nil, true},
		{"bsc data with maths", types.StudentProfile{Stream: types.StreamCommerce, SubjectMarks: types.SubjectMarks{"Maths": 50}}, "B.Sc Data Analytics", nil, true},
		{"bsc micro with botany", types.StudentProfile{Stream: types.StreamScience, SubjectMarks: types.SubjectMarks{"Botany": 60}}, "B.Sc Microbiology", nil, true},
		{"bsc bio with biology stream", types.StudentProfile{Stream: types.StreamBiology}, "B.Sc Biochemistry", nil, true},
		{"bsc bio without biology", types.StudentProfile{Stream: types.StreamScience}, "B.Sc Biotechnology", nil, false},
		{"general bsc science", types.StudentProfile{Stream: types.StreamScience}, "B.Sc Physics", nil, true},
		{"general bsc arts", types.StudentProfile{Stream: types.StreamArts}, "B.Sc Physics", nil, false},
		{"general bsc commerce", types.StudentProfile{Stream: types.StreamCommerce}, "B.Sc Mathematics", nil, false},
		{"bca any stream", types.StudentProfile{Stream: types.StreamArts}, "BCA", nil, true},
		{"bcom commerce stream", types.StudentProfile{Stream: types.StreamCommerce}, "B.Com General", nil, true},
		{"bcom accountancy subject", types.StudentProfile{Stream: types.StreamScience, SubjectMarks: types.SubjectMarks{"Accountancy": 45}}, "B.Com Corporate Secretaryship", nil, true},
		{"bba business subject", types.StudentProfile{Stream: types.StreamScience, SubjectMarks: types.SubjectMarks{"Business Studies": 60}}, "BBA", nil, true},
		{"bba science without subjects", types.StudentProfile{Stream: types.StreamScience}, "BBA", nil, false},
		{"ba open to all", types.StudentProfile{Stream: types.StreamScience}, "B.A Tamil", nil, true},
		{"fallback listed", types.StudentProfile{Stream: types.StreamBiology}, "MBBS", []string{"Biology", "Science"}, true},
		{"fallback not listed", types.StudentProfile{Stream: types.StreamArts}, "MBBS", []string{"Biology"}, false},
		{"fallback case-sensitive", types.StudentProfile{Stream: "biology"}, "MBBS", []string{"Biology"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.profile.Qualification = types.Qualification12th
			tt.profile.Marks = 70
			d := check(tt.profile, offering(tt.course, tt.streams...))
			assert.Equal(t, tt.eligible, d.Eligible)
		})
	}
}

func TestCheck_PercentageFloor(t *testing.T) {
	for _, qualification := range []string{types.Qualification10th, types.Qualification12th} {
		profile := types.StudentProfile{Qualification: qualification, Stream: types.StreamScience, Marks: 34.9}
		for _, course := range []string{"Diploma in EEE", "B.A English", "BCA"} {
			d := check(profile, offering(course))
			assert.False(t, d.Eligible, "%s %s", qualification, course)
		}
	}

	profile := types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamArts, Marks: 35}
	assert.True(t, check(profile, offering("B.A English")).Eligible)
}

func TestCheck_EngineeringTiers(t *testing.T) {
	maths := types.SubjectMarks{"Maths": 70}

	profile := types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamScience, Marks: 59, SubjectMarks: maths}
	d := check(profile, offering("Civil Engineering"))
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonBelowDegreeCut, d.Reason)

	profile.Stream = types.StreamVocational
	assert.True(t, check(profile, offering("Civil Engineering")).Eligible, "vocational is exempt from the 60% cut")

	profile = types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamScience, Marks: 62, SubjectMarks: maths}
	d = check(profile, offering("Electronics and Communication Engineering"))
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonBelowHighDemand, d.Reason)

	profile.Marks = 65
	assert.True(t, check(profile, offering("Electronics and Communication Engineering")).Eligible)

	// The tiers key on the word "engineering"; B.E/B.Tech-only names skip them.
	profile.Marks = 50
	assert.True(t, check(profile, offering("B.Tech Mechanical")).Eligible)

	// Diplomas are never subject to the degree tiers.
	assert.True(t, check(profile, offering("Diploma in Computer Engineering")).Eligible)
}

func TestCheck_SpecScenarios(t *testing.T) {
	science := types.StudentProfile{
		Qualification: types.Qualification12th,
		Stream:        types.StreamScience,
		Marks:         72,
		SubjectMarks:  types.SubjectMarks{"Maths": 85},
	}
	assert.True(t, check(science, offering("B.E Computer Science")).Eligible)

	commerce := types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamCommerce, Marks: 55}
	assert.False(t, check(commerce, offering("B.Tech Electronics")).Eligible)
}

func TestCheck_EmptyCourseNameRejected(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamScience, Marks: 80}
	assert.False(t, check(profile, offering("", "Science")).Eligible)
}

func TestHasSubject(t *testing.T) {
	marks := types.SubjectMarks{
		"Business Mathematics": 82,
		"PHYSICS":              "34",
		"Computer Science":     "n/a",
	}

	assert.True(t, HasSubject(marks, "math", PassMark))
	assert.True(t, HasSubject(marks, "Math", 80))
	assert.False(t, HasSubject(marks, "Math", 83))
	assert.False(t, HasSubject(marks, "physics", PassMark), "34 is below the pass mark")
	assert.True(t, HasSubject(marks, "physics", 34))
	assert.False(t, HasSubject(marks, "Computer", PassMark), "non-numeric marks are skipped")
	assert.False(t, HasSubject(nil, "Math", PassMark))
}
