package scoring

import (
	"testing"

	"github.com/jonathan/admission-advisor/internal/classify"
	"github.com/jonathan/admission-advisor/internal/types"
	"github.com/stretchr/testify/assert"
)

func score(profile types.StudentProfile, course, note string, ai types.CourseSet) Result {
	return Score(&profile, classify.Course(course), note, ai)
}

func TestScore_BaseAndDefaultReason(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification12th, Stream: types.StreamArts, Marks: 50}

	r := score(profile, "B.A History", "", nil)
	assert.Equal(t, BaseScore, r.Score)
	assert.Equal(t, []string{ReasonDefault}, r.Reasons)
	assert.Equal(t, ReasonDefault, r.Reason())
}

func TestScore_MarksTiers(t *testing.T) {
	tests := []struct {
		name    string
		marks   float64
		want    int
		reasons []string
	}{
		{"below good", 69.9, BaseScore, []string{ReasonDefault}},
		{"good", 70, BaseScore + 10 + 15, []string{ReasonDefault}},
		{"excellent", 80, BaseScore + 20 + 15, []string{ReasonExcellent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := types.StudentProfile{Qualification: types.Qualification12th, Marks: tt.marks}
			r := score(profile, "B.A English", "", nil)
			assert.Equal(t, tt.want, r.Score)
			assert.Equal(t, tt.reasons, r.Reasons)
		})
	}
}

func TestScore_SubjectStrength(t *testing.T) {
	profile := types.StudentProfile{
		Qualification: types.Qualification10th,
		Marks:         60,
		SubjectMarks:  types.SubjectMarks{"Maths": 85, "Physics": "90", "Biology": 95},
	}

	r := score(profile, "Diploma in Mechanical Engineering", "3 Years Full Time", nil)
	assert.Equal(t, BaseScore+15+10, r.Score)
	assert.Equal(t, []string{"**3 Years Full Time**", ReasonStrongMaths}, r.Reasons)

	// B.E names do not carry the word "engineering" so no subject boost applies.
	r = score(profile, "B.E Mechanical", "", nil)
	assert.Equal(t, BaseScore, r.Score)

	r = score(profile, "Diploma in Biomedical Engineering", "", nil)
	assert.Equal(t, BaseScore+15+10+15, r.Score)
	assert.Equal(t, []string{ReasonStrongMaths, ReasonStrongBiology}, r.Reasons)
}

func TestScore_CareerInterest(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification10th, Marks: 50, CareerInterest: "I want to write Software"}

	r := score(profile, "Diploma in Computer Engineering", "", nil)
	assert.Equal(t, BaseScore+25, r.Score)
	assert.Equal(t, []string{ReasonCareerMatch}, r.Reasons)

	profile.CareerInterest = "Doctor"
	r = score(profile, "Diploma in Medical Lab Technology", "", nil)
	assert.Equal(t, BaseScore+50, r.Score)
	assert.Equal(t, []string{ReasonMedical}, r.Reasons)

	// Both interests are evaluated independently.
	profile.CareerInterest = "medical software"
	r = score(profile, "Diploma in Bioinformatics and Data", "", nil)
	assert.Equal(t, BaseScore+25+50, r.Score)
	assert.Equal(t, []string{ReasonCareerMatch, ReasonMedical}, r.Reasons)
}

func TestScore_AIRecommended(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification10th, Marks: 50, CareerInterest: "robotics"}
	ai := types.NewCourseSet("Diploma in Mechatronics")

	r := score(profile, "DIPLOMA IN MECHATRONICS", "", ai)
	assert.Equal(t, BaseScore+40, r.Score)
	assert.Equal(t, []string{ReasonAIRecommended}, r.Reasons)

	r = score(profile, "Diploma in Mechatronics Engineering", "", ai)
	assert.Equal(t, BaseScore, r.Score, "membership is exact, not substring")

	r = score(profile, "Diploma in Mechatronics", "", types.CourseSet{})
	assert.Equal(t, BaseScore, r.Score)
}

func TestScore_DiplomaVsDegreeWeighting(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification12th, Marks: 64}

	r := score(profile, "Diploma in Civil Engineering", "Direct 2nd Year (Lateral Entry)", nil)
	assert.Equal(t, BaseScore+25, r.Score)
	assert.Equal(t, "**Direct 2nd Year (Lateral Entry)** Recommended foundation course.", r.Reason())

	profile.Marks = 65
	r = score(profile, "Diploma in Civil Engineering", "Direct 2nd Year (Lateral Entry)", nil)
	assert.Equal(t, BaseScore+5, r.Score)
	assert.Contains(t, r.Reason(), ReasonLateral)

	profile.Marks = 75
	r = score(profile, "B.Sc Physics", "", nil)
	assert.Equal(t, BaseScore+10+15, r.Score)

	// The 12th weighting never applies to 10th students.
	profile = types.StudentProfile{Qualification: types.Qualification10th, Marks: 50}
	r = score(profile, "Diploma in Civil Engineering", "3 Years Full Time", nil)
	assert.Equal(t, BaseScore, r.Score)
}

func TestScore_PreferredCourse(t *testing.T) {
	profile := types.StudentProfile{Qualification: types.Qualification12th, Marks: 50, PreferredCourse: "bca"}

	r := score(profile, "BCA (Bachelor of Computer Applications)", "", nil)
	assert.Equal(t, BaseScore+100, r.Score)
	assert.Equal(t, []string{ReasonPreferred}, r.Reasons)

	r = score(profile, "B.Com", "", nil)
	assert.Equal(t, BaseScore, r.Score)
}

func TestScore_ScenarioMathsBoost(t *testing.T) {
	profile := types.StudentProfile{
		Qualification: types.Qualification12th,
		Stream:        types.StreamScience,
		Marks:         72,
		SubjectMarks:  types.SubjectMarks{"Maths": 85},
	}

	r := score(profile, "Computer Science Engineering", "", nil)
	// good marks + strong maths + degree priority
	assert.Equal(t, BaseScore+10+15+15, r.Score)
	assert.Equal(t, ReasonStrongMaths, r.Reason())
}
