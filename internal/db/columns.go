package db

import "github.com/jonathan/admission-advisor/internal/types"

const applicationColumns = `id, reference_id, college, student_name, parent_name, email, phone,
	gender, dob, community, address, qualification, stream, marks_percentage, course_applied,
	message, created_at`

// applicationFields lists scan targets in applicationColumns order without the id,
// which SQLite stores as text.
func applicationFields(app *types.Application) []any {
	return []any{
		&app.ReferenceID, &app.College, &app.StudentName, &app.ParentName, &app.Email, &app.Phone,
		&app.Gender, &app.DOB, &app.Community, &app.Address, &app.Qualification, &app.Stream,
		&app.MarksPercentage, &app.CourseApplied, &app.Message, &app.CreatedAt,
	}
}

// applicationDest lists every scan target in applicationColumns order.
func applicationDest(app *types.Application) []any {
	return append([]any{&app.ID}, applicationFields(app)...)
}
