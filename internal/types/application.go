//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NotAvailable is the placeholder for optional academic fields on an application.
const NotAvailable = "N/A"

// ApplicationRequest is the body submitted from the results page.
// Field names follow the frontend's camelCase payload.
type ApplicationRequest struct {
	College         string `json:"college" validate:"required"`
	StudentName     string `json:"studentName" validate:"required"`
	ParentName      string `json:"parentName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Gender          string `json:"gender" validate:"required"`
	DOB             string `json:"dob" validate:"required"`
	Community       string `json:"community" validate:"required"`
	Address         string `json:"address" validate:"required"`
	Qualification   string `json:"qualification,omitempty"`
	Stream          string `json:"stream,omitempty"`
	MarksPercentage string `json:"marksPercentage,omitempty"`
	CourseApplied   string `json:"courseApplied,omitempty"`
	Message         string `json:"message,omitempty"`
}

// Validate validates the ApplicationRequest using the validator.
func (r *ApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ApplyDefaults fills the optional academic fields with NotAvailable.
func (r *ApplicationRequest) ApplyDefaults() {
	if r.Qualification == "" {
		r.Qualification = NotAvailable
	}
	if r.Stream == "" {
		r.Stream = NotAvailable
	}
	if r.MarksPercentage == "" {
		r.MarksPercentage = NotAvailable
	}
	if r.CourseApplied == "" {
		r.CourseApplied = NotAvailable
	}
}

// Application is a persisted admission application.
type Application struct {
	ID              uuid.UUID `json:"id"`
	ReferenceID     string    `json:"reference_id"`
	College         string    `json:"college"`
	StudentName     string    `json:"studentName"`
	ParentName      string    `json:"parentName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Gender          string    `json:"gender"`
	DOB             string    `json:"dob"`
	Community       string    `json:"community"`
	Address         string    `json:"address"`
	Qualification   string    `json:"qualification"`
	Stream          string    `json:"stream"`
	MarksPercentage float64   `json:"marksPercentage"`
	CourseApplied   string    `json:"courseApplied"`
	Message         string    `json:"message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubmitResponse is returned after an application is accepted.
type SubmitResponse struct {
	Message     string `json:"message"`
	ReferenceID string `json:"reference_id"`
}
