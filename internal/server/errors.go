// Package server provides the HTTP API for the admission advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/admission-advisor/internal/applications"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidCredentials indicates a failed dashboard login
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid username or password"
}

// ErrDuplicateApplication indicates the student already applied to the college
type ErrDuplicateApplication struct{}

func (e *ErrDuplicateApplication) Error() string {
	return "Application already submitted for this college with this Email or Phone."
}

// ErrCatalogUnavailable indicates the catalog could not be reloaded
type ErrCatalogUnavailable struct {
	Err error
}

func (e *ErrCatalogUnavailable) Error() string {
	return fmt.Sprintf("catalog unavailable: %v", e.Err)
}

func (e *ErrCatalogUnavailable) Unwrap() error { return e.Err }

// toHTTPError converts service errors into the typed errors above.
func toHTTPError(err error) error {
	if errors.Is(err, applications.ErrDuplicate) {
		return &ErrDuplicateApplication{}
	}
	return err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		credentials *ErrInvalidCredentials
		duplicate   *ErrDuplicateApplication
		catalog     *ErrCatalogUnavailable
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &duplicate):
		return http.StatusBadRequest
	case errors.As(err, &credentials):
		return http.StatusUnauthorized
	case errors.As(err, &catalog):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
