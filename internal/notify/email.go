// Package notify delivers application confirmations and submission events.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
	"time"

	"github.com/jonathan/admission-advisor/internal/types"
)

//go:embed templates/*
var templateFiles embed.FS

var (
	htmlConfirmation = htmltemplate.Must(htmltemplate.ParseFS(templateFiles, "templates/confirmation.html"))
	textConfirmation = texttemplate.Must(texttemplate.ParseFS(templateFiles, "templates/confirmation.txt"))
)

// Email is a rendered confirmation message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type confirmationData struct {
	*types.Application
	Marks string
	Year  int
}

// RenderConfirmation builds the confirmation email for a stored application.
func RenderConfirmation(app *types.Application) (*Email, error) {
	data := confirmationData{
		Application: app,
		Marks:       strconv.FormatFloat(app.MarksPercentage, 'f', -1, 64),
		Year:        app.CreatedAt.Year(),
	}
	if app.CreatedAt.IsZero() {
		data.Year = time.Now().Year()
	}

	var html, text bytes.Buffer
	if err := htmlConfirmation.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML confirmation: %w", err)
	}
	if err := textConfirmation.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text confirmation: %w", err)
	}

	return &Email{
		To:      app.Email,
		Subject: fmt.Sprintf("✅ Admission Received: %s @ %s", app.CourseApplied, app.College),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
