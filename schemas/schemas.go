// Package schemas embeds the JSON Schemas for documents the advisor reads.
package schemas

import _ "embed"

// Catalog is the schema of a course catalog document.
//
//go:embed catalog.schema.json
var Catalog string

// StudentProfile is the schema of a suggestion request body.
//
//go:embed student_profile.schema.json
var StudentProfile string
