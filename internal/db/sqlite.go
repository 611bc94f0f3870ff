package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/admission-advisor/internal/types"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS applications (
	id               TEXT PRIMARY KEY,
	reference_id     TEXT NOT NULL UNIQUE,
	college          TEXT NOT NULL,
	student_name     TEXT NOT NULL,
	parent_name      TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL,
	gender           TEXT NOT NULL,
	dob              TEXT NOT NULL,
	community        TEXT NOT NULL,
	address          TEXT NOT NULL,
	qualification    TEXT NOT NULL,
	stream           TEXT NOT NULL,
	marks_percentage REAL NOT NULL DEFAULT 0,
	course_applied   TEXT NOT NULL,
	message          TEXT NOT NULL DEFAULT '',
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_applications_college ON applications (college);
`

// SQLite stores applications in a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the schema.
// ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() {
	_ = s.db.Close()
}

// InsertApplication stores a new application.
func (s *SQLite) InsertApplication(ctx context.Context, app *types.Application) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID.String(), app.ReferenceID, app.College, app.StudentName, app.ParentName, app.Email, app.Phone,
		app.Gender, app.DOB, app.Community, app.Address, app.Qualification, app.Stream,
		app.MarksPercentage, app.CourseApplied, app.Message, app.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting application: %w", err)
	}
	return nil
}

// ApplicationExists checks for an application to college with the same email or phone.
func (s *SQLite) ApplicationExists(ctx context.Context, college, email, phone string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE college = ? AND (email = ? OR phone = ?))`,
		college, email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking duplicate application: %w", err)
	}
	return exists, nil
}

// ListApplications returns all applications, newest first.
func (s *SQLite) ListApplications(ctx context.Context) ([]types.Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var app types.Application
		var id string
		if err := rows.Scan(append([]any{&id}, applicationFields(&app)...)...); err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}
		if app.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing application id %q: %w", id, err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating applications: %w", err)
	}
	return apps, nil
}
