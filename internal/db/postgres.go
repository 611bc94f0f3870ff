package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/admission-advisor/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS applications (
	id               UUID PRIMARY KEY,
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
	marks_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
	course_applied   TEXT NOT NULL,
	message          TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_applications_college ON applications (college);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the applications table if needed.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// InsertApplication stores a new application
func (db *DB) InsertApplication(ctx context.Context, app *types.Application) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO applications (id, reference_id, college, student_name, parent_name, email, phone,
			gender, dob, community, address, qualification, stream, marks_percentage, course_applied,
			message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		app.ID, app.ReferenceID, app.College, app.StudentName, app.ParentName, app.Email, app.Phone,
		app.Gender, app.DOB, app.Community, app.Address, app.Qualification, app.Stream,
		app.MarksPercentage, app.CourseApplied, app.Message, app.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// ApplicationExists checks for an application to college with the same email or phone
func (db *DB) ApplicationExists(ctx context.Context, college, email, phone string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM applications WHERE college = $1 AND (email = $2 OR phone = $3)
		)`,
		college, email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate application: %w", err)
	}
	return exists, nil
}

// ListApplications returns all applications, newest first
func (db *DB) ListApplications(ctx context.Context) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC, reference_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var app types.Application
		if err := rows.Scan(applicationDest(&app)...); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}
