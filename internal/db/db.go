// Package db persists submitted admission applications in PostgreSQL or SQLite.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/admission-advisor/internal/types"
)

// ApplicationStore is the persistence contract used by the applications service.
type ApplicationStore interface {
	// InsertApplication stores a new application.
	InsertApplication(ctx context.Context, app *types.Application) error
	// ApplicationExists reports whether college already has an application
	// with the same email or the same phone.
	ApplicationExists(ctx context.Context, college, email, phone string) (bool, error)
	// ListApplications returns every application, newest first.
	ListApplications(ctx context.Context) ([]types.Application, error)
	// Close releases the underlying connections.
	Close()
}

// SQLitePrefix selects the SQLite backend in a database URL.
const SQLitePrefix = "sqlite://"

// Open connects to the store named by databaseURL and ensures its schema.
// postgres:// and postgresql:// URLs use PostgreSQL; sqlite://path uses SQLite.
func Open(ctx context.Context, databaseURL string) (ApplicationStore, error) {
	switch {
	case strings.HasPrefix(databaseURL, SQLitePrefix):
		return OpenSQLite(ctx, strings.TrimPrefix(databaseURL, SQLitePrefix))
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		db, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}
	return nil, fmt.Errorf("unsupported database URL %q: want postgres:// or %s", databaseURL, SQLitePrefix)
}
