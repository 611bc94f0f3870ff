package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ReloadHook observes reload outcomes. err is nil on success.
type ReloadHook func(cat *Catalog, err error)

// Store serves the current catalog snapshot and replaces it as a whole on
// reload. Readers never observe a partially loaded catalog.
type Store struct {
	source  Source
	current atomic.Pointer[Catalog]
	mu      sync.Mutex // serializes reloads
	onLoad  ReloadHook
}

// NewStore creates a store around source without loading it.
// Current returns an empty catalog until the first successful Reload.
func NewStore(source Source, onLoad ReloadHook) *Store {
	s := &Store{source: source, onLoad: onLoad}
	s.current.Store(New(nil))
	return s
}

// NewStaticStore wraps an already built catalog. Reload is a no-op.
func NewStaticStore(cat *Catalog) *Store {
	s := &Store{}
	s.current.Store(cat)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Source returns where the store loads from; nil for a static store.
func (s *Store) Source() Source {
	return s.source
}

// Reload reads the source and swaps in the new catalog. On failure the
// previous catalog stays active.
func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	if s.source == nil {
		return s.Current(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.load(ctx)
	if s.onLoad != nil {
		s.onLoad(cat, err)
	}
	if err != nil {
		return s.Current(), err
	}

	s.current.Store(cat)
	log.Printf("[catalog] loaded %d offerings (%d courses) from %s", cat.Len(), len(cat.courseNames), s.source)
	return cat, nil
}

func (s *Store) load(ctx context.Context) (*Catalog, error) {
	data, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", s.source, err)
	}

	offerings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog from %s: %w", s.source, err)
	}

	cat := New(offerings)
	cat.source = s.source.String()
	cat.loadedAt = time.Now()
	return cat, nil
}
