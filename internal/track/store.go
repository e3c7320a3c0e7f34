package track

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no track has the requested ID.
var ErrNotFound = errors.New("track not found")

// Store persists tracks.
type Store interface {
	Save(ctx context.Context, t *Track) error
	Get(ctx context.Context, id string) (*Track, error)
	List(ctx context.Context) ([]Track, error)
}

// MemoryStore keeps tracks in memory, in insertion order.
type MemoryStore struct {
	mu     sync.RWMutex
	tracks map[string]Track
	order  []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tracks: make(map[string]Track),
	}
}

// Save inserts the track or replaces the one with the same ID.
func (s *MemoryStore) Save(_ context.Context, t *Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tracks[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.tracks[t.ID] = *t
	return nil
}

// Get retrieves a track by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tracks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

// List returns all tracks in the order they were first saved.
func (s *MemoryStore) List(_ context.Context) ([]Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracks := make([]Track, 0, len(s.order))
	for _, id := range s.order {
		tracks = append(tracks, s.tracks[id])
	}
	return tracks, nil
}

var _ Store = (*MemoryStore)(nil)
