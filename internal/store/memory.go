package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rgehrsitz/rmgo/internal/domain"
)

// MemoryProfileStore keeps profiles in process memory.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]domain.Profile)}
}

// Create assigns a new ID when the profile has none.
func (s *MemoryProfileStore) Create(_ context.Context, p domain.Profile) (domain.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
	return p, nil
}

func (s *MemoryProfileStore) Get(_ context.Context, id string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryProfileStore) Update(_ context.Context, p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		return domain.Profile{}, ErrNotFound
	}
	s.profiles[p.ID] = p
	return p, nil
}

// List returns profiles ordered by name, then ID.
func (s *MemoryProfileStore) List(_ context.Context) ([]domain.Profile, error) {
	s.mu.RLock()
	out := make([]domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryProfileStore) Close() {}
