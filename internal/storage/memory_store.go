package storage

import (
	"context"
	"sort"
)

// MemoryStore keeps values in a map. Used by tests and dry runs.
type MemoryStore struct {
	values map[string]string
	// FailSet, when non-nil, is returned by every Set call.
	FailSet error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if s.FailSet != nil {
		return s.FailSet
	}
	if key == "" {
		return ErrEmptyKey
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
