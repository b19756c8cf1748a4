package cache

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// StubRepository is an in-memory Repository for tests. Setting FailWrites
// simulates a storage layer rejecting writes (e.g. quota exhaustion).
type StubRepository struct {
	Entries    map[string]string
	FailWrites bool
}

func NewStubRepository() *StubRepository {
	return &StubRepository{Entries: make(map[string]string)}
}

func (s *StubRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := s.Entries[key]
	return value, ok, nil
}

func (s *StubRepository) Set(ctx context.Context, key string, value string) error {
	if s.FailWrites {
		return errors.New("write rejected")
	}
	s.Entries[key] = value
	return nil
}

func (s *StubRepository) Remove(ctx context.Context, key string) error {
	delete(s.Entries, key)
	return nil
}

func (s *StubRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0, len(s.Entries))
	for key := range s.Entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
