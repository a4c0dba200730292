package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Keys under which the tracker persists its collections and counters.
const (
	KeySessions       = "sessions"
	KeyHabits         = "habits"
	KeyMoods          = "moods"
	KeyPoints         = "points"
	KeyStreak         = "streak"
	KeyLastActiveDate = "lastActiveDate"
)

var ErrEmptyKey = errors.New("storage: empty key")

// Store is a string-keyed, string-valued local store. Every Set is an
// independent write; there is no transaction across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Load decodes the JSON value stored under key. A missing key, a JSON null,
// a read failure or malformed data all yield fallback.
func Load[T any](ctx context.Context, s Store, key string, fallback T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return fallback
	}
	return out
}

// Save encodes value as JSON and writes it under key.
func Save(ctx context.Context, s Store, key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
