package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-admin/internal/listing"
	"github.com/spec-kit/helpdesk-admin/internal/table"
)

// TableState is everything needed to rebuild one admin table for a session.
type TableState struct {
	Query     listing.Query `json:"query"`
	Table     table.State   `json:"table"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TableStateStore persists table state per session and resource.
type TableStateStore interface {
	Load(ctx context.Context, session, resource string) (TableState, bool, error)
	Save(ctx context.Context, session, resource string, state TableState) error
	Delete(ctx context.Context, session, resource string) error
}

func tableStateKey(session, resource string) string {
	return (*Redis)(nil).Key("table", session, resource)
}

type redisTableStateStore struct {
	client *redis.Client
	key    func(session, resource string) string
	ttl    time.Duration
}

// NewRedisTableStateStore stores state as JSON strings that expire after ttl
// of inactivity. A zero ttl keeps them forever.
func NewRedisTableStateStore(r *Redis, ttl time.Duration) TableStateStore {
	store := &redisTableStateStore{key: tableStateKey, ttl: ttl}
	if r != nil {
		store.client = r.Client
		store.key = func(session, resource string) string { return r.Key("table", session, resource) }
	}
	return store
}

func (s *redisTableStateStore) Load(ctx context.Context, session, resource string) (TableState, bool, error) {
	if s.client == nil {
		return TableState{}, false, errors.New("redis client not configured")
	}
	raw, err := s.client.Get(ctx, s.key(session, resource)).Bytes()
	if errors.Is(err, redis.Nil) {
		return TableState{}, false, nil
	}
	if err != nil {
		return TableState{}, false, err
	}
	var state TableState
	if err := json.Unmarshal(raw, &state); err != nil {
		return TableState{}, false, fmt.Errorf("decode table state: %w", err)
	}
	return state, true, nil
}

func (s *redisTableStateStore) Save(ctx context.Context, session, resource string, state TableState) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session, resource), raw, s.ttl).Err()
}

func (s *redisTableStateStore) Delete(ctx context.Context, session, resource string) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Del(ctx, s.key(session, resource)).Err()
}

// MemoryTableStateStore keeps state in process. Used by the CLI and tests.
type MemoryTableStateStore struct {
	mu     sync.RWMutex
	states map[string]TableState
}

// NewMemoryTableStateStore returns an empty store.
func NewMemoryTableStateStore() *MemoryTableStateStore {
	return &MemoryTableStateStore{states: make(map[string]TableState)}
}

func (s *MemoryTableStateStore) Load(_ context.Context, session, resource string) (TableState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[tableStateKey(session, resource)]
	return state, ok, nil
}

func (s *MemoryTableStateStore) Save(_ context.Context, session, resource string, state TableState) error {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[tableStateKey(session, resource)] = state
	return nil
}

func (s *MemoryTableStateStore) Delete(_ context.Context, session, resource string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, tableStateKey(session, resource))
	return nil
}
