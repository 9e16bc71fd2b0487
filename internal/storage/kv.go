package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// KV is the string key-value surface persistence is written against.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Quota rejects writes whose value is larger than Limit bytes.
type Quota struct {
	KV
	Limit int
}

func (q Quota) Set(ctx context.Context, key, value string) error {
	if q.Limit > 0 && len(value) > q.Limit {
		return fmt.Errorf("%w: %d > %d bytes for %q", ErrQuotaExceeded, len(value), q.Limit, key)
	}
	return q.KV.Set(ctx, key, value)
}
