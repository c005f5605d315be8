package kvstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore mantém as chaves em memória do processo.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	counters map[string]memCounter
	now      func() time.Time
}

type memCounter struct {
	n       int64
	resetAt time.Time
}

// NewMemoryStore cria um armazenamento vazio.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		counters: make(map[string]memCounter),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := s.counters[key]
	if c.n == 0 || !now.Before(c.resetAt) {
		c = memCounter{resetAt: now.Add(window)}
	}
	c.n++
	s.counters[key] = c
	return c.n, nil
}
