// Package tokenstore provides implementations of the single persisted
// credential slot: in-memory (tests), file-backed (default), and
// Redis-backed.
package tokenstore

import (
	"context"
	"sync"
)

// Memory holds the token in process memory only. Sessions do not survive
// a restart; intended for tests and throwaway runs.
type Memory struct {
	mu    sync.Mutex
	token string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
