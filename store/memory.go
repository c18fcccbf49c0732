package store

import (
	"context"
	"sync"
)

// Memory is an in-process [Store]. It does not survive restarts and is
// intended for tests and for callers that manage persistence themselves.
type Memory struct {
	mu    sync.RWMutex
	token string
	user  *UserRecord
	role  string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) GetToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) GetUser(context.Context) (*UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone(), nil
}

func (m *Memory) SetUser(_ context.Context, user *UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user.Clone()
	return nil
}

func (m *Memory) GetRole(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role, nil
}

func (m *Memory) SetRole(_ context.Context, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.role = role
	return nil
}

func (m *Memory) ClearAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	m.role = ""
	return nil
}
