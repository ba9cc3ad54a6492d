package storage

import (
	"context"
	"errors"
	"sync"
)

// Memory keeps the document in process memory. Saves can be made to fail
// with FailSaves to exercise error paths.
type Memory struct {
	mu       sync.Mutex
	data     []byte
	saves    int
	failWith error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns an in-memory backend preloaded with data.
func NewMemoryWith(data []byte) *Memory {
	return &Memory{data: append([]byte(nil), data...)}
}

// Load implements Backend.
func (m *Memory) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

// Save implements Backend.
func (m *Memory) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// FailSaves makes subsequent saves return err; nil restores normal saves.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Saves returns the number of successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// ErrQuotaExceeded mimics a full storage medium in tests.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// Path implements Backend.
func (m *Memory) Path() string { return "" }

// Close implements Backend.
func (m *Memory) Close() error { return nil }
