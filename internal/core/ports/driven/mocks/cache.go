package mocks

import (
	"context"
	"errors"
	"time"
)

// MockCache is an in-memory Cache for testing. It never expires entries;
// TTL handling is covered by the adapter tests.
type MockCache struct {
	Entries map[string][]byte

	// GetCount and SetCount track cache traffic
	GetCount int
	SetCount int

	// FailReads makes Get return an error (cache-error-as-miss tests)
	FailReads bool

	// FailWrites makes Set return an error
	FailWrites bool
}

// NewMockCache creates a new MockCache
func NewMockCache() *MockCache {
	return &MockCache{Entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.GetCount++
	if m.FailReads {
		return nil, false, errors.New("cache read failed")
	}
	data, ok := m.Entries[key]
	return data, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.SetCount++
	if m.FailWrites {
		return errors.New("cache write failed")
	}
	m.Entries[key] = value
	return nil
}

func (m *MockCache) HealthCheck(ctx context.Context) error {
	if m.FailReads {
		return errors.New("cache unavailable")
	}
	return nil
}
