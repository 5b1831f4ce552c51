// Package obslog implements the append-only observation log behind the
// Monitor, with an in-memory store for embedded use and a multi-backend
// SQL store (SQLite, MySQL, PostgreSQL) for persistence across runs.
package obslog

import (
	"fmt"
	"sync"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// NewStore creates an observation store for the configured backend.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.ObservationStore, error) {
	switch backend {
	case schema.MemoryBackend, "":
		return NewMemoryStore(), nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewSQLStore(backend, connStr)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// MemoryStore is the default in-process observation log.
type MemoryStore struct {
	mu           sync.Mutex
	observations []schema.Observation
}

var _ contract.ObservationStore = &MemoryStore{} // Compile-time check

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds one observation to the log.
func (s *MemoryStore) Append(obs schema.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observations = append(s.observations, obs)
	return nil
}

// Window returns the most recent limit observations in insertion order;
// limit <= 0 returns all of them.
func (s *MemoryStore) Window(limit int) ([]schema.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := 0
	if limit > 0 && len(s.observations) > limit {
		start = len(s.observations) - limit
	}
	out := make([]schema.Observation, len(s.observations)-start)
	copy(out, s.observations[start:])
	return out, nil
}

// Count returns the number of logged observations.
func (s *MemoryStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.observations)), nil
}

// Status describes the store.
func (s *MemoryStore) Status() (schema.StoreStatus, error) {
	n, _ := s.Count()
	return schema.StoreStatus{
		Backend:      schema.MemoryBackend,
		Connected:    true,
		Observations: n,
	}, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
