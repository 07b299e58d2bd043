package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errClosed = errors.New("store is closed")

// MemoryStore keeps records in a slice in insertion order.
// It is intended for tests and one-shot CLI runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of record.
func (s *MemoryStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("memory", "save", errClosed)
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.records = append(s.records, cloneRecord(record))
	return nil
}

// List returns matching records, newest first.
func (s *MemoryStore) List(ctx context.Context, filter Filter) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("memory", "list", errClosed)
	}

	results := make([]*Record, 0)
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if !filter.matches(r) {
			continue
		}
		results = append(results, cloneRecord(r))
		if filter.Limit > 0 && len(results) == filter.Limit {
			break
		}
	}
	return results, nil
}

// Count returns the number of matching records.
func (s *MemoryStore) Count(ctx context.Context, filter Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, NewStorageError("memory", "count", errClosed)
	}

	var n int64
	for _, r := range s.records {
		if filter.matches(r) {
			n++
		}
	}
	return n, nil
}

// Prune deletes old records and caps the total count.
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Time, maxRecords int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, NewStorageError("memory", "prune", errClosed)
	}

	before := len(s.records)
	if !olderThan.IsZero() {
		kept := s.records[:0]
		for _, r := range s.records {
			if !r.ParsedAt.Before(olderThan) {
				kept = append(kept, r)
			}
		}
		s.records = kept
	}
	if maxRecords > 0 && int64(len(s.records)) > maxRecords {
		s.records = append([]*Record(nil), s.records[int64(len(s.records))-maxRecords:]...)
	}
	return int64(before - len(s.records)), nil
}

// Ping fails once the store is closed.
func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return NewStorageError("memory", "ping", errClosed)
	}
	return nil
}

// Close releases the records.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.records = nil
	return nil
}

func cloneRecord(r *Record) *Record {
	c := *r
	c.ComponentKinds = append([]string(nil), r.ComponentKinds...)
	return &c
}
