package sheet

import (
	"context"
	"fmt"
	"sync"

	"prtrack/internal/pr"
)

// Memory is an in-process Backend for tests and local experimentation. It
// holds the uniqueness invariant under its own lock, so unlike the wire
// clients its check-and-add is atomic.
type Memory struct {
	mu      sync.Mutex
	records []pr.Record
}

func NewMemory(seed ...pr.Record) *Memory {
	return &Memory{records: append([]pr.Record{}, seed...)}
}

func (m *Memory) All(ctx context.Context) ([]pr.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pr.Record{}, m.records...), nil
}

func (m *Memory) Add(ctx context.Context, rec pr.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pr.NormalizeKey(rec.PRNumber)
	for _, r := range m.records {
		if pr.NormalizeKey(r.PRNumber) == key {
			return fmt.Errorf("%w: %q", pr.ErrDuplicatePR, r.PRNumber)
		}
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *Memory) Update(ctx context.Context, rec pr.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pr.NormalizeKey(rec.PRNumber)
	for _, r := range m.records {
		if r.ID != rec.ID && pr.NormalizeKey(r.PRNumber) == key {
			return fmt.Errorf("%w: %q", pr.ErrDuplicatePR, r.PRNumber)
		}
	}
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = rec
			return nil
		}
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	for _, r := range m.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}
