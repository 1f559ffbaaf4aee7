package pr

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var ErrDuplicatePR = errors.New("pr number already exists")

// Store is the persistence contract the service depends on. The two
// implementations (local JSON blob, remote HTTP endpoint) live in
// internal/store.
type Store interface {
	// ListAll returns every stored record in no particular order. An
	// empty store yields an empty slice, never an error.
	ListAll(ctx context.Context) ([]Record, error)

	// Insert appends one record. No uniqueness enforcement at this layer.
	Insert(ctx context.Context, rec Record) error

	// Replace overwrites the record with a matching id. A missing id is a
	// no-op, not an error.
	Replace(ctx context.Context, rec Record) error

	// Remove deletes by id. A missing id is a no-op.
	Remove(ctx context.Context, id string) error

	// InsertIfAbsent inserts rec unless a record whose normalized PR
	// number equals key already exists, in which case that record is
	// returned and nothing is written.
	InsertIfAbsent(ctx context.Context, key string, rec Record) (*Record, error)
}

// Service implements the numbering and validation rules over a Store. It is
// stateless; every operation works from a fresh read.
type Service struct {
	Store Store
}

// List returns every stored record, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
	return records, nil
}

// Save persists a new record after checking that its PR number is unused
// (case-insensitive). The check-and-insert is delegated to the store so
// backends that can enforce uniqueness atomically do so.
func (s *Service) Save(ctx context.Context, rec Record) error {
	conflict, err := s.Store.InsertIfAbsent(ctx, NormalizeKey(rec.PRNumber), rec)
	if err != nil {
		return err
	}
	if conflict != nil {
		return fmt.Errorf("%w: %q", ErrDuplicatePR, conflict.PRNumber)
	}
	return nil
}

// Update overwrites the record with rec's id. The duplicate check excludes
// the record itself, so an update may keep its own number.
func (s *Service) Update(ctx context.Context, rec Record) error {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return err
	}

	key := NormalizeKey(rec.PRNumber)
	for _, r := range records {
		if r.ID != rec.ID && NormalizeKey(r.PRNumber) == key {
			return fmt.Errorf("%w: %q", ErrDuplicatePR, r.PRNumber)
		}
	}

	return s.Store.Replace(ctx, rec)
}

// Delete removes by id without validation.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, id)
}

// CheckAvailability reports whether a candidate PR number is free. When it
// is taken, the first matching record is returned.
func (s *Service) CheckAvailability(ctx context.Context, candidate string) (bool, *Record, error) {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return false, nil, err
	}

	key := NormalizeKey(candidate)
	for i := range records {
		if NormalizeKey(records[i].PRNumber) == key {
			return false, &records[i], nil
		}
	}
	return true, nil, nil
}

// NextSequence proposes the next free sequence for a year.
func (s *Service) NextSequence(ctx context.Context, year string) (string, error) {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return "", err
	}
	return NextSequenceFrom(records, year), nil
}
