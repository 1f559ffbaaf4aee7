package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"prtrack/internal/pr"
)

// Local keeps every record as one JSON array blob in a single file,
// mirroring the single-key layout of the browser build. Every operation is
// a full read-modify-write cycle; the store assumes a single writer.
type Local struct {
	Path string
}

func NewLocal(path string) *Local {
	return &Local{Path: path}
}

func (l *Local) ListAll(ctx context.Context) ([]pr.Record, error) {
	return l.read()
}

// Insert prepends the record, so an un-sorted read still shows newest first.
func (l *Local) Insert(ctx context.Context, rec pr.Record) error {
	records, err := l.read()
	if err != nil {
		return err
	}
	return l.write(append([]pr.Record{rec}, records...))
}

func (l *Local) Replace(ctx context.Context, rec pr.Record) error {
	records, err := l.read()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			return l.write(records)
		}
	}
	// unknown id is a no-op, not an error
	return nil
}

func (l *Local) Remove(ctx context.Context, id string) error {
	records, err := l.read()
	if err != nil {
		return err
	}
	kept := make([]pr.Record, 0, len(records))
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return nil
	}
	return l.write(kept)
}

func (l *Local) InsertIfAbsent(ctx context.Context, key string, rec pr.Record) (*pr.Record, error) {
	records, err := l.read()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if pr.NormalizeKey(records[i].PRNumber) == key {
			return &records[i], nil
		}
	}
	return nil, l.write(append([]pr.Record{rec}, records...))
}

// Snapshot replaces the whole blob. Used by the remote store to keep its
// fallback mirror fresh.
func (l *Local) Snapshot(ctx context.Context, records []pr.Record) error {
	if records == nil {
		records = []pr.Record{}
	}
	return l.write(records)
}

// SeedIfEmpty writes records only when no blob exists yet. An existing
// blob, even an empty array, is left alone.
func (l *Local) SeedIfEmpty(ctx context.Context, records []pr.Record) error {
	if _, err := os.Stat(l.Path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return l.write(records)
}

func (l *Local) read() ([]pr.Record, error) {
	data, err := os.ReadFile(l.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []pr.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []pr.Record
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt blob counts as an empty store, never a fatal error.
		log.Printf("local store %s: malformed data, treating as empty: %v\n", l.Path, err)
		return []pr.Record{}, nil
	}
	if records == nil {
		records = []pr.Record{}
	}
	return records, nil
}

func (l *Local) write(records []pr.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	tmp := l.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, l.Path)
}
