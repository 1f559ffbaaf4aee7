package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"prtrack/internal/pr"
	"prtrack/internal/store"
)

func newLocal(t *testing.T) *store.Local {
	t.Helper()
	return store.NewLocal(filepath.Join(t.TempDir(), "data.json"))
}

func TestLocalListAllMissingFile(t *testing.T) {
	l := newLocal(t)

	records, err := l.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %+v", records)
	}
}

func TestLocalListAllMalformedBlob(t *testing.T) {
	l := newLocal(t)
	if err := os.WriteFile(l.Path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := l.ListAll(context.Background())
	if err != nil {
		t.Fatalf("malformed blob must not error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("malformed blob must read as empty, got %+v", records)
	}
}

func TestLocalInsertPrepends(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)

	if err := l.Insert(ctx, pr.Record{ID: "first", PRNumber: "ADMIN/2026/001"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := l.Insert(ctx, pr.Record{ID: "second", PRNumber: "ADMIN/2026/002"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	records, _ := l.ListAll(ctx)
	if len(records) != 2 || records[0].ID != "second" || records[1].ID != "first" {
		t.Fatalf("unexpected order: %+v", records)
	}
}

func TestLocalReplace(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)

	if err := l.Insert(ctx, pr.Record{ID: "A", PRNumber: "ADMIN/2026/001", Vendor: "old"}); err != nil {
		t.Fatal(err)
	}

	if err := l.Replace(ctx, pr.Record{ID: "A", PRNumber: "ADMIN/2026/001", Vendor: "new"}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	records, _ := l.ListAll(ctx)
	if records[0].Vendor != "new" {
		t.Fatalf("Replace not applied: %+v", records)
	}

	// unknown id is a silent no-op
	if err := l.Replace(ctx, pr.Record{ID: "missing", PRNumber: "ADMIN/2026/099"}); err != nil {
		t.Fatalf("Replace missing id: %v", err)
	}
	records, _ = l.ListAll(ctx)
	if len(records) != 1 {
		t.Fatalf("Replace of missing id changed the store: %+v", records)
	}
}

func TestLocalRemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)

	if err := l.Insert(ctx, pr.Record{ID: "A", PRNumber: "ADMIN/2026/001"}); err != nil {
		t.Fatal(err)
	}

	if err := l.Remove(ctx, "A"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := l.Remove(ctx, "A"); err != nil {
		t.Fatalf("second Remove must be a no-op: %v", err)
	}

	records, _ := l.ListAll(ctx)
	if len(records) != 0 {
		t.Fatalf("record still present: %+v", records)
	}
}

func TestLocalInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)

	rec := pr.Record{ID: "A", PRNumber: "ADMIN/2026/001"}
	conflict, err := l.InsertIfAbsent(ctx, pr.NormalizeKey(rec.PRNumber), rec)
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if conflict != nil {
		t.Fatalf("unexpected conflict: %+v", conflict)
	}

	other := pr.Record{ID: "B", PRNumber: "Admin/2026/001"}
	conflict, err = l.InsertIfAbsent(ctx, pr.NormalizeKey(other.PRNumber), other)
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if conflict == nil || conflict.ID != "A" {
		t.Fatalf("expected conflict with A, got %+v", conflict)
	}

	records, _ := l.ListAll(ctx)
	if len(records) != 1 {
		t.Fatalf("conflicting insert was written: %+v", records)
	}
}

func TestLocalSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	l := newLocal(t)
	seed := []pr.Record{{ID: "1", PRNumber: "ADMIN/2026/001"}}

	if err := l.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	records, _ := l.ListAll(ctx)
	if len(records) != 1 {
		t.Fatalf("seed not written: %+v", records)
	}

	// an existing blob blocks re-seeding, even after a wipe to empty
	if err := l.Snapshot(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if err := l.SeedIfEmpty(ctx, seed); err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	records, _ = l.ListAll(ctx)
	if len(records) != 0 {
		t.Fatalf("existing blob was re-seeded: %+v", records)
	}
}
