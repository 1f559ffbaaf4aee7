package pr_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"prtrack/internal/pr"
	"prtrack/internal/store"
)

func newService(t *testing.T) *pr.Service {
	t.Helper()
	return &pr.Service{Store: store.NewLocal(filepath.Join(t.TempDir(), "data.json"))}
}

func TestSaveRejectsDuplicateCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first := pr.Record{ID: "A", PRNumber: "ADMIN/2026/001", Date: "2026-01-05", RequestedBy: "Idham"}
	if err := svc.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dup := pr.Record{ID: "B", PRNumber: "admin/2026/001", Date: "2026-01-06", RequestedBy: "Halim"}
	err := svc.Save(ctx, dup)
	if !errors.Is(err, pr.ErrDuplicatePR) {
		t.Fatalf("Save duplicate: got %v, want ErrDuplicatePR", err)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].ID != "A" {
		t.Fatalf("store changed by rejected save: %+v", records)
	}
}

func TestUpdateAllowsSelfCollision(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rec := pr.Record{ID: "A", PRNumber: "ADMIN/2026/005", Date: "2026-02-01", RequestedBy: "Idham"}
	if err := svc.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec.Vendor = "New Vendor"
	if err := svc.Update(ctx, rec); err != nil {
		t.Fatalf("Update with own number: %v", err)
	}

	records, _ := svc.List(ctx)
	if len(records) != 1 || records[0].Vendor != "New Vendor" {
		t.Fatalf("update not applied: %+v", records)
	}
}

func TestUpdateRejectsCollisionWithOther(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a := pr.Record{ID: "A", PRNumber: "ADMIN/2026/001", Date: "2026-01-05", RequestedBy: "Idham", Timestamp: 2}
	b := pr.Record{ID: "B", PRNumber: "ADMIN/2026/002", Date: "2026-01-06", RequestedBy: "Halim", Timestamp: 1}
	for _, r := range []pr.Record{a, b} {
		if err := svc.Save(ctx, r); err != nil {
			t.Fatalf("Save %s: %v", r.ID, err)
		}
	}

	b.PRNumber = "Admin/2026/001"
	if err := svc.Update(ctx, b); !errors.Is(err, pr.ErrDuplicatePR) {
		t.Fatalf("Update onto other record's number: got %v, want ErrDuplicatePR", err)
	}
}

func TestCheckAvailabilityRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rec := pr.Record{ID: "A", PRNumber: "ADMIN/2026/050", Date: "2026-03-01", RequestedBy: "Zuraidah"}
	if err := svc.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	available, matched, err := svc.CheckAvailability(ctx, "  admin/2026/050 ")
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if available || matched == nil || matched.ID != "A" {
		t.Fatalf("taken number reported available=%v matched=%+v", available, matched)
	}

	available, matched, err = svc.CheckAvailability(ctx, "ADMIN/2026/051")
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !available || matched != nil {
		t.Fatalf("free number reported available=%v matched=%+v", available, matched)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	rec := pr.Record{ID: "A", PRNumber: "ADMIN/2026/001", Date: "2026-01-05", RequestedBy: "Idham"}
	if err := svc.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.Delete(ctx, "A"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, "A"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}

	records, _ := svc.List(ctx)
	if len(records) != 0 {
		t.Fatalf("record still present: %+v", records)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for i, rec := range []pr.Record{
		{ID: "old", PRNumber: "ADMIN/2026/001", Date: "2026-01-01", RequestedBy: "Idham", Timestamp: 100},
		{ID: "new", PRNumber: "ADMIN/2026/002", Date: "2026-01-02", RequestedBy: "Halim", Timestamp: 300},
		{ID: "mid", PRNumber: "ADMIN/2026/003", Date: "2026-01-03", RequestedBy: "Zureen", Timestamp: 200},
	} {
		if err := svc.Save(ctx, rec); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{records[0].ID, records[1].ID, records[2].ID}
	want := []string{"new", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List order = %v, want %v", got, want)
		}
	}
}

func TestNextSequenceReadsStore(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, n := range []string{"ADMIN/2026/001", "ADMIN/2026/007", "ADMIN/2026/003"} {
		if err := svc.Save(ctx, pr.Record{ID: n, PRNumber: n, Date: "2026-01-01", RequestedBy: "Idham"}); err != nil {
			t.Fatalf("Save %s: %v", n, err)
		}
	}

	seq, err := svc.NextSequence(ctx, "2026")
	if err != nil {
		t.Fatalf("NextSequence: %v", err)
	}
	if seq != "008" {
		t.Fatalf("NextSequence = %q, want %q", seq, "008")
	}
}
