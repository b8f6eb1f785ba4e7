package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history", "toolrack.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreAppendAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{CycleID: "c1", UnitName: "Alpha", Outcome: "ok", DurationMS: 12, DispatchedAt: base},
		{CycleID: "c2", UnitName: "Bravo", Outcome: "failed", ErrorKind: "UNIT_FAILURE", ErrorMessage: "boom", DurationMS: 3, DispatchedAt: base.Add(time.Minute)},
		{CycleID: "c3", UnitName: "Alpha", Outcome: "ok", DurationMS: 8, DispatchedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%s) error = %v", rec.CycleID, err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent() = %d records, want 2", len(recent))
	}
	if recent[0].CycleID != "c3" || recent[1].CycleID != "c2" {
		t.Fatalf("Recent() order = [%s %s], want [c3 c2]", recent[0].CycleID, recent[1].CycleID)
	}
	if recent[1].ErrorKind != "UNIT_FAILURE" || recent[1].ErrorMessage != "boom" {
		t.Fatalf("failed record = %+v", recent[1])
	}
	if !recent[0].DispatchedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("DispatchedAt = %v", recent[0].DispatchedAt)
	}
}

func TestSQLiteStoreAppendFillsDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, Record{Outcome: "no_units"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	recent, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Recent() = %d records, want 1", len(recent))
	}
	if recent[0].CycleID == "" {
		t.Fatal("CycleID not generated")
	}
	if recent[0].DispatchedAt.IsZero() {
		t.Fatal("DispatchedAt not defaulted")
	}
}

func TestSQLiteStoreDuplicateCycleIgnored(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := Record{CycleID: "dup", Outcome: "ok", DispatchedAt: time.Now().UTC()}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("Append(duplicate) error = %v", err)
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Recent() = %d records, want 1", len(recent))
	}
}

func TestNewSQLiteStoreEmptyDSN(t *testing.T) {
	if _, err := NewSQLiteStore("  "); err == nil {
		t.Fatal("NewSQLiteStore() error = nil, want non-nil")
	}
}
