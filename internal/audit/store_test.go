package audit

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndListRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, ActionUpdate, 1, "10.0.0.1", "total 150 -> 175"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, ActionDelete, 2, "10.0.0.1", ""); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, ActionExport, 0, "10.0.0.2", "filtered"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	entries, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Newest first.
	if entries[0].Action != ActionExport {
		t.Errorf("entries[0].Action = %q, want %q", entries[0].Action, ActionExport)
	}
	if entries[2].Action != ActionUpdate || entries[2].ReceiptID != 1 {
		t.Errorf("entries[2] = %+v, want update on receipt 1", entries[2])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestListRecentLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, ActionUpdate, int64(i+1), "tester", ""); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries, err := store.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ReceiptID != 5 {
		t.Errorf("entries[0].ReceiptID = %d, want 5", entries[0].ReceiptID)
	}
}

func TestListByReceipt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, ActionUpdate, 7, "tester", "first edit"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, ActionUpdate, 8, "tester", "other receipt"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Append(ctx, ActionDelete, 7, "tester", ""); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	entries, err := store.ListByReceipt(ctx, 7, 10)
	if err != nil {
		t.Fatalf("ListByReceipt() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != ActionDelete || entries[1].Action != ActionUpdate {
		t.Errorf("unexpected order: %+v", entries)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.db")

	first, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	first.Close()

	second, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopening store error = %v", err)
	}
	second.Close()
}
