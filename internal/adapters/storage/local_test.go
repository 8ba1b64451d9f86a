package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	url, err := store.Save(ctx, "event-1/cover.png", []byte("payload"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if url != "/uploads/event-1/cover.png" {
		t.Fatalf("unexpected url %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "event-1", "cover.png"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := store.Remove(ctx, url); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "event-1", "cover.png")); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, got %v", err)
	}

	// Removing an already-removed file is not an error.
	if err := store.Remove(ctx, url); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir(), "/uploads")

	for _, key := range []string{"../outside.png", "/etc/passwd", "a/../../b.png"} {
		if _, err := store.Save(ctx, key, []byte("x")); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}
