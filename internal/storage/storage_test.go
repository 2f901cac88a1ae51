package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_MarkAndCheck(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	week := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	nextWeek := week.AddDate(0, 0, 7)

	if store.AlreadyPosted(week) {
		t.Error("fresh store reports week as posted")
	}

	if err := store.MarkPosted(week); err != nil {
		t.Fatalf("MarkPosted() error: %v", err)
	}

	if !store.AlreadyPosted(week) {
		t.Error("marked week reads as not posted")
	}
	if store.AlreadyPosted(nextWeek) {
		t.Error("different week reads as posted")
	}

	// Posting the next week replaces the marker.
	if err := store.MarkPosted(nextWeek); err != nil {
		t.Fatalf("MarkPosted() error: %v", err)
	}
	if store.AlreadyPosted(week) {
		t.Error("old week still reads as posted after replacement")
	}
}

func TestStore_CorruptMarkerReadsAsNotPosted(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "week_marker.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	week := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	if store.AlreadyPosted(week) {
		t.Error("corrupt marker reads as posted")
	}
}
