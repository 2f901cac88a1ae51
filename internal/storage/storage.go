package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists the weekly scheduler's bookkeeping: which week's summary
// was last posted. Event data itself is never persisted; runs are
// transient.
type Store struct {
	dataDir string
}

type weekMarker struct {
	WeekStart string    `json:"week_start"`
	PostedAt  time.Time `json:"posted_at"`
}

// New creates a Store rooted at dataDir, expanding a leading "~/".
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

func (s *Store) markerPath() string {
	return filepath.Join(s.dataDir, "week_marker.json")
}

// AlreadyPosted reports whether the summary for the week starting at
// weekStart has been posted. A missing or corrupt marker reads as "not
// posted" so the scheduler errs toward posting.
func (s *Store) AlreadyPosted(weekStart time.Time) bool {
	data, err := os.ReadFile(s.markerPath())
	if err != nil {
		return false
	}
	var marker weekMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return false
	}
	return marker.WeekStart == weekStart.Format("2006-01-02")
}

// MarkPosted records that the week starting at weekStart has been posted.
func (s *Store) MarkPosted(weekStart time.Time) error {
	marker := weekMarker{
		WeekStart: weekStart.Format("2006-01-02"),
		PostedAt:  time.Now().UTC(),
	}
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling marker: %w", err)
	}
	if err := os.WriteFile(s.markerPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing marker: %w", err)
	}
	return nil
}
