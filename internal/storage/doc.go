// Package storage persists the scheduler's last-posted-week marker as a
// small JSON file under a data directory.
package storage
