package event

import "time"

// Event represents one canonical economic-calendar entry.
type Event struct {
	Title   string    `json:"title"`
	Date    time.Time `json:"date"` // calendar date, UTC midnight
	Time    string    `json:"time,omitempty"`
	Country string    `json:"country,omitempty"`
	Impact  string    `json:"impact,omitempty"`
}

// Key is the exact-match identity tuple used to detect duplicate events
// across extraction strategies. Fields are compared after normalization,
// so two events differing only by surrounding whitespace collapse to the
// same key.
type Key struct {
	Title   string
	Date    string
	Time    string
	Country string
	Impact  string
}

// Key returns the identity key for the event.
func (e Event) Key() Key {
	return Key{
		Title:   e.Title,
		Date:    e.Date.Format("2006-01-02"),
		Time:    e.Time,
		Country: e.Country,
		Impact:  e.Impact,
	}
}

// Dedupe removes exact identity-key duplicates, keeping the first
// occurrence and the original relative order.
func Dedupe(events []Event) []Event {
	seen := make(map[Key]bool, len(events))
	unique := make([]Event, 0, len(events))
	for _, evt := range events {
		key := evt.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, evt)
	}
	return unique
}
