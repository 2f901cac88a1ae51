package event

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDedupe(t *testing.T) {
	cpi := Event{Title: "CPI Release", Date: day(2025, time.June, 2), Time: "8:30 AM", Country: "US", Impact: "High"}
	claims := Event{Title: "Jobless Claims", Date: day(2025, time.June, 5), Time: "8:30 AM", Country: "US"}
	cpiOtherDay := Event{Title: "CPI Release", Date: day(2025, time.June, 3), Time: "8:30 AM", Country: "US", Impact: "High"}

	tests := []struct {
		name  string
		input []Event
		want  []string
	}{
		{
			name:  "No duplicates",
			input: []Event{cpi, claims},
			want:  []string{"CPI Release", "Jobless Claims"},
		},
		{
			name:  "Exact duplicate removed, first kept",
			input: []Event{cpi, claims, cpi},
			want:  []string{"CPI Release", "Jobless Claims"},
		},
		{
			name:  "Same title different date survives",
			input: []Event{cpi, cpiOtherDay},
			want:  []string{"CPI Release", "CPI Release"},
		},
		{
			name:  "Empty input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Dedupe() returned %d events, want %d", len(got), len(tt.want))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("event %d title = %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}
}

// Dedupe applied twice must equal Dedupe applied once, and output never
// grows.
func TestDedupe_Idempotent(t *testing.T) {
	input := []Event{
		{Title: "GDP", Date: day(2025, time.June, 2)},
		{Title: "GDP", Date: day(2025, time.June, 2)},
		{Title: "CPI", Date: day(2025, time.June, 3), Time: "8:30 AM"},
		{Title: "CPI", Date: day(2025, time.June, 3), Time: "9:30 AM"},
	}

	once := Dedupe(input)
	twice := Dedupe(once)

	if len(once) > len(input) {
		t.Errorf("Dedupe grew the input: %d > %d", len(once), len(input))
	}
	if len(once) != len(twice) {
		t.Fatalf("Dedupe not idempotent: %d != %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Key() != twice[i].Key() {
			t.Errorf("event %d changed between passes", i)
		}
	}
}

func TestKey_DistinguishesFields(t *testing.T) {
	base := Event{Title: "CPI", Date: day(2025, time.June, 2), Time: "8:30 AM", Country: "US", Impact: "High"}

	variants := []Event{
		{Title: "PPI", Date: base.Date, Time: base.Time, Country: base.Country, Impact: base.Impact},
		{Title: base.Title, Date: day(2025, time.June, 3), Time: base.Time, Country: base.Country, Impact: base.Impact},
		{Title: base.Title, Date: base.Date, Time: "9:30 AM", Country: base.Country, Impact: base.Impact},
		{Title: base.Title, Date: base.Date, Time: base.Time, Country: "UK", Impact: base.Impact},
		{Title: base.Title, Date: base.Date, Time: base.Time, Country: base.Country, Impact: "Low"},
	}

	for i, v := range variants {
		if v.Key() == base.Key() {
			t.Errorf("variant %d shares a key with base", i)
		}
	}
}
