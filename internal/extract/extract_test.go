package extract

import (
	"testing"
	"time"
)

var testRef = time.Date(2025, time.June, 4, 10, 0, 0, 0, time.UTC)

func TestEvents_ScriptJSON(t *testing.T) {
	// First script holds unparsable JSON, second a valid event array.
	html := `<html><head>
<script>var economicCalendar = {broken json;</script>
<script>{"economicCalendar":[{"eventTitle":"CPI Release","releaseDate":"2025-06-02T12:30:00Z","country":"US","importance":"High"}]}</script>
</head><body></body></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Events() returned %d events, want 1", len(events))
	}

	evt := events[0]
	if evt.Title != "CPI Release" {
		t.Errorf("title = %q, want %q", evt.Title, "CPI Release")
	}
	if got := evt.Date.Format("2006-01-02"); got != "2025-06-02" {
		t.Errorf("date = %s, want 2025-06-02", got)
	}
	if evt.Time != "12:30 PM" {
		t.Errorf("time = %q, want %q", evt.Time, "12:30 PM")
	}
	if evt.Country != "US" {
		t.Errorf("country = %q, want %q", evt.Country, "US")
	}
	if evt.Impact != "High" {
		t.Errorf("impact = %q, want %q", evt.Impact, "High")
	}
}

func TestEvents_ScriptShortCircuit(t *testing.T) {
	// The first script that yields events wins; the second is never mined.
	html := `<html><head>
<script>{"calendar":[{"event":"First Source","date":"2025-06-02"}]}</script>
<script>{"calendar":[{"event":"Second Source","date":"2025-06-03"}]}</script>
</head></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Events() returned %d events, want 1", len(events))
	}
	if events[0].Title != "First Source" {
		t.Errorf("title = %q, want %q", events[0].Title, "First Source")
	}
}

func TestEvents_ScriptAssignmentPattern(t *testing.T) {
	html := `<html><head>
<script>window.__economicData = {"events":[{"name":"Fed Minutes","timestamp":1748867400,"currency":"USD"}]};</script>
</head></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Events() returned %d events, want 1", len(events))
	}
	evt := events[0]
	if evt.Title != "Fed Minutes" {
		t.Errorf("title = %q, want %q", evt.Title, "Fed Minutes")
	}
	if got := evt.Date.Format("2006-01-02"); got != "2025-06-02" {
		t.Errorf("date = %s, want 2025-06-02", got)
	}
	if evt.Time != "12:30 PM" {
		t.Errorf("time = %q, want %q", evt.Time, "12:30 PM")
	}
	if evt.Country != "USD" {
		t.Errorf("country = %q, want %q", evt.Country, "USD")
	}
}

func TestEvents_IrrelevantScriptsIgnored(t *testing.T) {
	// Scripts that never mention calendar/economic are not mined even when
	// they contain event-shaped JSON.
	html := `<html><head>
<script>var other = [{"event":"Not For Us","date":"2025-06-02"}];</script>
</head></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Events() returned %d events, want 0", len(events))
	}
}

func TestEvents_TableWithSectionHeaders(t *testing.T) {
	html := `<html><body><table>
<thead><tr><th>Time</th><th>Event</th><th>Country</th></tr></thead>
<tbody>
<tr><td colspan="3">Monday, June 2, 2025</td></tr>
<tr><td>8:30am</td><td>Jobless Claims</td><td>US</td></tr>
<tr><td></td><td></td><td></td></tr>
<tr><td colspan="3">Tuesday, June 3, 2025</td></tr>
<tr><td>All Day</td><td>Bank Holiday</td><td>UK</td></tr>
</tbody>
</table></body></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Events() returned %d events, want 2", len(events))
	}

	first := events[0]
	if first.Title != "Jobless Claims" {
		t.Errorf("title = %q, want %q", first.Title, "Jobless Claims")
	}
	if got := first.Date.Format("2006-01-02"); got != "2025-06-02" {
		t.Errorf("date = %s, want 2025-06-02", got)
	}
	if first.Time != "8:30 AM" {
		t.Errorf("time = %q, want %q", first.Time, "8:30 AM")
	}
	if first.Country != "US" {
		t.Errorf("country = %q, want %q", first.Country, "US")
	}
	if first.Impact != "" {
		t.Errorf("impact = %q, want absent", first.Impact)
	}

	second := events[1]
	if second.Title != "Bank Holiday" {
		t.Errorf("title = %q, want %q", second.Title, "Bank Holiday")
	}
	if got := second.Date.Format("2006-01-02"); got != "2025-06-03" {
		t.Errorf("date = %s, want 2025-06-03", got)
	}
	if second.Time != "All Day" {
		t.Errorf("time = %q, want %q", second.Time, "All Day")
	}
}

func TestEvents_TableOwnDateColumn(t *testing.T) {
	html := `<html><body><table>
<tr><th>Date</th><th>Report</th><th>Importance</th></tr>
<tr><td>06/02/2025</td><td>Retail Sales</td><td>Medium</td></tr>
<tr><td>garbage</td><td>Orphan Row</td><td>Low</td></tr>
</table></body></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	// The second row has no parseable date and no running section date.
	if len(events) != 1 {
		t.Fatalf("Events() returned %d events, want 1", len(events))
	}
	evt := events[0]
	if evt.Title != "Retail Sales" {
		t.Errorf("title = %q, want %q", evt.Title, "Retail Sales")
	}
	if got := evt.Date.Format("2006-01-02"); got != "2025-06-02" {
		t.Errorf("date = %s, want 2025-06-02", got)
	}
	if evt.Impact != "Medium" {
		t.Errorf("impact = %q, want %q", evt.Impact, "Medium")
	}
}

func TestEvents_NonCalendarTableSkipped(t *testing.T) {
	html := `<html><body><table>
<tr><th>Symbol</th><th>Price</th></tr>
<tr><td>SPY</td><td>500.12</td></tr>
</table></body></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Events() returned %d events, want 0", len(events))
	}
}

func TestEvents_ScriptsTakePrecedenceOverTables(t *testing.T) {
	html := `<html><head>
<script>var economicCalendar = {"events":[{"event":"Script Event","date":"2025-06-02"}]};</script>
</head><body><table>
<tr><th>Event</th><th>Date</th></tr>
<tr><td>Table Event</td><td>06/03/2025</td></tr>
</table></body></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Script Event" {
		t.Fatalf("expected only the script event, got %+v", events)
	}
}

func TestEvents_DuplicatesAcrossRowsCollapse(t *testing.T) {
	html := `<html><body><table>
<tr><th>Event</th><th>Date</th></tr>
<tr><td>CPI</td><td>06/02/2025</td></tr>
<tr><td>CPI</td><td>06/02/2025</td></tr>
</table></body></html>`

	events, err := Events(html, testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Events() returned %d events, want 1", len(events))
	}
}

func TestEvents_NothingFound(t *testing.T) {
	events, err := Events("<html><body><p>maintenance</p></body></html>", testRef)
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Events() returned %d events, want 0", len(events))
	}
}
