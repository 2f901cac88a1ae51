package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubFetcher struct {
	html      string
	sourceURL string
	err       error
}

func (s *stubFetcher) Fetch(context.Context) (string, string, error) {
	return s.html, s.sourceURL, s.err
}

func TestReport_FetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("HTTP 401")}

	msg := Report(context.Background(), fetcher, testRef, Options{})
	if !strings.HasPrefix(msg, "**Economic Calendar Error**") {
		t.Errorf("unexpected message: %q", msg)
	}
	if !strings.Contains(msg, "HTTP 401") {
		t.Errorf("missing upstream reason: %q", msg)
	}
}

func TestReport_NoEvents(t *testing.T) {
	fetcher := &stubFetcher{html: "<html><body><p>nothing here</p></body></html>", sourceURL: testSource}

	msg := Report(context.Background(), fetcher, testRef, Options{})
	if msg != NoEventsError() {
		t.Errorf("Report() = %q, want no-events block", msg)
	}
}

func TestReport_EndToEnd(t *testing.T) {
	fetcher := &stubFetcher{
		html: `<html><body><table>
<thead><tr><th>Time</th><th>Event</th><th>Country</th></tr></thead>
<tr><td colspan="3">Monday, June 2, 2025</td></tr>
<tr><td>8:30am</td><td>Jobless Claims</td><td>US</td></tr>
</table></body></html>`,
		sourceURL: testSource,
	}

	msg := Report(context.Background(), fetcher, testRef, Options{})
	if !strings.Contains(msg, "Mon 06/02: 8:30 AM - Jobless Claims (US)") {
		t.Errorf("unexpected report: %q", msg)
	}
	if !strings.Contains(msg, "Source: MarketWatch ("+testSource+")") {
		t.Errorf("missing footer: %q", msg)
	}
}
