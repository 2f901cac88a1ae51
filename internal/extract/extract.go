package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mstrand/econcal/internal/event"
)

// Events extracts the economic-calendar events embedded in a page. Script
// blocks are mined first; the HTML tables are a fallback used only when no
// script yields anything. The result is deduplicated in discovery order.
//
// ref anchors relative dates ("today") and year-less forms.
func Events(html string, ref time.Time) ([]event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	events := eventsFromScripts(doc, ref)
	if len(events) == 0 {
		events = eventsFromTables(doc, ref)
	}

	return event.Dedupe(events), nil
}
