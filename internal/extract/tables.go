package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mstrand/econcal/internal/event"
)

var tableWhitespace = regexp.MustCompile(`\s+`)

// columnRoles maps a semantic role to the header keywords that claim it.
// The first header containing a keyword wins the role.
var columnRoles = []struct {
	role     string
	keywords []string
}{
	{role: "title", keywords: []string{"event", "report", "description"}},
	{role: "time", keywords: []string{"time"}},
	{role: "date", keywords: []string{"date"}},
	{role: "country", keywords: []string{"country"}},
	{role: "impact", keywords: []string{"impact", "importance"}},
}

// eventsFromTables scans every table for calendar-shaped content. Tables
// whose headers never mention "event" or "report" are skipped. A row with a
// single cell that parses as a date is a section header: it sets the
// implicit date for following rows that lack their own.
func eventsFromTables(doc *goquery.Document, ref time.Time) []event.Event {
	var events []event.Event

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		headers := tableHeaders(table)
		if len(headers) == 0 {
			return
		}
		if !headersMentionEvents(headers) {
			return
		}

		columns := resolveColumns(headers)
		idxTitle := columns["title"]

		currentDate := time.Time{}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() == 0 {
				return
			}

			texts := make([]string, 0, cells.Length())
			cells.Each(func(_ int, cell *goquery.Selection) {
				texts = append(texts, cellText(cell))
			})

			if cells.Length() == 1 {
				if parsed, ok := event.ParseDate(texts[0], ref); ok {
					currentDate = parsed
					return
				}
			}

			title := cellAt(texts, idxTitle)
			if title == "" {
				return
			}

			date := time.Time{}
			if raw := cellAt(texts, columns["date"]); raw != "" {
				if parsed, ok := event.ParseDate(raw, ref); ok {
					date = parsed
				}
			}
			if date.IsZero() {
				date = currentDate
			}
			if date.IsZero() {
				return
			}

			events = append(events, event.Event{
				Title:   title,
				Date:    date,
				Time:    event.NormalizeTime(cellAt(texts, columns["time"])),
				Country: cellAt(texts, columns["country"]),
				Impact:  cellAt(texts, columns["impact"]),
			})
		})
	})

	return events
}

// tableHeaders returns lowercased header texts, preferring thead th cells
// and falling back to th cells of the first row.
func tableHeaders(table *goquery.Selection) []string {
	cells := table.Find("thead th")
	if cells.Length() == 0 {
		cells = table.Find("tr").First().Find("th")
	}

	headers := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.ToLower(cellText(cell)))
	})
	return headers
}

func headersMentionEvents(headers []string) bool {
	for _, header := range headers {
		if strings.Contains(header, "event") || strings.Contains(header, "report") {
			return true
		}
	}
	return false
}

// resolveColumns assigns a column index per role, or -1 when no header
// matches.
func resolveColumns(headers []string) map[string]int {
	columns := make(map[string]int, len(columnRoles))
	for _, rc := range columnRoles {
		columns[rc.role] = -1
		for index, header := range headers {
			if containsAny(header, rc.keywords) {
				columns[rc.role] = index
				break
			}
		}
	}
	return columns
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func cellAt(texts []string, index int) string {
	if index < 0 || index >= len(texts) {
		return ""
	}
	return texts[index]
}

// cellText flattens a cell to single-spaced trimmed text.
func cellText(sel *goquery.Selection) string {
	return strings.TrimSpace(tableWhitespace.ReplaceAllString(sel.Text(), " "))
}
