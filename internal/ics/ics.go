// Package ics exports calendar events as an iCalendar document so a week
// of releases can be imported into a personal calendar.
package ics

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/mstrand/econcal/internal/event"
)

// Generate renders events as a VCALENDAR. Timed events become one-hour
// blocks at their display time; untimed events are all-day entries.
func Generate(events []event.Event, sourceURL string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//econcal//econcal//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for _, evt := range events {
		writeEvent(&ics, evt, sourceURL, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt event.Event, sourceURL string, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s@econcal\r\n", eventUID(evt))
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp.Format("20060102T150405Z"))

	if minutes := event.TimeSortKey(evt.Time); evt.Time != "" && minutes < 24*60 {
		start := evt.Date.Add(time.Duration(minutes) * time.Minute)
		fmt.Fprintf(ics, "DTSTART:%s\r\n", start.Format("20060102T150405Z"))
		fmt.Fprintf(ics, "DTEND:%s\r\n", start.Add(time.Hour).Format("20060102T150405Z"))
	} else {
		fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", evt.Date.Format("20060102"))
		fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", evt.Date.AddDate(0, 0, 1).Format("20060102"))
	}

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escape(evt.Title))

	description := evt.Title
	if evt.Country != "" {
		description += " - " + evt.Country
	}
	if evt.Impact != "" {
		description += " (" + evt.Impact + ")"
	}
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escape(description))

	if sourceURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", sourceURL)
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// eventUID derives a stable UID from the identity key.
func eventUID(evt event.Event) string {
	key := evt.Key()
	h := sha1.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", key.Title, key.Date, key.Time, key.Country, key.Impact)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// escape applies iCalendar text escaping.
func escape(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(text)
}
