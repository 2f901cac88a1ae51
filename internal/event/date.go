package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoLayouts cover ISO-8601 text after a trailing "Z" has been normalized
// to "+00:00". A bare "2006-01-02" is valid ISO and resolves to midnight,
// which renders as "12:00 AM".
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// dateLayouts is the ordered ladder for standalone date text. The year-less
// layouts at the end take the reference date's year. First match wins.
var dateLayouts = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"01/02/06",
	"January 2",
	"Jan 2",
	"01/02",
}

var (
	dateCleanPattern  = regexp.MustCompile(`[^a-zA-Z0-9,/\- ]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	clockPattern      = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*([ap]m)`)
)

// ResolveDateTime resolves a loosely-typed date value (epoch number,
// ISO-8601 text, or free-text date) into a calendar date and an optional
// display time. It never fails loudly; ok is false when nothing resolved.
func ResolveDateTime(value interface{}, ref time.Time) (time.Time, string, bool) {
	if value == nil {
		return time.Time{}, "", false
	}

	// Numeric values are Unix timestamps. The branch is exhaustive: a bad
	// timestamp does not fall through to text parsing.
	if ts, isNumber := asFloat(value); isNumber {
		return resolveEpoch(ts)
	}

	text := strings.TrimSpace(stringify(value))
	if text == "" {
		return time.Time{}, "", false
	}

	iso := text
	if strings.HasSuffix(iso, "Z") {
		iso = strings.TrimSuffix(iso, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, iso); err == nil {
			parsed = parsed.UTC()
			return midnight(parsed), parsed.Format("3:04 PM"), true
		}
	}

	if date, ok := ParseDate(text, ref); ok {
		return date, "", true
	}

	return time.Time{}, "", false
}

// resolveEpoch converts Unix seconds to a UTC date and display time.
// Magnitudes above 1e12 are treated as milliseconds; this is a heuristic
// inherited from the undocumented upstream format, not a guarantee.
func resolveEpoch(ts float64) (time.Time, string, bool) {
	if ts > 1e12 {
		ts /= 1000
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	parsed := time.Unix(sec, nsec).UTC()
	if parsed.Year() < 1 || parsed.Year() > 9999 {
		return time.Time{}, "", false
	}
	return midnight(parsed), parsed.Format("3:04 PM"), true
}

// ParseDate parses standalone date text relative to a reference date.
// It recognizes "today"/"tomorrow", then tries the layout ladder after
// stripping characters outside [A-Za-z0-9,/- ]. Year-less layouts take the
// reference year.
func ParseDate(text string, ref time.Time) (time.Time, bool) {
	cleaned := strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if cleaned == "" {
		return time.Time{}, false
	}

	switch strings.ToLower(cleaned) {
	case "today":
		return midnight(ref), true
	case "tomorrow":
		return midnight(ref.AddDate(0, 0, 1)), true
	}

	cleaned = strings.TrimSpace(dateCleanPattern.ReplaceAllString(cleaned, ""))
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") && !strings.Contains(layout, "06") {
			parsed = time.Date(ref.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return midnight(parsed), true
	}
	return time.Time{}, false
}

// NormalizeTime extracts an "H:MM AM/PM" clock from free text. Text without
// a recognizable clock passes through verbatim (so "All Day" survives);
// empty text normalizes to empty.
func NormalizeTime(value string) string {
	text := strings.TrimSpace(whitespacePattern.ReplaceAllString(value, " "))
	if text == "" {
		return ""
	}
	match := clockPattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return text
	}
	hour := atoiSafe(match[1])
	minute := 0
	if match[2] != "" {
		minute = atoiSafe(match[2])
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, strings.ToUpper(match[3]))
}

// untimedSortKey orders events with no usable clock after all timed events
// within the same day.
const untimedSortKey = 24 * 60

// TimeSortKey maps a display time to minutes-since-midnight for weekly
// ordering. Untimed, "all day" and "tentative" entries sort last.
func TimeSortKey(timeStr string) int {
	if timeStr == "" {
		return untimedSortKey
	}
	lower := strings.ToLower(timeStr)
	if strings.Contains(lower, "all day") || strings.Contains(lower, "tentative") {
		return untimedSortKey
	}
	match := clockPattern.FindStringSubmatch(lower)
	if match == nil {
		return untimedSortKey
	}
	hour := atoiSafe(match[1]) % 12
	minute := 0
	if match[2] != "" {
		minute = atoiSafe(match[2])
	}
	if match[3] == "pm" {
		hour += 12
	}
	return hour*60 + minute
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
