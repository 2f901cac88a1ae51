package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/mstrand/econcal/internal/event"
)

// Field alias tables, in resolution order: the first present, non-empty key
// wins. Kept data-driven so new source schemas only need a list entry.
var (
	titleAliases      = []string{"eventName", "eventTitle", "event", "title", "name", "report"}
	dateAliases       = []string{"eventDate", "releaseDate", "startDate", "date", "dateTime", "timestamp"}
	timeAliases       = []string{"time", "startTime"}
	countryAliases    = []string{"country", "region", "currency"}
	impactAliases     = []string{"importance", "impact"}
	dateLookupAliases = append(dateAliases, "startTime", "time")
)

// looksLikeEvent reports whether a JSON object carries at least one
// title-role key and one date-role key. It is a cheap shape test; the
// record may still fail normalization.
func looksLikeEvent(data map[string]interface{}) bool {
	return hasAnyKey(data, titleAliases) && hasAnyKey(data, dateLookupAliases)
}

func hasAnyKey(data map[string]interface{}, keys []string) bool {
	for _, key := range keys {
		if _, ok := data[key]; ok {
			return true
		}
	}
	return false
}

// normalizeEvent maps a loosely-typed record into a canonical Event.
// Records without a title or a resolvable date are discarded.
func normalizeEvent(data map[string]interface{}, ref time.Time) (event.Event, bool) {
	title := normalizeValue(firstValue(data, titleAliases))
	if title == "" {
		return event.Event{}, false
	}

	date, timeStr, ok := event.ResolveDateTime(firstValue(data, dateAliases), ref)
	if !ok {
		return event.Event{}, false
	}

	if timeStr == "" {
		timeStr = event.NormalizeTime(normalizeValue(firstValue(data, timeAliases)))
	}

	return event.Event{
		Title:   title,
		Date:    date,
		Time:    timeStr,
		Country: normalizeValue(firstValue(data, countryAliases)),
		Impact:  normalizeValue(firstValue(data, impactAliases)),
	}, true
}

// firstValue returns the first present, non-empty value among keys.
func firstValue(data map[string]interface{}, keys []string) interface{} {
	for _, key := range keys {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value
	}
	return nil
}

// normalizeValue renders a scraped value as trimmed text. Lists are joined
// with ", "; empty results normalize to the empty string (absent).
func normalizeValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			text := normalizeValue(item)
			if text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		return strings.TrimSpace(trimFloat(v))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// trimFloat renders JSON numbers without a trailing ".000000".
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
