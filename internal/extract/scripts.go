package extract

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mstrand/econcal/internal/event"
)

// maxWalkDepth bounds the recursive JSON walk so a pathologically nested
// blob cannot stall the caller.
const maxWalkDepth = 64

// Compiled once; both patterns span lines.
var (
	nextDataPattern = regexp.MustCompile(`(?s)__NEXT_DATA__"[^>]*>(.*?)</script>`)
	assignPattern   = regexp.MustCompile(`(?s)=\s*(\{.*\});`)
)

// eventsFromScripts mines embedded JSON out of script blocks. Only blocks
// whose lowercased text mentions "calendar" or "economic" are considered.
// The first block that yields any events short-circuits the rest.
func eventsFromScripts(doc *goquery.Document, ref time.Time) []event.Event {
	var events []event.Event
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if text == "" {
			return true
		}
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "calendar") && !strings.Contains(lower, "economic") {
			return true
		}
		for _, blob := range extractJSONBlobs(text) {
			if found := findEvents(blob, ref, 0); len(found) > 0 {
				events = found
				return false
			}
		}
		return true
	})
	return events
}

// extractJSONBlobs collects candidate JSON values from script text. All
// strategies are attempted; malformed JSON is skipped silently.
func extractJSONBlobs(text string) []interface{} {
	var blobs []interface{}

	stripped := strings.TrimSpace(text)
	if strings.HasPrefix(stripped, "{") || strings.HasPrefix(stripped, "[") {
		if blob, ok := parseJSON(stripped); ok {
			blobs = append(blobs, blob)
		}
	}

	if match := nextDataPattern.FindStringSubmatch(text); match != nil {
		if blob, ok := parseJSON(match[1]); ok {
			blobs = append(blobs, blob)
		}
	}

	if match := assignPattern.FindStringSubmatch(text); match != nil {
		if blob, ok := parseJSON(match[1]); ok {
			blobs = append(blobs, blob)
		}
	}

	return blobs
}

func parseJSON(text string) (interface{}, bool) {
	var blob interface{}
	if err := json.Unmarshal([]byte(text), &blob); err != nil {
		return nil, false
	}
	return blob, true
}

// findEvents walks a blob recursively, testing every object node that has
// the shape of an event. No static schema is assumed.
func findEvents(data interface{}, ref time.Time, depth int) []event.Event {
	if depth > maxWalkDepth {
		return nil
	}

	var events []event.Event
	switch node := data.(type) {
	case map[string]interface{}:
		if looksLikeEvent(node) {
			if evt, ok := normalizeEvent(node, ref); ok {
				events = append(events, evt)
			}
		}
		// Walk keys in sorted order so discovery order is deterministic.
		keys := make([]string, 0, len(node))
		for key := range node {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			events = append(events, findEvents(node[key], ref, depth+1)...)
		}
	case []interface{}:
		for _, item := range node {
			events = append(events, findEvents(item, ref, depth+1)...)
		}
	}
	return events
}
