package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mstrand/econcal/internal/event"
	"github.com/mstrand/econcal/internal/format"
)

const (
	// DefaultMessageBudget bounds the whole rendered message.
	DefaultMessageBudget = 1800
	// DefaultLineBudget bounds one day line.
	DefaultLineBudget = 320

	actionName = "Economic Calendar"
)

// DefaultPerDayBudgets is the progressive per-day truncation ladder.
var DefaultPerDayBudgets = []int{6, 3, 1}

// Options controls weekly rendering.
type Options struct {
	TitlePrefix    string
	IncludeCommand bool  // append " (!calendar)" to the title
	MessageBudget  int   // characters; 0 means DefaultMessageBudget
	LineBudget     int   // characters per day line; 0 means DefaultLineBudget
	PerDayBudgets  []int // events per day, tried in order; nil means 6,3,1
}

func (o Options) withDefaults() Options {
	if o.TitlePrefix == "" {
		o.TitlePrefix = actionName
	}
	if o.MessageBudget <= 0 {
		o.MessageBudget = DefaultMessageBudget
	}
	if o.LineBudget <= 0 {
		o.LineBudget = DefaultLineBudget
	}
	if len(o.PerDayBudgets) == 0 {
		o.PerDayBudgets = DefaultPerDayBudgets
	}
	return o
}

// WeekStart returns the Monday of the week containing today.
func WeekStart(today time.Time) time.Time {
	days := (int(today.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	start := today.AddDate(0, 0, -days)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekEnd returns the Sunday closing the week that starts on weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}

// Summarize renders the weekly calendar message for already-extracted
// events. Events outside the target week are filtered out; if nothing is
// left the full set is rendered instead, so a non-empty event set never
// produces an empty report. The message is re-rendered at shrinking per-day
// budgets until it fits, then hard-truncated as a last resort.
func Summarize(events []event.Event, sourceURL string, ref time.Time, opts Options) string {
	opts = opts.withDefaults()

	weekStart := WeekStart(ref)
	weekEnd := WeekEnd(weekStart)

	weekEvents := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if !evt.Date.Before(weekStart) && !evt.Date.After(weekEnd) {
			weekEvents = append(weekEvents, evt)
		}
	}
	if len(weekEvents) == 0 {
		weekEvents = events
	}

	title := fmt.Sprintf("%s (Week of %s)", opts.TitlePrefix, weekStart.Format("2006-01-02"))
	if opts.IncludeCommand {
		title += " (!calendar)"
	}
	footer := fmt.Sprintf("Source: MarketWatch (%s)", sourceURL)

	var message string
	for _, budget := range opts.PerDayBudgets {
		lines := buildWeekLines(weekEvents, budget, opts.LineBudget)
		message = format.Response(title, lines, footer)
		if len(message) <= opts.MessageBudget {
			return message
		}
	}
	return truncate(message, opts.MessageBudget)
}

// FetchError renders the standard error block for a failed page fetch. A
// 401 usually means MarketWatch rejected the session, which a cookie can
// fix.
func FetchError(err error) string {
	detail := fmt.Sprintf("Could not reach MarketWatch (%v).", err)
	if err != nil && strings.Contains(err.Error(), "401") {
		detail += " MarketWatch blocked the request; set MARKETWATCH_COOKIE if needed."
	}
	return format.Error(actionName, detail)
}

// NoEventsError renders the error block for a page that yielded nothing.
func NoEventsError() string {
	return format.Error(actionName, "No events found. MarketWatch layout may have changed.")
}

// buildWeekLines groups events by date and renders one line per day in
// chronological order.
func buildWeekLines(events []event.Event, maxPerDay, lineBudget int) []string {
	grouped := make(map[time.Time][]event.Event)
	for _, evt := range events {
		grouped[evt.Date] = append(grouped[evt.Date], evt)
	}

	days := make([]time.Time, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	lines := make([]string, 0, len(days))
	for _, day := range days {
		dayEvents := grouped[day]
		sort.SliceStable(dayEvents, func(i, j int) bool {
			ki, kj := event.TimeSortKey(dayEvents[i].Time), event.TimeSortKey(dayEvents[j].Time)
			if ki != kj {
				return ki < kj
			}
			return dayEvents[i].Title < dayEvents[j].Title
		})

		summaries := make([]string, 0, len(dayEvents))
		for _, evt := range dayEvents {
			summaries = append(summaries, eventSummary(evt))
		}

		remaining := 0
		if len(summaries) > maxPerDay {
			remaining = len(summaries) - maxPerDay
			summaries = summaries[:maxPerDay]
		}

		line := day.Format("Mon 01/02") + ": " + strings.Join(summaries, "; ")
		if remaining > 0 {
			line += fmt.Sprintf("; +%d more", remaining)
		}
		lines = append(lines, truncate(line, lineBudget))
	}

	return lines
}

// eventSummary renders one event as "{time - }title{ (country, impact)}".
func eventSummary(evt event.Event) string {
	label := evt.Title
	if label == "" {
		label = "Unknown Event"
	}
	if evt.Time != "" {
		label = evt.Time + " - " + label
	}

	details := make([]string, 0, 2)
	if evt.Country != "" {
		details = append(details, evt.Country)
	}
	if evt.Impact != "" {
		details = append(details, evt.Impact)
	}
	if len(details) > 0 {
		label += " (" + strings.Join(details, ", ") + ")"
	}
	return label
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	// No room for the ellipsis under tiny budgets; cut flat instead of
	// slicing out of range.
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
