// Package event provides the canonical economic-calendar event type and the
// date/time resolution used across extraction sources.
//
// Source pages expose dates as epoch numbers, ISO-8601 strings, free-text
// "Month Day, Year" forms and relative words like "today". ResolveDateTime
// and ParseDate walk an ordered ladder of formats and report failure as a
// boolean result rather than an error, so callers can skip unparseable
// candidates without aborting a run.
package event
