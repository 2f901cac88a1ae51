// Package extract reconciles two unreliable views of the MarketWatch
// economic-calendar page into canonical events.
//
// The page sometimes embeds its data as JSON inside script tags and
// sometimes only renders HTML tables, and both shapes drift. Script blobs
// are mined by a schema-agnostic recursive walk that duck-types object
// nodes against ordered field-alias lists; tables are matched by header
// keywords with section-header rows carrying an implicit date. Each parse
// failure degrades to "no result for this candidate" so a single malformed
// blob never aborts a run.
package extract
