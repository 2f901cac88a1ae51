// Package notifier publishes the weekly calendar summary to surfaces
// beyond Discord. The Twitter notifier posts the summary as a single
// truncated tweet; the dry-run notifier prints it for local inspection.
package notifier
