package notifier

// Notifier posts a rendered weekly summary to an outside surface.
type Notifier interface {
	// Notify publishes the summary text.
	Notify(summary string) error
}
