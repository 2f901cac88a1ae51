package notifier

import (
	"fmt"
	"io"
)

// DryRunNotifier prints the summary instead of publishing it.
type DryRunNotifier struct {
	Out io.Writer
}

// Notify writes the summary to Out.
func (n *DryRunNotifier) Notify(summary string) error {
	_, err := fmt.Fprintf(n.Out, "[dry-run] would post:\n%s\n", summary)
	return err
}
