// Package format renders the bold-title response and error blocks used by
// every command surface.
package format

import "strings"

// Response builds a "**title**" block with one "- " bullet per line and an
// optional footer.
func Response(title string, lines []string, footer string) string {
	var msg strings.Builder
	msg.WriteString("**")
	msg.WriteString(title)
	msg.WriteString("**")
	for _, line := range lines {
		msg.WriteString("\n- ")
		msg.WriteString(line)
	}
	if footer != "" {
		msg.WriteString("\n")
		msg.WriteString(footer)
	}
	return msg.String()
}

// Error builds the standard "**<action> Error**" block.
func Error(action, detail string) string {
	var msg strings.Builder
	msg.WriteString("**")
	msg.WriteString(action)
	msg.WriteString(" Error**")
	if detail != "" {
		msg.WriteString("\n- ")
		msg.WriteString(detail)
	}
	return msg.String()
}
