package discord

import (
	"fmt"
	"strings"

	"github.com/mstrand/econcal/internal/format"
)

type commandHelp struct {
	usage       string
	description string
	details     []string
	examples    []string
}

var helpOrder = []string{
	"help",
	"calendar",
	"price",
	"chart",
	"post",
	"rsa",
	"health",
	"usercount",
	"test_all",
}

var helpCommands = map[string]commandHelp{
	"help": {
		usage:       "!help [command]",
		description: "Shows command usage and examples.",
		examples:    []string{"!help", "!help chart"},
	},
	"calendar": {
		usage:       "!calendar",
		description: "Posts this week's economic calendar.",
		examples:    []string{"!calendar"},
	},
	"price": {
		usage:       "!price <ticker>",
		description: "Fetches the current or most recent stock price.",
		examples:    []string{"!price AAPL", "!price NVDA"},
	},
	"chart": {
		usage:       "!chart <ticker> [period]",
		description: "Generates a dark mode stock chart image. Default period is 1d.",
		details:     []string{"Valid periods: `1d`, `5d`, `1mo`, `3mo`, `6mo`, `1y`, `2y`, `5y`, `max`."},
		examples:    []string{"!chart TSLA", "!chart AAPL 6mo"},
	},
	"post": {
		usage:       "!post <ticker> <split_ratio> <last_day_to_buy> <source_link>",
		description: "Creates a new reverse split channel in the configured category and posts an `@everyone` alert.",
		details: []string{
			"Access: only users with the configured moderator role ID can run this command.",
			"Date formats: `YYYY-MM-DD`, `MM/DD/YYYY`, `Mon-DD-YYYY`, `Month DD, YYYY`, `MM/DD`, `Mon-DD`.",
			"Channel format: `⏰-ticker-mon-day` (example: `⏰-aapl-feb-12`).",
		},
		examples: []string{"!post AAPL 1:10 2026-02-20 https://example.com/source"},
	},
	"rsa": {
		usage:       "!rsa <ticker> <split_ratio>",
		description: "Estimates profitability of a reverse split arbitrage setup.",
		details:     []string{"Split ratio format must be small:big (example: `1:10`)."},
		examples:    []string{"!rsa AAPL 1:10", "!rsa TSLA 1:5"},
	},
	"health": {
		usage:       "!health",
		description: "Shows server health details (CPU, memory, disk, temperature, uptime).",
		examples:    []string{"!health"},
	},
	"usercount": {
		usage:       "!usercount",
		description: "Returns the total number of members in the current server.",
		examples:    []string{"!usercount"},
	},
	"test_all": {
		usage:       "!test_all",
		description: "Runs a quick sample check for bot commands.",
		examples:    []string{"!test_all"},
	},
}

func (h *Handler) helpCommand(args []string) string {
	if len(args) == 0 {
		return format.Response("Help", helpOverviewLines(), "")
	}

	raw := args[0]
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "!")
	entry, ok := helpCommands[key]
	if !ok {
		return format.Error("Help",
			fmt.Sprintf("Unknown command '%s'. Use `!help` to list commands.", raw))
	}

	lines := []string{
		fmt.Sprintf("Usage: `%s`", entry.usage),
		fmt.Sprintf("Description: %s", entry.description),
	}
	lines = append(lines, entry.details...)
	lines = append(lines, "Examples:")
	for _, example := range entry.examples {
		lines = append(lines, fmt.Sprintf("`%s`", example))
	}
	return format.Response(fmt.Sprintf("Help: %s", key), lines, "")
}

func helpOverviewLines() []string {
	lines := []string{"Use `!help <command>` for full usage and examples."}
	for _, name := range helpOrder {
		entry := helpCommands[name]
		lines = append(lines, fmt.Sprintf("`%s` - %s", entry.usage, entry.description))
		lines = append(lines, fmt.Sprintf("Example: `%s`", entry.examples[0]))
	}
	return lines
}
