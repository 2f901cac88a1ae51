package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mstrand/econcal/internal/config"
	"github.com/mstrand/econcal/internal/digest"
	"github.com/mstrand/econcal/internal/extract"
	"github.com/mstrand/econcal/internal/fetch"
	"github.com/mstrand/econcal/internal/ics"
	"github.com/mstrand/econcal/internal/notifier"
)

var (
	flagConfig string
	flagTweet  bool
	flagDryRun bool
	flagOut    string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "econcal",
		Short: "Fetch and summarize this week's economic calendar",
		Long: `A CLI tool for the MarketWatch economic calendar.
Fetches the calendar page, extracts this week's events and renders
them as a compact digest or an iCalendar file.`,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")

	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newICSCmd())

	return cmd
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print this week's digest",
		RunE:  runSummary,
	}
	cmd.Flags().BoolVar(&flagTweet, "tweet", false, "Post the digest to the configured Twitter account")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "With --tweet, print the tweet instead of posting")
	return cmd
}

func newICSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the extracted events as an iCalendar file",
		RunE:  runICS,
	}
	cmd.Flags().StringVar(&flagOut, "out", "", "Output path (default stdout)")
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	summary := digest.Report(cmd.Context(), newFetcher(cfg), time.Now(), digest.Options{
		MessageBudget: cfg.Calendar.MessageBudget,
		LineBudget:    cfg.Calendar.LineBudget,
		PerDayBudgets: cfg.Calendar.PerDayBudgets,
	})
	fmt.Fprintln(cmd.OutOrStdout(), summary)

	if !flagTweet {
		return nil
	}
	return tweet(cmd, cfg, summary)
}

func tweet(cmd *cobra.Command, cfg config.Config, summary string) error {
	var sink notifier.Notifier
	if flagDryRun {
		sink = &notifier.DryRunNotifier{Out: cmd.OutOrStdout()}
	} else {
		twitter, err := notifier.NewTwitterNotifier(cfg.Twitter)
		if err != nil {
			return fmt.Errorf("configuring notifier: %w", err)
		}
		sink = twitter
	}
	if err := sink.Notify(summary); err != nil {
		return fmt.Errorf("posting digest: %w", err)
	}
	return nil
}

func runICS(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	html, sourceURL, err := newFetcher(cfg).Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching calendar: %w", err)
	}
	events, err := extract.Events(html, time.Now())
	if err != nil {
		return fmt.Errorf("extracting events: %w", err)
	}

	calendar := ics.Generate(events, sourceURL)
	if flagOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), calendar)
		return nil
	}
	if err := os.WriteFile(flagOut, []byte(calendar), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", len(events), flagOut)
	return nil
}

func newFetcher(cfg config.Config) *fetch.Client {
	var opts []fetch.Option
	if len(cfg.Calendar.URLs) > 0 {
		opts = append(opts, fetch.WithURLs(cfg.Calendar.BaseURL, cfg.Calendar.URLs))
	}
	if cfg.Calendar.Cookie != "" {
		opts = append(opts, fetch.WithCookie(cfg.Calendar.Cookie))
	}
	return fetch.New(opts...)
}

// Execute runs the root command.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
