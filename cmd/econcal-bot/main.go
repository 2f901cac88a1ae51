package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/mstrand/econcal/internal/config"
	"github.com/mstrand/econcal/internal/digest"
	"github.com/mstrand/econcal/internal/discord"
	"github.com/mstrand/econcal/internal/fetch"
	"github.com/mstrand/econcal/internal/logger"
	"github.com/mstrand/econcal/internal/market"
	"github.com/mstrand/econcal/internal/scheduler"
	"github.com/mstrand/econcal/internal/storage"
)

var configPath = flag.String("config", "", "Path to YAML config file")

// sessionPoster adapts a discordgo session to the scheduler.
type sessionPoster struct {
	session *discordgo.Session
}

func (p sessionPoster) Post(channelID, content string) error {
	_, err := p.session.ChannelMessageSend(channelID, content)
	return err
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cfg.Discord.Token == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	fetcher := newFetcher(cfg)
	handler := discord.NewHandler(cfg, fetcher, market.New(cfg.QuoteURL))
	handler.Register(session)

	if err := session.Open(); err != nil {
		return fmt.Errorf("connecting to gateway: %w", err)
	}
	defer session.Close()
	logger.Info("bot connected", logger.Fields{"prefix": cfg.Discord.CommandPrefix})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Discord.DigestChannelID != "" {
		store, err := storage.New(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		opts := digest.Options{
			MessageBudget: cfg.Calendar.MessageBudget,
			LineBudget:    cfg.Calendar.LineBudget,
			PerDayBudgets: cfg.Calendar.PerDayBudgets,
		}
		sched := scheduler.New(store, fetcher, opts, cfg.Discord.DigestChannelID, cfg.Calendar.PostInterval)
		go sched.Run(ctx, sessionPoster{session})
		logger.Info("weekly digest scheduler started", logger.Fields{
			"channel":  cfg.Discord.DigestChannelID,
			"interval": cfg.Calendar.PostInterval.String(),
		})
	}

	<-ctx.Done()
	logger.Info("shutting down", nil)
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
