// Package config loads econcal configuration from an optional YAML file
// with sane defaults, then applies environment overrides for secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DiscordConfig configures the bot surface.
type DiscordConfig struct {
	Token           string `yaml:"token"`             // env: BOT_TOKEN
	CommandPrefix   string `yaml:"command_prefix"`    // default "!"
	PostCategoryID  string `yaml:"post_category_id"`  // category for !post channels
	PostModeratorID string `yaml:"post_moderator_id"` // role allowed to use !post
	DigestChannelID string `yaml:"digest_channel_id"` // weekly digest target; empty disables the scheduler
}

// CalendarConfig configures fetching and weekly rendering.
type CalendarConfig struct {
	BaseURL       string        `yaml:"base_url"`
	URLs          []string      `yaml:"urls"`
	Cookie        string        `yaml:"cookie"` // env: MARKETWATCH_COOKIE
	MessageBudget int           `yaml:"message_budget"`
	LineBudget    int           `yaml:"line_budget"`
	PerDayBudgets []int         `yaml:"per_day_budgets"`
	PostInterval  time.Duration `yaml:"post_interval"` // scheduler poll interval
}

// TwitterConfig carries the optional digest-notifier credentials.
type TwitterConfig struct {
	APIKey       string `yaml:"api_key"`       // env: TWITTER_API_KEY
	APISecret    string `yaml:"api_secret"`    // env: TWITTER_API_SECRET
	AccessToken  string `yaml:"access_token"`  // env: TWITTER_ACCESS_TOKEN
	AccessSecret string `yaml:"access_secret"` // env: TWITTER_ACCESS_SECRET
}

// Config is the root configuration.
type Config struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Calendar CalendarConfig `yaml:"calendar"`
	Twitter  TwitterConfig  `yaml:"twitter"`
	QuoteURL string         `yaml:"quote_url"` // market-data endpoint override
	DataDir  string         `yaml:"data_dir"`  // scheduler state directory
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Discord: DiscordConfig{
			CommandPrefix: "!",
		},
		Calendar: CalendarConfig{
			MessageBudget: 1800,
			LineBudget:    320,
			PerDayBudgets: []int{6, 3, 1},
			PostInterval:  time.Hour,
		},
		DataDir: "~/.local/share/econcal",
	}
}

// Load reads the YAML file at path (missing files yield defaults) and then
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	override(&cfg.Discord.Token, "BOT_TOKEN")
	override(&cfg.Discord.PostCategoryID, "POST_CATEGORY_ID")
	override(&cfg.Discord.PostModeratorID, "POST_MODERATOR_ROLE_ID")
	override(&cfg.Discord.DigestChannelID, "DIGEST_CHANNEL_ID")
	override(&cfg.Calendar.Cookie, "MARKETWATCH_COOKIE")
	override(&cfg.Twitter.APIKey, "TWITTER_API_KEY")
	override(&cfg.Twitter.APISecret, "TWITTER_API_SECRET")
	override(&cfg.Twitter.AccessToken, "TWITTER_ACCESS_TOKEN")
	override(&cfg.Twitter.AccessSecret, "TWITTER_ACCESS_SECRET")
}

func override(target *string, env string) {
	if value := os.Getenv(env); value != "" {
		*target = value
	}
}

func validate(cfg *Config) error {
	if cfg.Calendar.MessageBudget <= 0 {
		return fmt.Errorf("calendar.message_budget must be positive, got %d", cfg.Calendar.MessageBudget)
	}
	if cfg.Calendar.LineBudget <= 0 {
		return fmt.Errorf("calendar.line_budget must be positive, got %d", cfg.Calendar.LineBudget)
	}
	for _, budget := range cfg.Calendar.PerDayBudgets {
		if budget <= 0 {
			return fmt.Errorf("calendar.per_day_budgets entries must be positive, got %d", budget)
		}
	}
	if cfg.Discord.CommandPrefix == "" {
		cfg.Discord.CommandPrefix = "!"
	}
	return nil
}
