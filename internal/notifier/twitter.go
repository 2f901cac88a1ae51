package notifier

import (
	"fmt"
	"strings"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/mstrand/econcal/internal/config"
)

// tweetLimit is Twitter's character cap.
const tweetLimit = 280

// TwitterNotifier posts weekly summaries to Twitter.
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier from config credentials.
func NewTwitterNotifier(cfg config.TwitterConfig) (*TwitterNotifier, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.AccessToken == "" || cfg.AccessSecret == "" {
		return nil, fmt.Errorf("missing Twitter credentials")
	}

	oauthConfig := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	httpClient := oauthConfig.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify posts the summary as a single tweet, stripping the bot's bold
// markers and truncating to the tweet limit.
func (n *TwitterNotifier) Notify(summary string) error {
	if _, _, err := n.client.Statuses.Update(formatTweet(summary), nil); err != nil {
		return fmt.Errorf("posting tweet: %w", err)
	}
	return nil
}

func formatTweet(summary string) string {
	tweet := strings.ReplaceAll(summary, "**", "")
	if len(tweet) > tweetLimit {
		tweet = tweet[:tweetLimit-3] + "..."
	}
	return tweet
}
