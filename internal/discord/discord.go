package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mstrand/econcal/internal/config"
	"github.com/mstrand/econcal/internal/digest"
	"github.com/mstrand/econcal/internal/format"
	"github.com/mstrand/econcal/internal/logger"
	"github.com/mstrand/econcal/internal/market"
)

// commandTimeout bounds one command's outbound work (fetches, rendering).
const commandTimeout = 60 * time.Second

// session is the slice of discordgo.Session the handler uses; a fake
// stands in for it under test.
type session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelsReorder(guildID string, channels []*discordgo.Channel, options ...discordgo.RequestOption) error
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
}

// Handler dispatches prefix commands from Discord messages.
type Handler struct {
	cfg     config.Config
	fetcher digest.Fetcher
	market  *market.Client
	now     func() time.Time
}

// NewHandler creates a command handler.
func NewHandler(cfg config.Config, fetcher digest.Fetcher, marketClient *market.Client) *Handler {
	return &Handler{
		cfg:     cfg,
		fetcher: fetcher,
		market:  marketClient,
		now:     time.Now,
	}
}

// Register attaches the handler to a session.
func (h *Handler) Register(s *discordgo.Session) {
	s.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		h.HandleMessage(sess, m)
	})
}

// HandleMessage processes one incoming message.
func (h *Handler) HandleMessage(s session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	name, args, ok := parseCommand(m.Content, h.cfg.Discord.CommandPrefix)
	if !ok {
		return
	}

	logger.Info("command received", logger.Fields{"command": name, "author": m.Author.ID})

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var reply string
	switch name {
	case "calendar":
		reply = h.calendarCommand(ctx)
	case "price":
		reply = h.priceCommand(ctx, args)
	case "rsa":
		reply = h.rsaCommand(ctx, args)
	case "chart":
		h.chartCommand(ctx, s, m.ChannelID, args)
		return
	case "health":
		reply = h.healthCommand()
	case "post":
		reply = h.postCommand(s, m, args)
	case "usercount":
		reply = h.usercountCommand(s, m)
	case "test_all":
		h.testallCommand(ctx, s, m.ChannelID)
		return
	case "help":
		reply = h.helpCommand(args)
	default:
		return
	}

	if reply != "" {
		h.send(s, m.ChannelID, reply)
	}
}

// parseCommand splits "!name arg arg" into its parts. ok is false for
// non-command messages.
func parseCommand(content, prefix string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

func (h *Handler) send(s session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		logger.Error("sending reply failed", logger.Fields{"channel": channelID}, err)
	}
}

func (h *Handler) sendError(s session, channelID, action, detail string) {
	h.send(s, channelID, format.Error(action, detail))
}
