package discord

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mstrand/econcal/internal/chart"
	"github.com/mstrand/econcal/internal/digest"
	"github.com/mstrand/econcal/internal/format"
	"github.com/mstrand/econcal/internal/health"
	"github.com/mstrand/econcal/internal/logger"
	"github.com/mstrand/econcal/internal/split"
)

func (h *Handler) calendarCommand(ctx context.Context) string {
	opts := digest.Options{
		IncludeCommand: true,
		MessageBudget:  h.cfg.Calendar.MessageBudget,
		LineBudget:     h.cfg.Calendar.LineBudget,
		PerDayBudgets:  h.cfg.Calendar.PerDayBudgets,
	}
	return digest.Report(ctx, h.fetcher, h.now(), opts)
}

func (h *Handler) priceCommand(ctx context.Context, args []string) string {
	if len(args) < 1 {
		return format.Error("Price Lookup", "Usage: `!price <ticker>`")
	}
	ticker := strings.ToUpper(args[0])

	quote, err := h.market.LatestQuote(ctx, ticker)
	if err != nil {
		logger.Warn("price lookup failed", logger.Fields{"ticker": ticker, "error": err.Error()})
		return format.Error("Price Lookup",
			fmt.Sprintf("Could not retrieve the last price for ticker %s.", ticker))
	}

	return format.Response(
		fmt.Sprintf("Price for %s", ticker),
		[]string{fmt.Sprintf("Last Price: $%.2f", quote.Price)},
		"",
	)
}

func (h *Handler) rsaCommand(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return format.Error("Reverse Split Arbitrage", "Usage: `!rsa <ticker> <split_ratio>`")
	}
	ticker := strings.ToUpper(args[0])
	ratio := args[1]

	quote, err := h.market.LatestQuote(ctx, ticker)
	if err != nil {
		logger.Warn("arbitrage price lookup failed", logger.Fields{"ticker": ticker, "error": err.Error()})
		return format.Error("Reverse Split Arbitrage",
			fmt.Sprintf("Could not retrieve the current price for ticker %s.", ticker))
	}

	multiplier, err := split.ParseRatio(ratio)
	if err != nil {
		return format.Error("Reverse Split Arbitrage", capitalize(err.Error()))
	}

	profit := split.Arbitrage(quote.Price, multiplier)
	return format.Response(
		fmt.Sprintf("Reverse Split Arbitrage for %s", ticker),
		[]string{
			fmt.Sprintf("Split Ratio: %s", ratio),
			fmt.Sprintf("Estimated Profitability: $%.2f", profit),
		},
		"",
	)
}

func (h *Handler) chartCommand(ctx context.Context, s session, channelID string, args []string) {
	if len(args) < 1 {
		h.sendError(s, channelID, "Chart", "Usage: `!chart <ticker> [period]`")
		return
	}
	period := chart.DefaultPeriod
	if len(args) > 1 {
		period = args[1]
	}

	result, err := chart.Render(ctx, h.market, args[0], period)
	if err != nil {
		logger.Warn("chart render failed", logger.Fields{"ticker": args[0], "error": err.Error()})
		h.sendError(s, channelID, "Chart", capitalize(err.Error()))
		return
	}

	_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: result.Caption,
		Files: []*discordgo.File{{
			Name:        result.Filename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(result.PNG),
		}},
	})
	if err != nil {
		logger.Error("sending chart failed", logger.Fields{"channel": channelID}, err)
	}
}

func (h *Handler) healthCommand() string {
	return health.Report()
}

func (h *Handler) postCommand(s session, m *discordgo.MessageCreate, args []string) string {
	if m.GuildID == "" {
		return format.Error("Post", "This command can only run in a server.")
	}
	roleID := h.cfg.Discord.PostModeratorID
	if roleID == "" {
		return format.Error("Post", "post_moderator_id is not configured.")
	}
	if !hasRole(m.Member, roleID) {
		return format.Error("Post",
			fmt.Sprintf("Only users with role ID %s can use this command.", roleID))
	}
	if len(args) < 4 {
		return format.Error("Post", "Usage: `!post <ticker> <split_ratio> <last_day_to_buy> <source_link>`")
	}
	ticker, ratio, lastDay, sourceLink := args[0], args[1], args[2], args[3]

	if !strings.HasPrefix(sourceLink, "http://") && !strings.HasPrefix(sourceLink, "https://") {
		return format.Error("Post", "Source link must start with http:// or https://")
	}
	categoryID := h.cfg.Discord.PostCategoryID
	if categoryID == "" {
		return format.Error("Post", "post_category_id is not configured.")
	}

	buyDate, ok := split.ParseBuyDate(lastDay, h.now())
	if !ok {
		return format.Error("Post",
			fmt.Sprintf("Invalid last_day_to_buy date. Supported formats: %s", split.SupportedDateFormats()))
	}

	channelName := split.ChannelName(ticker, buyDate)
	if channelName == "" {
		return format.Error("Post", "Invalid ticker for channel name.")
	}

	newChannel, err := s.GuildChannelCreateComplex(m.GuildID, discordgo.GuildChannelCreateData{
		Name:     channelName,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
	})
	if err != nil {
		logger.Error("creating split channel failed", logger.Fields{"name": channelName}, err)
		return format.Error("Post", "Could not create the new channel in the target category.")
	}
	if err := h.placeSecondFromTop(s, m.GuildID, categoryID, newChannel.ID); err != nil {
		logger.Error("placing split channel failed", logger.Fields{"channel": newChannel.ID}, err)
		return format.Error("Post", "Could not create the new channel in the target category.")
	}

	announcement := split.Announcement(ticker, ratio, buyDate, sourceLink)
	if _, err := s.ChannelMessageSend(newChannel.ID, announcement); err != nil {
		logger.Error("posting split announcement failed", logger.Fields{"channel": newChannel.ID}, err)
		return format.Error("Post",
			fmt.Sprintf("Created channel <#%s>, but failed to post announcement.", newChannel.ID))
	}

	return format.Response("Post",
		[]string{fmt.Sprintf("Created <#%s> and posted the alert.", newChannel.ID)}, "")
}

// placeSecondFromTop moves a freshly created channel directly below the
// category's current top text channel, so the newest alert stays near the
// top without displacing the pinned first channel.
func (h *Handler) placeSecondFromTop(s session, guildID, categoryID, channelID string) error {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return err
	}

	var top *discordgo.Channel
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText || ch.ParentID != categoryID || ch.ID == channelID {
			continue
		}
		if top == nil || ch.Position < top.Position {
			top = ch
		}
	}
	if top == nil {
		// First channel in the category keeps its default slot.
		return nil
	}

	return s.GuildChannelsReorder(guildID, []*discordgo.Channel{
		{ID: channelID, Position: top.Position + 1},
	})
}

// testallCommand runs the read-only commands with sample inputs, labeling
// each reply with the command it exercises.
func (h *Handler) testallCommand(ctx context.Context, s session, channelID string) {
	const sampleTicker = "AAPL"
	const sampleRatio = "1:10"

	price := h.priceCommand(ctx, []string{sampleTicker})
	h.send(s, channelID, labelSample(price,
		fmt.Sprintf("**Price for %s**", sampleTicker),
		fmt.Sprintf("!price %s", sampleTicker)))

	h.send(s, channelID, labelSample(h.healthCommand(), "**Server Health**", "!health"))

	rsa := h.rsaCommand(ctx, []string{sampleTicker, sampleRatio})
	h.send(s, channelID, labelSample(rsa,
		fmt.Sprintf("**Reverse Split Arbitrage for %s**", sampleTicker),
		fmt.Sprintf("!rsa %s %s", sampleTicker, sampleRatio)))

	h.send(s, channelID, h.calendarCommand(ctx))

	h.send(s, channelID, format.Response("Test Run Complete", []string{"All checks finished."}, ""))
}

// labelSample appends "(command)" inside a reply's bold title. Error
// replies pass through unchanged.
func labelSample(reply, title, command string) string {
	labeled := strings.TrimSuffix(title, "**") + fmt.Sprintf(" (%s)**", command)
	return strings.Replace(reply, title, labeled, 1)
}

func (h *Handler) usercountCommand(s session, m *discordgo.MessageCreate) string {
	if m.GuildID == "" {
		return format.Error("User Count", "This command can only run in a server.")
	}
	guild, err := s.Guild(m.GuildID)
	if err != nil {
		logger.Warn("guild lookup failed", logger.Fields{"guild": m.GuildID, "error": err.Error()})
		return format.Error("User Count", "Could not retrieve the member count.")
	}
	return format.Response("Server Members",
		[]string{fmt.Sprintf("Members: %d", guild.MemberCount)}, "")
}

func hasRole(member *discordgo.Member, roleID string) bool {
	if member == nil {
		return false
	}
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
