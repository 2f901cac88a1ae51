// Package split implements the reverse-split helpers: ratio parsing, the
// arbitrage estimate, and the announcement/channel naming used by the post
// command.
package split

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Ratio parse failures carry user-facing reasons.
var (
	ErrRatioFormat     = errors.New("invalid split ratio format. Use 'small:big' with positive numbers (example: 1:10)")
	ErrZeroDenominator = errors.New("invalid split ratio format. Denominator cannot be zero")
)

const clockEmoji = "⏰"

var channelSanitize = regexp.MustCompile(`[^A-Z0-9]`)

// buyDateLayoutsWithYear mirror the formats accepted for last_day_to_buy.
var buyDateLayoutsWithYear = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"Jan-02-2006",
	"Jan/02/2006",
	"January-02-2006",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var buyDateLayoutsNoYear = []string{
	"01/02",
	"01-02",
	"Jan-02",
	"Jan/02",
	"January-02",
	"Jan 2",
	"January 2",
}

// SupportedDateFormats lists the accepted buy-date forms for error text.
func SupportedDateFormats() string {
	return strings.Join(append(append([]string{}, buyDateLayoutsWithYear...), buyDateLayoutsNoYear...), ", ")
}

// ParseRatio parses a "small:big" reverse-split ratio and returns the
// multiplier (big/small).
func ParseRatio(ratio string) (float64, error) {
	parts := strings.Split(ratio, ":")
	if len(parts) != 2 {
		return 0, ErrRatioFormat
	}

	numerator, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	denominator, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, ErrRatioFormat
	}
	if denominator == 0 {
		return 0, ErrZeroDenominator
	}
	if numerator <= 0 || denominator <= 0 {
		return 0, ErrRatioFormat
	}
	// Reverse split ratios are expected in small:big form (e.g., 1:10).
	if numerator >= denominator {
		return 0, ErrRatioFormat
	}
	return denominator / numerator, nil
}

// Arbitrage estimates the per-share profitability of holding through a
// reverse split at the given price and multiplier.
func Arbitrage(price, multiplier float64) float64 {
	return price * (multiplier - 1)
}

// ParseBuyDate parses a last-day-to-buy value; year-less forms take the
// reference year.
func ParseBuyDate(value string, ref time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range buyDateLayoutsWithYear {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	for _, layout := range buyDateLayoutsNoYear {
		if parsed, err := time.Parse(layout+" 2006", fmt.Sprintf("%s %d", raw, ref.Year())); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ChannelName builds the alert channel name, e.g. "⏰-acme-jun-2". Returns
// "" when the ticker sanitizes to nothing.
func ChannelName(ticker string, buyDate time.Time) string {
	key := strings.ToUpper(strings.TrimSpace(ticker))
	sanitized := strings.ToLower(channelSanitize.ReplaceAllString(key, ""))
	if sanitized == "" || buyDate.IsZero() {
		return ""
	}
	month := strings.ToLower(buyDate.Format("Jan"))
	return fmt.Sprintf("%s-%s-%s-%d", clockEmoji, sanitized, month, buyDate.Day())
}

// Announcement builds the @everyone reverse-split alert.
func Announcement(ticker, ratio string, buyDate time.Time, sourceLink string) string {
	return fmt.Sprintf("@everyone\n**Reverse Split Alert: %s**\nSplit Ratio: %s\nLast Day to Buy: %s\nSource: %s",
		strings.ToUpper(strings.TrimSpace(ticker)),
		strings.TrimSpace(ratio),
		FormatBuyDateShort(buyDate),
		strings.TrimSpace(sourceLink))
}

// FormatBuyDateShort renders a buy date as "Jun 2".
func FormatBuyDateShort(buyDate time.Time) string {
	return fmt.Sprintf("%s %d", buyDate.Format("Jan"), buyDate.Day())
}
