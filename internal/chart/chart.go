// Package chart renders dark-mode price charts for the chart command.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mstrand/econcal/internal/market"
)

// periodIntervals maps a requested period to the bar interval used for it.
var periodIntervals = map[string]string{
	"1d":  "5m",
	"5d":  "15m",
	"1mo": "30m",
	"3mo": "1d",
	"6mo": "1d",
	"1y":  "1d",
	"2y":  "1d",
	"5y":  "1wk",
	"max": "1mo",
}

// DefaultPeriod is used when the command omits a period.
const DefaultPeriod = "1d"

// Palette matches the bot's dark theme.
var (
	colorBackground = drawing.ColorFromHex("0d1117")
	colorGrid       = drawing.ColorFromHex("30363d")
	colorText       = drawing.ColorFromHex("c9d1d9")
	colorUp         = drawing.ColorFromHex("26a69a")
	colorDown       = drawing.ColorFromHex("ef5350")
)

// ValidPeriods lists the accepted period tokens for help/error text.
func ValidPeriods() string {
	return "1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, max"
}

// Result carries a rendered chart and its caption.
type Result struct {
	PNG      []byte
	Filename string
	Caption  string
}

// Render fetches price history for ticker and renders a dark-mode close
// chart with a price-change caption.
func Render(ctx context.Context, client *market.Client, ticker, period string) (*Result, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	periodKey := strings.ToLower(strings.TrimSpace(period))
	if periodKey == "" {
		periodKey = DefaultPeriod
	}

	interval, ok := periodIntervals[periodKey]
	if !ok {
		return nil, fmt.Errorf("invalid period %q (valid periods: %s)", period, ValidPeriods())
	}

	candles, err := client.History(ctx, symbol, periodKey, interval)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	quote, err := client.LatestQuote(ctx, symbol)
	displayName := symbol
	if err == nil && !strings.EqualFold(quote.Name, symbol) {
		displayName = fmt.Sprintf("%s (%s)", quote.Name, symbol)
	}

	times := make([]time.Time, 0, len(candles))
	closes := make([]float64, 0, len(candles))
	for _, candle := range candles {
		if candle.Close == 0 {
			continue
		}
		times = append(times, candle.Time)
		closes = append(closes, candle.Close)
	}
	if len(closes) < 2 {
		return nil, fmt.Errorf("not enough chart data for %s", symbol)
	}

	first, last := closes[0], closes[len(closes)-1]
	change := last - first
	percent := 0.0
	if first != 0 {
		percent = change / first * 100
	}
	sign := "+"
	lineColor := colorUp
	if change < 0 {
		sign = "-"
		lineColor = colorDown
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("%s (%s)", displayName, periodKey),
		TitleStyle: chart.Style{
			FontColor: colorText,
		},
		Background: chart.Style{
			FillColor: colorBackground,
		},
		Canvas: chart.Style{
			FillColor: colorBackground,
		},
		XAxis: chart.XAxis{
			Style: chart.Style{
				FontColor:   colorText,
				StrokeColor: colorGrid,
			},
			ValueFormatter: chart.TimeValueFormatterWithFormat(axisTimeFormat(periodKey, interval)),
			GridMajorStyle: chart.Style{
				StrokeColor: colorGrid,
				StrokeWidth: 1,
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor:   colorText,
				StrokeColor: colorGrid,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: colorGrid,
				StrokeWidth: 1,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    symbol,
				XValues: times,
				YValues: closes,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}

	caption := fmt.Sprintf("**%s Chart (%s)**\nLast Price: $%.2f\nChange: %s$%.2f (%s%.2f%%)",
		displayName, periodKey, last, sign, abs(change), sign, abs(percent))

	return &Result{
		PNG:      buf.Bytes(),
		Filename: fmt.Sprintf("%s_%s_dark_chart.png", symbol, periodKey),
		Caption:  caption,
	}, nil
}

// axisTimeFormat picks an x-axis label format so intraday charts show
// clock time and long ranges show dates.
func axisTimeFormat(period, interval string) string {
	switch {
	case strings.HasSuffix(interval, "m") && !strings.HasSuffix(interval, "mo"):
		if period == "1d" {
			return "15:04"
		}
		return "Jan 02 15:04"
	case strings.HasSuffix(interval, "d"), strings.HasSuffix(interval, "wk"):
		return "Jan 02"
	default:
		return "2006-01"
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
