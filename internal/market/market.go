// Package market provides a small Yahoo Finance chart-API client for the
// price and chart commands. A quote is resolved through a fallback chain:
// the regular market price, then the previous close, then the last close
// of the day's history.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	userAgent = "econcal/1.0 (github.com/mstrand/econcal)"
	timeout   = 10 * time.Second
)

// Candle is one OHLC bar.
type Candle struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Quote is a resolved snapshot for a ticker.
type Quote struct {
	Symbol string
	Name   string
	Price  float64
}

// Client talks to the chart API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a market-data client. An empty baseURL selects the public
// endpoint; tests point it at a local server.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// chartResponse mirrors the slice of the chart API payload we consume.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
		ShortName          string  `json:"shortName"`
		LongName           string  `json:"longName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open  []float64 `json:"open"`
			High  []float64 `json:"high"`
			Low   []float64 `json:"low"`
			Close []float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// LatestQuote resolves the most recent price and display name for ticker.
func (c *Client) LatestQuote(ctx context.Context, ticker string) (Quote, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	resp, err := c.chart(ctx, symbol, "1d", "5m")
	if err != nil {
		return Quote{}, err
	}

	price := resp.Meta.RegularMarketPrice
	if price == 0 {
		price = resp.Meta.ChartPreviousClose
	}
	if price == 0 {
		candles := candlesFrom(resp)
		for i := len(candles) - 1; i >= 0; i-- {
			if candles[i].Close != 0 {
				price = candles[i].Close
				break
			}
		}
	}
	if price == 0 {
		return Quote{}, fmt.Errorf("no price data for %s", symbol)
	}

	name := resp.Meta.ShortName
	if name == "" {
		name = resp.Meta.LongName
	}
	if name == "" {
		name = symbol
	}

	return Quote{Symbol: symbol, Name: name, Price: price}, nil
}

// History returns OHLC bars for ticker over the given range and interval
// (chart API tokens, e.g. "1mo"/"30m").
func (c *Client) History(ctx context.Context, ticker, rng, interval string) ([]Candle, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	resp, err := c.chart(ctx, symbol, rng, interval)
	if err != nil {
		return nil, err
	}
	candles := candlesFrom(resp)
	if len(candles) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}
	return candles, nil
}

func (c *Client) chart(ctx context.Context, symbol, rng, interval string) (*chartResult, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(rng), url.QueryEscape(interval))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API error (status %d)", resp.StatusCode)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("quote API error: %s", parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result for %s", symbol)
	}
	return &parsed.Chart.Result[0], nil
}

func candlesFrom(result *chartResult) []Candle {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	candles := make([]Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		candles = append(candles, Candle{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  valueAt(quote.Open, i),
			High:  valueAt(quote.High, i),
			Low:   valueAt(quote.Low, i),
			Close: valueAt(quote.Close, i),
		})
	}
	return candles
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
