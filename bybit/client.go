// Package bybit reads linear-perpetual tickers from Bybit's public v5
// market API.
package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	MainnetURL = "https://api.bybit.com"
	TestnetURL = "https://api-testnet.bybit.com"

	DefaultSymbol  = "BTCUSDT"
	categoryLinear = "linear"
)

// Client is a read-only Bybit market client. Requests go through a token
// bucket so a tight poll loop cannot hammer the public API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient returns a client for baseURL (MainnetURL when empty) allowing
// requestsPerSecond, or unlimited when that is not positive.
func NewClient(baseURL string, requestsPerSecond float64) *Client {
	if baseURL == "" {
		baseURL = MainnetURL
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type tickerItem struct {
	Symbol       string `json:"symbol"`
	LastPrice    string `json:"lastPrice"`
	Price24hPcnt string `json:"price24hPcnt"`
}

type tickersResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string       `json:"category"`
		List     []tickerItem `json:"list"`
	} `json:"result"`
	Time int64 `json:"time"`
}

// Ticker implements market.Feed. Every failure is a
// *market.FeedUnavailableError.
func (c *Client) Ticker(ctx context.Context, symbol string) (market.Ticker, error) {
	if symbol == "" {
		symbol = DefaultSymbol
	}

	t, err := c.ticker(ctx, symbol)
	if err != nil {
		return market.Ticker{}, &market.FeedUnavailableError{Symbol: symbol, Err: err}
	}
	return t, nil
}

func (c *Client) ticker(ctx context.Context, symbol string) (market.Ticker, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return market.Ticker{}, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("category", categoryLinear)
	params.Set("symbol", symbol)
	apiURL := fmt.Sprintf("%s/v5/market/tickers?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return market.Ticker{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp tickersResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return market.Ticker{}, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.RetCode != 0 {
		return market.Ticker{}, fmt.Errorf("API error (retCode %d): %s", apiResp.RetCode, apiResp.RetMsg)
	}
	if len(apiResp.Result.List) == 0 {
		return market.Ticker{}, errors.New("empty ticker list")
	}

	item := apiResp.Result.List[0]
	last, err := decimal.NewFromString(item.LastPrice)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("parse lastPrice %q: %w", item.LastPrice, err)
	}

	// price24hPcnt is a fraction: 0.0123 means 1.23%.
	var change decimal.Decimal
	if item.Price24hPcnt != "" {
		pcnt, err := decimal.NewFromString(item.Price24hPcnt)
		if err != nil {
			return market.Ticker{}, fmt.Errorf("parse price24hPcnt %q: %w", item.Price24hPcnt, err)
		}
		change = pcnt.Shift(2)
	}

	at := time.Now()
	if apiResp.Time > 0 {
		at = time.UnixMilli(apiResp.Time)
	}

	return market.Ticker{
		Symbol:        item.Symbol,
		LastPrice:     last,
		ChangePercent: change,
		Time:          at,
	}, nil
}
