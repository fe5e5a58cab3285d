package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

	// Spot gold in USD per troy ounce.
	goldTicker = "XAUUSD=X"
)

// yahooChartResponse is the v8 chart API response. Only the meta price of
// the first result is consumed.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches gold and forex quotes from the Yahoo Finance chart
// API. Forex pairs use tickers like "USDTRY=X".
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance quote provider.
func NewYahooProvider(httpClient *http.Client) *YahooProvider {
	return &YahooProvider{httpClient: httpClient, baseURL: yahooBaseURL}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// FetchQuote fetches the USD exchange rate for the currency and the spot
// gold price, converted to USD per gram.
func (p *YahooProvider) FetchQuote(ctx context.Context, currency string) (*Quote, error) {
	perOunce, err := p.fetchPrice(ctx, goldTicker)
	if err != nil {
		return nil, fmt.Errorf("fetching gold price: %w", err)
	}

	rate := 1.0
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur != "USD" {
		rate, err = p.fetchPrice(ctx, "USD"+cur+"=X")
		if err != nil {
			return nil, fmt.Errorf("fetching %s rate: %w", cur, err)
		}
	}

	return &Quote{
		CurrencyPerUSD: rate,
		GoldPerGramUSD: perOunce / GramsPerTroyOunce,
		FetchedAt:      time.Now().UTC(),
	}, nil
}

// fetchPrice fetches the regular market price for a single ticker.
func (p *YahooProvider) fetchPrice(ctx context.Context, ticker string) (float64, error) {
	url := p.baseURL + "/" + ticker + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request for %s: %w", ticker, err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return 0, fmt.Errorf("decoding response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil {
		return 0, fmt.Errorf("chart error for %s: %s: %s", ticker, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return 0, fmt.Errorf("no results for %s", ticker)
	}

	price := chartResp.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("invalid price for %s: %f", ticker, price)
	}
	return price, nil
}
