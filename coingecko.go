package valutatrade

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
)

// CoinGeckoProvider quotes crypto tickers against the base currency using
// the CoinGecko simple-price endpoint. CoinGecko already reports the price
// of 1 unit of the asset in the base currency, so no inversion is needed.
type CoinGeckoProvider struct {
	baseURL string
	base    string
	coins   map[string]string // ticker -> coingecko id
	client  *http.Client
}

// NewCoinGeckoProvider builds the provider from the settings. The HTTP
// client carries the configured timeout; a fetch exceeding it fails the
// provider for that run.
func NewCoinGeckoProvider(s Settings) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		baseURL: s.CoinGeckoURL,
		base:    strings.ToUpper(s.BaseCurrency),
		coins:   s.CryptoIDs,
		client:  &http.Client{Timeout: s.RequestTimeout},
	}
}

func (p *CoinGeckoProvider) Name() string { return "CoinGecko" }

// FetchRates asks for all configured coins in one request and extracts one
// quote per coin found in the payload. A coin missing from the payload is
// skipped; it degrades coverage, not the run.
func (p *CoinGeckoProvider) FetchRates(ctx context.Context) ([]Quote, error) {
	tickers := make([]string, 0, len(p.coins))
	ids := make([]string, 0, len(p.coins))
	for ticker, id := range p.coins {
		tickers = append(tickers, ticker)
		ids = append(ids, id)
	}
	slices.Sort(tickers)
	slices.Sort(ids)

	vs := strings.ToLower(p.base)
	addr := fmt.Sprintf("%s?ids=%s&vs_currencies=%s",
		p.baseURL, url.QueryEscape(strings.Join(ids, ",")), url.QueryEscape(vs))

	requestID := uuid.NewString()
	start := time.Now()

	// The payload is keyed by coin id: {"bitcoin": {"usd": 50000}, ...}.
	// Keys are dynamic, so values are extracted with jsonpath.
	var jobj any
	status, err := fetchJSON(ctx, p.client, addr, &jobj)
	if err != nil {
		return nil, &ApiRequestError{Provider: p.Name(), Err: err}
	}
	requestMs := time.Since(start).Milliseconds()
	now := time.Now().UTC()

	var quotes []Quote
	for _, ticker := range tickers {
		id := p.coins[ticker]
		jval, err := jsonpath.Get(fmt.Sprintf("$.%s.%s", id, vs), jobj)
		if err != nil {
			continue
		}
		price, ok := jval.(float64)
		if !ok || price <= 0 {
			continue
		}
		quotes = append(quotes, Quote{
			Pair:         Pair(ticker, p.base),
			FromCurrency: ticker,
			ToCurrency:   p.base,
			Rate:         price,
			Timestamp:    now,
			Source:       p.Name(),
			Meta: map[string]any{
				"raw_id":      id,
				"request_ms":  requestMs,
				"status_code": status,
				"request_id":  requestID,
			},
		})
	}
	return quotes, nil
}
