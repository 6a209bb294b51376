package valutatrade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExchangeRateProvider quotes fiat currencies against the base currency
// using the ExchangeRate-API "latest" endpoint.
//
// The upstream convention is inverted with respect to the canonical
// contract: it reports how many units of each currency one unit of the base
// buys (e.g. RUB: 98 per 1 USD). Quotes are therefore algebraically
// inverted before being emitted, so that Rate is the price of 1 unit of the
// currency in the base (1 RUB = 0.0102 USD).
type ExchangeRateProvider struct {
	baseURL string
	apiKey  string
	base    string
	fiats   []string
	client  *http.Client
}

// NewExchangeRateProvider builds the provider from the settings.
func NewExchangeRateProvider(s Settings) *ExchangeRateProvider {
	return &ExchangeRateProvider{
		baseURL: s.ExchangeRateURL,
		apiKey:  s.ExchangeRateAPIKey,
		base:    strings.ToUpper(s.BaseCurrency),
		fiats:   s.FiatCurrencies,
		client:  &http.Client{Timeout: s.RequestTimeout},
	}
}

func (p *ExchangeRateProvider) Name() string { return "ExchangeRate-API" }

// FetchRates fetches the latest conversion table for the base currency and
// emits one inverted quote per configured fiat code present in it.
//
// A missing API key disables only this provider: it is a fetch failure, not
// a crash.
func (p *ExchangeRateProvider) FetchRates(ctx context.Context) ([]Quote, error) {
	if p.apiKey == "" {
		return nil, &ApiRequestError{Provider: p.Name(), Err: errors.New(envExchangeRateAPIKey + " is not set")}
	}

	addr := fmt.Sprintf("%s/%s/latest/%s", p.baseURL, p.apiKey, p.base)
	requestID := uuid.NewString()
	start := time.Now()

	var payload struct {
		Result          string             `json:"result"`
		ErrorType       string             `json:"error-type"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	status, err := fetchJSON(ctx, p.client, addr, &payload)
	if err != nil {
		return nil, &ApiRequestError{Provider: p.Name(), Err: err}
	}
	if payload.Result != "success" {
		return nil, &ApiRequestError{Provider: p.Name(), Err: fmt.Errorf("api error: %s", payload.ErrorType)}
	}
	requestMs := time.Since(start).Milliseconds()
	now := time.Now().UTC()

	var quotes []Quote
	for _, code := range p.fiats {
		perBase, ok := payload.ConversionRates[code]
		if !ok || perBase <= 0 {
			continue
		}
		quotes = append(quotes, Quote{
			Pair:         Pair(code, p.base),
			FromCurrency: code,
			ToCurrency:   p.base,
			Rate:         1 / perBase,
			Timestamp:    now,
			Source:       p.Name(),
			Meta: map[string]any{
				"request_ms":  requestMs,
				"status_code": status,
				"request_id":  requestID,
			},
		})
	}
	return quotes, nil
}
