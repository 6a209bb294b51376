package valutatrade

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExchangeRateProvider_InvertsUpstreamConvention(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/test-key/latest/USD") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"result":"success","conversion_rates":{"EUR":0.9,"RUB":98,"GBP":0,"USD":1}}`))
	}))
	defer server.Close()

	settings := DefaultSettings(t.TempDir())
	settings.ExchangeRateURL = server.URL
	settings.ExchangeRateAPIKey = "test-key"
	settings.FiatCurrencies = []string{"EUR", "GBP", "RUB", "JPY"}

	quotes, err := NewExchangeRateProvider(settings).FetchRates(context.Background())
	if err != nil {
		t.Fatalf("FetchRates: %v", err)
	}

	// GBP (zero) and JPY (absent) are skipped.
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2: %v", len(quotes), quotes)
	}
	byPair := map[string]float64{}
	for _, q := range quotes {
		byPair[q.Pair] = q.Rate
	}
	// Upstream says 98 RUB per 1 USD; the canonical quote is the price of
	// 1 RUB in USD.
	if got, want := byPair["RUB_USD"], 1.0/98; math.Abs(got-want) > 1e-12 {
		t.Errorf("RUB_USD rate = %v, want inverted %v", got, want)
	}
	if got := byPair["EUR_USD"]; math.Abs(got-1.0/0.9) > 1e-12 {
		t.Errorf("EUR_USD rate = %v, want %v", got, 1.0/0.9)
	}
}

func TestExchangeRateProvider_MissingKeyDisablesProvider(t *testing.T) {
	settings := DefaultSettings(t.TempDir())
	settings.ExchangeRateAPIKey = ""

	_, err := NewExchangeRateProvider(settings).FetchRates(context.Background())
	var apiErr *ApiRequestError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchRates without key error = %v, want *ApiRequestError", err)
	}
	if apiErr.Provider != "ExchangeRate-API" {
		t.Errorf("error names provider %q, want ExchangeRate-API", apiErr.Provider)
	}
}

func TestExchangeRateProvider_UpstreamErrorResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	}))
	defer server.Close()

	settings := DefaultSettings(t.TempDir())
	settings.ExchangeRateURL = server.URL
	settings.ExchangeRateAPIKey = "bad-key"

	_, err := NewExchangeRateProvider(settings).FetchRates(context.Background())
	var apiErr *ApiRequestError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchRates error = %v, want *ApiRequestError", err)
	}
	if !strings.Contains(apiErr.Error(), "invalid-key") {
		t.Errorf("error %q should carry the upstream error-type", apiErr)
	}
}
