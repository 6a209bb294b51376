package valutatrade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RateProvider fetches raw price data from one external source and
// normalizes it into canonical quotes. The set of variants is closed:
// CoinGeckoProvider (crypto) and ExchangeRateProvider (fiat).
//
// A failed fetch returns an *ApiRequestError; the aggregator catches it and
// skips the provider for the run, so one bad source never blanks out the
// others.
type RateProvider interface {
	Name() string
	FetchRates(ctx context.Context) ([]Quote, error)
}

// fetchJSON performs an HTTP GET and unmarshals the JSON response into data.
// It returns the HTTP status code when one was received, for provider
// diagnostics.
func fetchJSON(ctx context.Context, client *http.Client, addr string, data any) (status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return 0, fmt.Errorf("cannot build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("cannot read response from %v: %w", req.URL.Host, err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	if err := json.Unmarshal(body, data); err != nil {
		return resp.StatusCode, fmt.Errorf("unparseable payload from %v: %w", req.URL.Host, err)
	}
	return resp.StatusCode, nil
}
