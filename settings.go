package valutatrade

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by LoadSettings.
const (
	envExchangeRateAPIKey = "EXCHANGERATE_API_KEY"
	envBaseCurrency       = "VALUTATRADE_BASE_CURRENCY"
	envDataDir            = "VALUTATRADE_DATA_DIR"
)

// Settings gathers every knob of the hub in one explicit value.
// It is constructed once and passed by value to each component;
// there is no hidden global configuration.
type Settings struct {
	DataDir string
	LogsDir string

	UsersFile      string
	PortfoliosFile string
	RatesFile      string // current-best snapshot
	HistoryFile    string // append-only quote history
	LogFile        string

	// BaseCurrency is the currency all valuations and settlements are
	// expressed in.
	BaseCurrency string

	// RatesTTL is the advisory freshness window for a rate. It is reported,
	// never enforced.
	RatesTTL time.Duration

	// Provider configuration. Each provider reads only its own fields.
	CoinGeckoURL       string
	ExchangeRateURL    string
	ExchangeRateAPIKey string
	RequestTimeout     time.Duration

	// FiatCurrencies lists the fiat codes the fiat provider quotes against
	// the base currency.
	FiatCurrencies []string
	// CryptoIDs maps crypto tickers to the ids the crypto provider
	// understands (BTC -> bitcoin).
	CryptoIDs map[string]string
}

// DefaultSettings returns the settings rooted at baseDir, with the stock
// provider endpoints and currency sets.
func DefaultSettings(baseDir string) Settings {
	dataDir := filepath.Join(baseDir, "data")
	logsDir := filepath.Join(baseDir, "logs")
	return Settings{
		DataDir:        dataDir,
		LogsDir:        logsDir,
		UsersFile:      filepath.Join(dataDir, "users.json"),
		PortfoliosFile: filepath.Join(dataDir, "portfolios.json"),
		RatesFile:      filepath.Join(dataDir, "rates.json"),
		HistoryFile:    filepath.Join(dataDir, "exchange_rates.json"),
		LogFile:        filepath.Join(logsDir, "actions.log"),

		BaseCurrency: "USD",
		RatesTTL:     5 * time.Minute,

		CoinGeckoURL:    "https://api.coingecko.com/api/v3/simple/price",
		ExchangeRateURL: "https://v6.exchangerate-api.com/v6",
		RequestTimeout:  15 * time.Second,

		FiatCurrencies: []string{"EUR", "GBP", "RUB", "JPY", "CNY"},
		CryptoIDs: map[string]string{
			"BTC":  "bitcoin",
			"ETH":  "ethereum",
			"SOL":  "solana",
			"USDT": "tether",
		},
	}
}

// LoadSettings builds the settings from defaults, an optional .env file and
// the process environment. A missing .env file is not an error. An empty
// baseDir falls back to VALUTATRADE_DATA_DIR, then the working directory.
func LoadSettings(baseDir string) (Settings, error) {
	_ = godotenv.Load()

	if baseDir == "" {
		baseDir = os.Getenv(envDataDir)
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("cannot determine working directory: %w", err)
		}
		baseDir = wd
	}

	s := DefaultSettings(baseDir)
	s.ExchangeRateAPIKey = os.Getenv(envExchangeRateAPIKey)
	if base := os.Getenv(envBaseCurrency); base != "" {
		if _, err := GetCurrency(base); err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", envBaseCurrency, err)
		}
		s.BaseCurrency = base
	}
	return s, nil
}

// EnsureDirs creates the data and logs directories if they do not exist.
func (s Settings) EnsureDirs() error {
	for _, dir := range []string{s.DataDir, s.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}
	}
	return nil
}
