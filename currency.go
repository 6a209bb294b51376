package valutatrade

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
)

// CurrencyKind discriminates the two supported currency families.
type CurrencyKind int

const (
	Fiat CurrencyKind = iota
	Crypto
)

func (k CurrencyKind) String() string {
	switch k {
	case Fiat:
		return "FIAT"
	case Crypto:
		return "CRYPTO"
	default:
		return "unknown"
	}
}

// Currency is the capability exposed by every supported currency.
// The set of variants is closed: FiatCurrency and CryptoCurrency.
type Currency interface {
	Code() string
	Name() string
	Kind() CurrencyKind
	// DisplayInfo returns a one-line human readable description.
	DisplayInfo() string
}

// FiatCurrency is a state-issued currency.
type FiatCurrency struct {
	code           string
	name           string
	issuingCountry string
}

func (c FiatCurrency) Code() string       { return c.code }
func (c FiatCurrency) Name() string       { return c.name }
func (c FiatCurrency) Kind() CurrencyKind { return Fiat }

// IssuingCountry returns the country or zone issuing the currency.
func (c FiatCurrency) IssuingCountry() string { return c.issuingCountry }

func (c FiatCurrency) DisplayInfo() string {
	// go-money knows the display symbol for every ISO currency.
	if cur := money.GetCurrency(c.code); cur != nil {
		return fmt.Sprintf("[FIAT] %s (%s) - %s (issuing: %s)", c.code, cur.Grapheme, c.name, c.issuingCountry)
	}
	return fmt.Sprintf("[FIAT] %s - %s (issuing: %s)", c.code, c.name, c.issuingCountry)
}

// CryptoCurrency is a cryptographic asset.
type CryptoCurrency struct {
	code      string
	name      string
	algorithm string
	marketCap string
}

func (c CryptoCurrency) Code() string       { return c.code }
func (c CryptoCurrency) Name() string       { return c.name }
func (c CryptoCurrency) Kind() CurrencyKind { return Crypto }

// Algorithm returns the consensus or token algorithm of the asset.
func (c CryptoCurrency) Algorithm() string { return c.algorithm }

func (c CryptoCurrency) DisplayInfo() string {
	return fmt.Sprintf("[CRYPTO] %s - %s (algo: %s, mcap: %s)", c.code, c.name, c.algorithm, c.marketCap)
}

// supportedCurrencies is the static registry. It is initialized once and
// read-only thereafter.
var supportedCurrencies = map[string]Currency{
	"USD": FiatCurrency{"USD", "US Dollar", "United States"},
	"EUR": FiatCurrency{"EUR", "Euro", "Eurozone"},
	"GBP": FiatCurrency{"GBP", "Pound Sterling", "United Kingdom"},
	"RUB": FiatCurrency{"RUB", "Russian Ruble", "Russia"},
	"JPY": FiatCurrency{"JPY", "Japanese Yen", "Japan"},
	"CNY": FiatCurrency{"CNY", "Yuan Renminbi", "China"},

	"BTC":  CryptoCurrency{"BTC", "Bitcoin", "SHA-256", "1.2T"},
	"ETH":  CryptoCurrency{"ETH", "Ethereum", "Ethash", "400B"},
	"SOL":  CryptoCurrency{"SOL", "Solana", "PoH", "80B"},
	"USDT": CryptoCurrency{"USDT", "Tether", "ERC-20", "100B"},
}

// GetCurrency looks up a currency by code, case-insensitively.
// Unknown codes fail with an error matching ErrCurrencyNotFound.
func GetCurrency(code string) (Currency, error) {
	c, ok := supportedCurrencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, &CurrencyError{Code: code}
	}
	return c, nil
}

// Currencies returns all supported currencies sorted by code.
func Currencies() []Currency {
	list := make([]Currency, 0, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		list = append(list, c)
	}
	slices.SortFunc(list, func(a, b Currency) int { return strings.Compare(a.Code(), b.Code()) })
	return list
}
