// Package renderer builds the markdown reports displayed by the vth CLI.
package renderer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	valutatrade "github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555"
	"github.com/shopspring/decimal"
)

// PortfolioMarkdown renders a portfolio valuation as a markdown table.
// Wallets whose pair could not be resolved are marked so the reader knows
// the total under-values them.
func PortfolioMarkdown(lines []valutatrade.WalletLine, total decimal.Decimal, baseCurrency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio (valued in %s)\n\n", baseCurrency)
	fmt.Fprintln(&b, "| Currency | Balance | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	unpriced := 0
	for _, line := range lines {
		value := line.Value.StringFixed(2)
		if line.Unpriced {
			value = "0.00 *"
			unpriced++
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", line.Code, line.Balance.StringFixed(4), value)
	}
	fmt.Fprintf(&b, "\n**Total: %s %s**\n", total.StringFixed(2), baseCurrency)
	if unpriced > 0 {
		fmt.Fprintf(&b, "\n`*` no rate available: %d wallet(s) counted as zero, the total under-values them.\n", unpriced)
	}
	return b.String()
}

// RatesMarkdown renders the snapshot as a markdown table with the age of
// each pair against the advisory ttl.
func RatesMarkdown(snap *valutatrade.RateSnapshot, ttl time.Duration, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Exchange rates\n\n")
	if len(snap.Pairs) == 0 {
		fmt.Fprintln(&b, "No rates yet. Run `vth update` first.")
		return b.String()
	}

	pairs := make([]string, 0, len(snap.Pairs))
	for pair := range snap.Pairs {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	fmt.Fprintln(&b, "| Pair | Rate | Source | Age |")
	fmt.Fprintln(&b, "|:---|---:|:---|---:|")
	for _, pair := range pairs {
		pr := snap.Pairs[pair]
		age := pr.Age(now).Round(time.Second)
		mark := ""
		if pr.IsStale(ttl, now) {
			mark = " (stale)"
		}
		fmt.Fprintf(&b, "| %s | %v | %s | %s%s |\n", pair, pr.Rate, pr.Source, age, mark)
	}
	if !snap.LastRefresh.IsZero() {
		fmt.Fprintf(&b, "\nLast refresh: %s\n", snap.LastRefresh.Format(time.RFC3339))
	}
	return b.String()
}

// CurrenciesMarkdown renders the supported currency catalog.
func CurrenciesMarkdown(currencies []valutatrade.Currency) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Supported currencies\n\n")
	for _, c := range currencies {
		fmt.Fprintf(&b, "- %s\n", c.DisplayInfo())
	}
	return b.String()
}
