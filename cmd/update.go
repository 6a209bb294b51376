package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	valutatrade "github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555"
	"github.com/google/subcommands"
)

type updateCmd struct {
	source string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch fresh rates from the providers" }
func (*updateCmd) Usage() string {
	return `vth update [-source <name>]

  Queries every configured provider, records the quotes in the history
  and refreshes the snapshot. A provider that fails is skipped; the
  others still land.

Usage Examples:
$ vth update
$ vth update -source coingecko
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Only query providers whose name contains this string")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, store, err := openHub()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	updater := valutatrade.NewUpdater(store,
		valutatrade.NewCoinGeckoProvider(settings),
		valutatrade.NewExchangeRateProvider(settings),
	)
	n, err := updater.RunUpdate(ctx, c.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if n == 0 {
		fmt.Println("No quotes received; snapshot left as it was.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Updated %d rate(s).\n", n)
	return subcommands.ExitSuccess
}
