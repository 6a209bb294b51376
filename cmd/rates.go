package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555/renderer"
	"github.com/google/subcommands"
)

type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the rate snapshot" }
func (*ratesCmd) Usage() string {
	return `vth rates

  Displays all pairs of the current snapshot with their source and age.
  Pairs older than the advisory ttl are flagged stale; run 'vth update'
  to refresh them.
`
}

func (*ratesCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, store, err := openHub()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RatesMarkdown(store.LoadSnapshot(), settings.RatesTTL, time.Now()))
	return subcommands.ExitSuccess
}
