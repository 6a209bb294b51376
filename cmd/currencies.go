package cmd

import (
	"context"
	"flag"

	valutatrade "github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555"
	"github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555/renderer"
	"github.com/google/subcommands"
)

type currenciesCmd struct{}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "list the supported currencies" }
func (*currenciesCmd) Usage() string {
	return `vth currencies

  Lists every currency the hub can trade, fiat and crypto alike.
`
}

func (*currenciesCmd) SetFlags(f *flag.FlagSet) {}

func (c *currenciesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(renderer.CurrenciesMarkdown(valutatrade.Currencies()))
	return subcommands.ExitSuccess
}
