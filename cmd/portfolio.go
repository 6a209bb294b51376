package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct {
	username string
	password string
	base     string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the wallets and their total value" }
func (*portfolioCmd) Usage() string {
	return `vth portfolio -u <username> -p <password> [-base <currency>]

  Values every wallet at the current snapshot rate and prints the total.
  Wallets without a usable rate are counted as zero and flagged.

Usage Examples:
$ vth portfolio -u alice -p secret
$ vth portfolio -u alice -p secret -base EUR
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	sessionFlags(f, &c.username, &c.password)
	f.StringVar(&c.base, "base", "", "Valuation currency (defaults to the configured base)")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger(c.username, c.password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	base := c.base
	if base == "" {
		base = ledger.BaseCurrency()
	}
	lines, total, err := ledger.PortfolioInfo(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PortfolioMarkdown(lines, total, base))
	return subcommands.ExitSuccess
}
