package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type sellCmd struct {
	username string
	password string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell currency into the base wallet" }
func (*sellCmd) Usage() string {
	return `vth sell -u <username> -p <password> <currency> <amount>

  Sells the given amount out of its wallet at the current snapshot rate and
  credits the base-currency wallet with the revenue.

Usage Examples:
$ vth sell -u alice -p secret BTC 0.01
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	sessionFlags(f, &c.username, &c.password)
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected arguments: <currency> <amount>")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid amount %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}

	ledger, err := openLedger(c.username, c.password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rate, revenue, err := ledger.Sell(f.Arg(0), amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Sold %s %s at %v: revenue %s %s.\n",
		amount, f.Arg(0), rate, revenue.StringFixed(2), ledger.BaseCurrency())
	return subcommands.ExitSuccess
}
