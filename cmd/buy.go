package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type buyCmd struct {
	username string
	password string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy currency, paying from the base wallet" }
func (*buyCmd) Usage() string {
	return `vth buy -u <username> -p <password> <currency> <amount>

  Buys the given amount of currency at the current snapshot rate, debiting
  the base-currency wallet. Fails when the base wallet cannot cover the
  cost.

Usage Examples:
$ vth buy -u alice -p secret BTC 0.01
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	sessionFlags(f, &c.username, &c.password)
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	rate, cost, err := ledger.Buy(f.Arg(0), amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Bought %s %s at %v: cost %s %s.\n",
		amount, f.Arg(0), rate, cost.StringFixed(2), ledger.BaseCurrency())
	return subcommands.ExitSuccess
}
