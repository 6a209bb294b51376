package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type depositCmd struct {
	username string
	password string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "credit a wallet with funds" }
func (*depositCmd) Usage() string {
	return `vth deposit -u <username> -p <password> <currency> <amount>

  Credits the given wallet, creating it on first use. This is how a fresh
  account funds its base wallet before trading.

Usage Examples:
$ vth deposit -u alice -p secret USD 10000
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	sessionFlags(f, &c.username, &c.password)
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := ledger.Deposit(f.Arg(0), amount); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deposited %s %s.\n", amount, f.Arg(0))
	return subcommands.ExitSuccess
}
