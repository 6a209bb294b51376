package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show the current rate of a currency pair" }
func (*rateCmd) Usage() string {
	return `vth rate <from> <to>

  Looks up the current-best rate of the pair in the snapshot.

Usage Examples:
$ vth rate BTC USD
`
}

func (*rateCmd) SetFlags(f *flag.FlagSet) {}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected arguments: <from> <to>")
		return subcommands.ExitUsageError
	}

	ledger, err := openLedger("", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rate, updatedAt, err := ledger.GetRate(f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("1 %s = %v %s (updated %s)\n", f.Arg(0), rate, f.Arg(1), updatedAt.Format(time.RFC3339))
	return subcommands.ExitSuccess
}
