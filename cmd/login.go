package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type loginCmd struct {
	username string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "verify account credentials" }
func (*loginCmd) Usage() string {
	return `vth login -u <username> -p <password>

  Checks the credentials and prints the account information. Trading
  commands take the same -u/-p flags to authenticate their session.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	sessionFlags(f, &c.username, &c.password)
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(os.Stderr, "a username is required (-u)")
		return subcommands.ExitUsageError
	}

	ledger, err := openLedger(c.username, c.password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Welcome, %s.\n%s\n", c.username, ledger.CurrentUser().Info())
	return subcommands.ExitSuccess
}
