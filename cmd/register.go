package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type registerCmd struct {
	username string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new user account" }
func (*registerCmd) Usage() string {
	return `vth register -u <username> -p <password>

  Creates a new account with an empty portfolio. The password must be at
  least 4 characters long.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	sessionFlags(f, &c.username, &c.password)
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(os.Stderr, "a username is required (-u)")
		return subcommands.ExitUsageError
	}

	ledger, err := openLedger("", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	id, err := ledger.Register(c.username, c.password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Account %q created with id %d.\n", c.username, id)
	return subcommands.ExitSuccess
}
