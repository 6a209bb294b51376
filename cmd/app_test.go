package cmd

import (
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
)

// tempHub points the global data-dir flag at a fresh temp dir for one test.
func tempHub(t *testing.T) {
	t.Helper()
	old := *dataDir
	*dataDir = t.TempDir()
	t.Cleanup(func() { *dataDir = old })
}

// runCmd parses args into the command's flag set and executes it.
func runCmd(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return c.Execute(context.Background(), f)
}

func TestLoginCmd_RequiresUsername(t *testing.T) {
	tempHub(t)

	if got := runCmd(t, &loginCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("login without -u exit = %v, want ExitUsageError", got)
	}
}

func TestLoginCmd_RoundTrip(t *testing.T) {
	tempHub(t)

	if got := runCmd(t, &registerCmd{}, "-u", "alice", "-p", "s3cret"); got != subcommands.ExitSuccess {
		t.Fatalf("register exit = %v, want ExitSuccess", got)
	}
	if got := runCmd(t, &loginCmd{}, "-u", "alice", "-p", "s3cret"); got != subcommands.ExitSuccess {
		t.Errorf("login exit = %v, want ExitSuccess", got)
	}
	if got := runCmd(t, &loginCmd{}, "-u", "alice", "-p", "wrong"); got != subcommands.ExitFailure {
		t.Errorf("login with bad password exit = %v, want ExitFailure", got)
	}
}

func TestRatesCmd_EmptyHub(t *testing.T) {
	tempHub(t)

	if got := runCmd(t, &ratesCmd{}); got != subcommands.ExitSuccess {
		t.Errorf("rates on an empty hub exit = %v, want ExitSuccess", got)
	}
}
