// Package cmd implements the CLI application of the ValutaTrade hub.
//
// Every command is a thin consumer of the ledger's public operations and
// the rate store's read contract; no trading or aggregation logic lives
// here.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	valutatrade "github.com/dorozhkinivan/finalproject-Dorozhkin-Ivan-M25-555"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&registerCmd{},
	&loginCmd{},
	&depositCmd{},
	&buyCmd{},
	&sellCmd{},
	&rateCmd{},
	&ratesCmd{},
	&portfolioCmd{},
	&currenciesCmd{},
	&updateCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataDir = flag.String("data-dir", "", "Base directory for the data and logs folders (defaults to the working directory)")

// openHub loads the settings, prepares the directories, routes the action
// log to its file and returns the store.
func openHub() (valutatrade.Settings, *valutatrade.Store, error) {
	settings, err := valutatrade.LoadSettings(*dataDir)
	if err != nil {
		return valutatrade.Settings{}, nil, err
	}
	if err := settings.EnsureDirs(); err != nil {
		return valutatrade.Settings{}, nil, err
	}
	// Structured events go to the action log; stderr stays for the user.
	if f, err := os.OpenFile(settings.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
		log.SetOutput(f)
	} else {
		log.Printf("warning, cannot open action log %q, logging to stderr: %v", settings.LogFile, err)
	}
	return settings, valutatrade.NewStore(settings), nil
}

// openLedger opens the hub and, when a username is given, logs the session
// in.
func openLedger(username, password string) (*valutatrade.Ledger, error) {
	settings, store, err := openHub()
	if err != nil {
		return nil, err
	}
	ledger := valutatrade.NewLedger(settings, store)
	if username != "" {
		if _, err := ledger.Login(username, password); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

// sessionFlags declares the credential flags shared by all authenticated
// commands.
func sessionFlags(f *flag.FlagSet, username, password *string) {
	f.StringVar(username, "u", "", "Username of the trading session")
	f.StringVar(password, "p", "", "Password of the trading session")
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails (e.g. no TTY).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
