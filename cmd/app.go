// Package cmd implements the CLI application to browse and edit an hledger
// journal.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/google/subcommands"

	hledger "github.com/chiendo97/hledger-webapp"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&txCmd{}, "reports")
	c.Register(&accountsCmd{}, "reports")
	c.Register(&balCmd{}, "reports")
	c.Register(&isCmd{}, "reports")
	c.Register(&bsCmd{}, "reports")
	c.Register(&regCmd{}, "reports")

	c.Register(&addCmd{}, "editing")
	c.Register(&editCmd{}, "editing")

	c.Register(&serveCmd{}, "server")
	c.Register(&assistCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("f", "", "journal file (overrides HLEDGER_FILE)")

// loadJournal builds the journal facade from the environment and the -f
// override.
func loadJournal() (*hledger.Journal, hledger.Config, error) {
	cfg, err := hledger.LoadConfig()
	if err != nil {
		return nil, hledger.Config{}, err
	}
	if *journalFile != "" {
		cfg.File = *journalFile
	}
	return hledger.NewJournal(cfg), cfg, nil
}

// printMarkdown renders markdown for the terminal. When glamour cannot set
// up a renderer the raw markdown is still readable output.
func printMarkdown(md string) {
	out, err := glamour.Render(md, styles.AutoStyle)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
