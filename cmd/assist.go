package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	hledger "github.com/chiendo97/hledger-webapp"
	"github.com/chiendo97/hledger-webapp/assist"
	"github.com/chiendo97/hledger-webapp/date"
	"github.com/chiendo97/hledger-webapp/renderer"
)

type assistCmd struct {
	write bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "suggest a journal entry from a plain description" }
func (*assistCmd) Usage() string {
	return `assist [-w] <description of the purchase>

  Asks the AI bookkeeper to draft a journal entry for the described
  purchase, using only accounts that already exist in the journal. With
  -w the suggested entry is appended to the journal; without it the
  suggestion is only printed.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "Append the suggested entry to the journal")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	description := strings.Join(f.Args(), " ")

	j, cfg, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	accounts, err := j.Accounts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	bookkeeper := assist.NewBookkeeper(accounts, date.Today().String())
	if err := bookkeeper.Start(ctx, client); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	suggestion, err := bookkeeper.Suggest(ctx, description)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	in := suggestion.Input()

	if err := in.Validate(j.Currencies()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: the bookkeeper suggested an invalid entry: %v\n", err)
		return subcommands.ExitFailure
	}
	block, err := hledger.EncodeTransaction(in, j.Currencies())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SuggestionMarkdown(description, block))

	if !c.write {
		return subcommands.ExitSuccess
	}
	if err := j.AddTransaction(ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended transaction to %s\n", cfg.File)
	return subcommands.ExitSuccess
}
