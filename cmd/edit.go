package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	hledger "github.com/chiendo97/hledger-webapp"
	"github.com/chiendo97/hledger-webapp/date"
)

// parsePostings reads positional <account> <amount> pairs. "-" stands for a
// missing amount, letting the engine infer the balancing value.
func parsePostings(args []string) ([]hledger.PostingInput, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("postings must be <account> <amount> pairs, use \"-\" for an inferred amount")
	}
	var postings []hledger.PostingInput
	for i := 0; i < len(args); i += 2 {
		p := hledger.PostingInput{Account: args[i]}
		if args[i+1] != "-" {
			p.Amount = args[i+1]
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// --- Add Command ---

type addCmd struct {
	date        string
	description string
	tags        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a transaction to the journal" }
func (*addCmd) Usage() string {
	return `add [-d <date>] -m <description> [-t <tags>] <account> <amount> [<account> <amount>]...

  Appends a transaction. Amounts are literals like "12.50 usd" or
  "150.000 vnd"; pass "-" for at most one posting to let the engine infer
  it. Tags are comma-separated key:value pairs.

  Example:
    add -m "lunch" -t "category:food" expenses:food "150.000 vnd" assets:cash -
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.description, "m", "", "Transaction description")
	f.StringVar(&c.tags, "t", "", "Comma-separated key:value tags")
}

func (c *addCmd) input(f *flag.FlagSet) (hledger.TransactionInput, error) {
	postings, err := parsePostings(f.Args())
	if err != nil {
		return hledger.TransactionInput{}, err
	}
	return hledger.TransactionInput{
		Date:        c.date,
		Description: c.description,
		Tags:        hledger.ParseTags(c.tags),
		Postings:    postings,
	}, nil
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.input(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	j, cfg, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := j.AddTransaction(ctx, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended transaction to %s\n", cfg.File)
	return subcommands.ExitSuccess
}

// --- Edit Command ---

type editCmd struct {
	add   addCmd
	index int
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "rewrite a transaction in place" }
func (*editCmd) Usage() string {
	return `edit -i <index> [-d <date>] -m <description> [-t <tags>] <account> <amount>...

  Replaces the transaction with the given index. The rewritten entry takes
  the exact place of the old one in the journal file; all other lines are
  left untouched.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.index, "i", 0, "Index of the transaction to rewrite")
	c.add.SetFlags(f)
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.index < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	in, err := c.add.input(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	j, cfg, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := j.UpdateTransaction(ctx, c.index, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully rewrote transaction #%d in %s\n", c.index, cfg.File)
	return subcommands.ExitSuccess
}
