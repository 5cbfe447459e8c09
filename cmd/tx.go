package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	hledger "github.com/chiendo97/hledger-webapp"
	"github.com/chiendo97/hledger-webapp/date"
	"github.com/chiendo97/hledger-webapp/renderer"
)

type txCmd struct {
	month   string
	pattern string
	index   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list journal transactions, or show one in full" }
func (*txCmd) Usage() string {
	return `tx [-month <YYYY-MM>] [-q <query>] [-i <index>]

  Lists the journal's transactions. With -i, shows one transaction in full
  including its postings and tags.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Limit to one month (YYYY-MM)")
	f.StringVar(&c.pattern, "q", "", "hledger query pattern")
	f.IntVar(&c.index, "i", 0, "Show the transaction with this index")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, _, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.index > 0 {
		tx, err := j.Transaction(ctx, c.index)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.TransactionMarkdown(tx))
		return subcommands.ExitSuccess
	}

	q, err := monthQuery(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	q.Pattern = c.pattern

	txs, err := j.Transactions(ctx, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}

// monthQuery turns an optional YYYY-MM flag into transaction read bounds.
func monthQuery(month string) (hledger.Query, error) {
	var q hledger.Query
	if month == "" {
		return q, nil
	}
	m, err := date.ParseMonth(month)
	if err != nil {
		return q, err
	}
	q.Begin, q.End = m.Begin(), m.End()
	return q, nil
}

// monthOptions turns optional month and depth flags into report options.
func monthOptions(month string, depth int) (hledger.ReportOptions, error) {
	var opts hledger.ReportOptions
	if month != "" {
		m, err := date.ParseMonth(month)
		if err != nil {
			return opts, err
		}
		opts.Begin, opts.End = m.Begin(), m.End()
	}
	opts.Depth = depth
	return opts, nil
}
