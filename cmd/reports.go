package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/chiendo97/hledger-webapp/date"
	"github.com/chiendo97/hledger-webapp/renderer"
)

// --- Balance Command ---

type balCmd struct {
	month string
	depth int
}

func (*balCmd) Name() string     { return "bal" }
func (*balCmd) Synopsis() string { return "display account balances as a tree" }
func (*balCmd) Usage() string {
	return `bal [-month <YYYY-MM>] [-depth <n>]

  Displays the balance of every account, indented by account depth, with
  the grand total at the bottom.
`
}

func (c *balCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Limit to one month (YYYY-MM)")
	f.IntVar(&c.depth, "depth", 0, "Collapse accounts deeper than this (0 for unlimited)")
}

func (c *balCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, _, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	opts, err := monthOptions(c.month, c.depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rows, totals, err := j.Balances(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BalancesMarkdown(rows, totals))
	return subcommands.ExitSuccess
}

// --- Income Statement Command ---

type isCmd struct {
	month string
	depth int
}

func (*isCmd) Name() string     { return "is" }
func (*isCmd) Synopsis() string { return "display the income statement" }
func (*isCmd) Usage() string {
	return `is [-month <YYYY-MM>] [-depth <n>]

  Displays revenues and expenses for the period (the current month when
  -month is omitted).
`
}

func (c *isCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", date.CurrentMonth().String(), "Report month (YYYY-MM)")
	f.IntVar(&c.depth, "depth", 0, "Collapse accounts deeper than this (0 for unlimited)")
}

func (c *isCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, _, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	opts, err := monthOptions(c.month, c.depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	report, err := j.IncomeStatement(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CompoundMarkdown(report))
	return subcommands.ExitSuccess
}

// --- Balance Sheet Command ---

type bsCmd struct {
	month string
	depth int
}

func (*bsCmd) Name() string     { return "bs" }
func (*bsCmd) Synopsis() string { return "display the balance sheet" }
func (*bsCmd) Usage() string {
	return `bs [-month <YYYY-MM>] [-depth <n>]

  Displays assets and liabilities as of the end of the month.
`
}

func (c *bsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Report month (YYYY-MM), defaults to everything to date")
	f.IntVar(&c.depth, "depth", 0, "Collapse accounts deeper than this (0 for unlimited)")
}

func (c *bsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, _, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	opts, err := monthOptions(c.month, c.depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	// point-in-time report: only the end bound applies
	opts.Begin = date.Date{}
	report, err := j.BalanceSheet(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CompoundMarkdown(report))
	return subcommands.ExitSuccess
}

// --- Register Command ---

type regCmd struct {
	month string
}

func (*regCmd) Name() string     { return "reg" }
func (*regCmd) Synopsis() string { return "display an account's register with running balances" }
func (*regCmd) Usage() string {
	return `reg [-month <YYYY-MM>] <account>

  Displays one posting per line for the account, with the running balance
  after each.
`
}

func (c *regCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Limit to one month (YYYY-MM)")
}

func (c *regCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	account := f.Arg(0)

	j, _, err := loadJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	opts, err := monthOptions(c.month, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rows, err := j.Register(ctx, account, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RegisterMarkdown(account, rows))
	return subcommands.ExitSuccess
}
