package renderer

import (
	"bytes"
	"strings"

	md "github.com/nao1215/markdown"

	hledger "github.com/chiendo97/hledger-webapp"
)

// BalancesMarkdown renders a balance report as a markdown table, indenting
// accounts by their tree depth, with the grand total as the footer row.
func BalancesMarkdown(rows []hledger.BalanceRow, totals []hledger.Amount) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Account", "Balance"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			indentAccount(row.Account, row.Depth),
			row.Display,
		})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(hledger.FormatAmounts(totals))})
	doc.Table(table)

	return doc.String()
}

// CompoundMarkdown renders an income statement or balance sheet: the report
// title, one section per subreport with its own total, and the grand total.
func CompoundMarkdown(report *hledger.CompoundReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(report.Title)

	for _, sub := range report.Subreports {
		doc.H2(sub.Title)
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Account", "Amount"},
		}
		for _, row := range sub.Rows {
			table.Rows = append(table.Rows, []string{
				indentAccount(row.Account, row.Depth),
				row.Display,
			})
		}
		table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(hledger.FormatAmounts(sub.Totals))})
		doc.Table(table)
	}

	if len(report.Totals) > 0 {
		doc.H2("Net")
		doc.PlainText(md.Bold(hledger.FormatAmounts(report.Totals)))
	}

	return doc.String()
}

// indentAccount prefixes an account name for tree-shaped reports where
// depth is meaningful. Non-breaking spaces survive markdown rendering.
func indentAccount(name string, depth int) string {
	if depth <= 1 {
		return name
	}
	return strings.Repeat("  ", depth-1) + name
}
