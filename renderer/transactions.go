// Package renderer turns journal entities and report rows into markdown,
// for terminal display through glamour or for plain-text export.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	hledger "github.com/chiendo97/hledger-webapp"
)

// TransactionsMarkdown renders a transaction list as one markdown table,
// newest last, one row per transaction.
func TransactionsMarkdown(txs []hledger.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"#", "Date", "Description", "Amount"},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(tx.Index),
			tx.Date.String(),
			tx.Description,
			firstPostingDisplay(tx),
		})
	}
	doc.Table(table)

	return doc.String()
}

// TransactionMarkdown renders one transaction in full: header, tags and a
// posting table with assertions where present.
func TransactionMarkdown(tx hledger.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s", tx.Date, tx.Description))
	if tx.Status != "" && tx.Status != "Unmarked" {
		doc.PlainText(fmt.Sprintf("Status: %s", tx.Status))
	}
	if len(tx.Tags) > 0 {
		doc.PlainText(hledger.FormatTags(tx.Tags))
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Amount", "Assertion"},
	}
	for _, p := range tx.Postings {
		assertion := ""
		if p.Assertion != nil {
			assertion = "= " + p.Assertion.Display
		}
		table.Rows = append(table.Rows, []string{p.Account, p.Display, assertion})
	}
	doc.Table(table)

	return doc.String()
}

// firstPostingDisplay summarizes a transaction by its first posting amount,
// the one the journal author wrote first.
func firstPostingDisplay(tx hledger.Transaction) string {
	for _, p := range tx.Postings {
		if p.Display != "" {
			return p.Display
		}
	}
	return ""
}
