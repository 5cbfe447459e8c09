package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	hledger "github.com/chiendo97/hledger-webapp"
	"github.com/chiendo97/hledger-webapp/date"
)

func sampleAmount(quantity string, commodity string) hledger.Amount {
	return hledger.Amount{
		Quantity:  decimal.RequireFromString(quantity),
		Commodity: commodity,
		Style:     hledger.Style{Side: "R", Spaced: true, Decimal: ".", Places: 2},
	}
}

func sampleTransactions() []hledger.Transaction {
	return []hledger.Transaction{
		{
			Index:       1,
			Date:        date.New(2025, 1, 10),
			Description: "coffee",
			Postings: []hledger.Posting{
				{Account: "expenses:food", Display: "3.50 usd"},
				{Account: "assets:cash", Display: "-3.50 usd"},
			},
		},
		{
			Index:       2,
			Date:        date.New(2025, 1, 15),
			Description: "lunch",
			Tags:        []hledger.Tag{{Key: "category", Value: "food"}},
			Postings: []hledger.Posting{
				{Account: "expenses:food", Display: "12.50 usd"},
				{Account: "assets:cash", Display: "-12.50 usd"},
			},
		},
	}
}

// headings parses markdown and returns the text of each heading, in order.
// Structural assertions go through a real parser so a malformed document
// cannot pass by substring luck.
func headings(t *testing.T, source string) []string {
	t.Helper()
	content := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var found []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			found = append(found, string(h.Text(content)))
		}
		return ast.WalkContinue, nil
	})
	return found
}

func TestTransactionsMarkdown(t *testing.T) {
	out := TransactionsMarkdown(sampleTransactions())

	if got := headings(t, out); len(got) != 1 || got[0] != "Transactions" {
		t.Errorf("headings = %v", got)
	}
	for _, want := range []string{"| 1 |", "coffee", "| 2 |", "lunch", "12.50 usd"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTransactionMarkdown(t *testing.T) {
	tx := sampleTransactions()[1]
	tx.Postings[1].Assertion = &hledger.BalanceAssertion{
		Amount:  sampleAmount("100", "usd"),
		Display: "100.00 usd",
	}
	out := TransactionMarkdown(tx)

	if got := headings(t, out); len(got) != 1 || got[0] != "2025-01-15 lunch" {
		t.Errorf("headings = %v", got)
	}
	for _, want := range []string{"category: food", "expenses:food", "= 100.00 usd"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBalancesMarkdown(t *testing.T) {
	rows := []hledger.BalanceRow{
		{Account: "assets", Depth: 1, Display: "1,234.56 usd"},
		{Account: "cash", Depth: 2, Display: "1,234.56 usd"},
	}
	totals := []hledger.Amount{sampleAmount("1234.56", "usd")}
	out := BalancesMarkdown(rows, totals)

	if got := headings(t, out); len(got) != 1 || got[0] != "Balances" {
		t.Errorf("headings = %v", got)
	}
	if !strings.Contains(out, "\u00a0\u00a0cash") {
		t.Errorf("depth-2 account not indented:\n%s", out)
	}
	if !strings.Contains(out, "**Total**") {
		t.Errorf("missing total row:\n%s", out)
	}
}

func TestCompoundMarkdown(t *testing.T) {
	report := &hledger.CompoundReport{
		Title: "Income Statement 2025-01",
		Subreports: []hledger.Subreport{
			{
				Title:  "Revenues",
				Rows:   []hledger.BalanceRow{{Account: "income:salary", Depth: 1, Display: "-5,000.00 usd"}},
				Totals: []hledger.Amount{sampleAmount("-5000", "usd")},
			},
			{
				Title:  "Expenses",
				Rows:   []hledger.BalanceRow{{Account: "expenses:food", Depth: 1, Display: "16.00 usd"}},
				Totals: []hledger.Amount{sampleAmount("16", "usd")},
			},
		},
		Totals: []hledger.Amount{sampleAmount("-4984", "usd")},
	}
	out := CompoundMarkdown(report)

	want := []string{"Income Statement 2025-01", "Revenues", "Expenses", "Net"}
	got := headings(t, out)
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegisterMarkdown(t *testing.T) {
	rows := []hledger.RegisterRow{
		{Date: date.New(2025, 1, 10), Description: "coffee", Display: "3.50 usd", RunningStr: "3.50 usd"},
		{Date: date.New(2025, 1, 15), Description: "a|b", Display: "12.50 usd", RunningStr: "16.00 usd"},
	}
	out := RegisterMarkdown("expenses:food", rows)

	if got := headings(t, out); len(got) != 1 || got[0] != "Register: expenses:food" {
		t.Errorf("headings = %v", got)
	}
	if !strings.Contains(out, `a\|b`) {
		t.Errorf("pipe in description not escaped:\n%s", out)
	}
	if !strings.Contains(out, "16.00 usd") {
		t.Errorf("missing running balance:\n%s", out)
	}

	if out := RegisterMarkdown("expenses:food", nil); !strings.Contains(out, "No postings.") {
		t.Errorf("empty register output:\n%s", out)
	}
}
