package hledger

import (
	"github.com/chiendo97/hledger-webapp/date"
)

// SourcePos is the inclusive line span a transaction's text occupies in its
// journal file, as reported by hledger. File is the physical file the span
// belongs to: with `include` directives a journal is stitched from several
// files, and line numbers are only meaningful relative to the one named here.
//
// The span is the contract that makes position-addressed rewriting safe:
// extracting lines [StartLine, EndLine] verbatim must reproduce a block the
// engine parses identically.
type SourcePos struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// IsZero reports whether no position was reported.
func (p SourcePos) IsZero() bool { return p == SourcePos{} }

// BalanceAssertion is a posting's `= AMOUNT` check, surfaced read-only for
// display. Asserting is the engine's job; this layer never evaluates it.
type BalanceAssertion struct {
	Amount  Amount `json:"amount"`
	Display string `json:"display"`
}

// Posting is one account/amount line within a transaction. It is owned by
// exactly one Transaction and never shared.
type Posting struct {
	Account   string            `json:"account"`
	Amounts   []Amount          `json:"amounts"`
	Comment   string            `json:"comment,omitempty"`
	Tags      []Tag             `json:"tags,omitempty"`
	Status    string            `json:"status,omitempty"`
	Assertion *BalanceAssertion `json:"assertion,omitempty"`

	// Display is the formatted rendering of Amounts, ready for templates.
	Display string `json:"display"`
}

// Transaction is a typed journal entry. Postings keep the order the journal
// gives them: that order is semantically meaningful and survives edits.
type Transaction struct {
	Index       int        `json:"index"` // hledger's 1-based journal index
	Date        date.Date  `json:"date"`
	Date2       *date.Date `json:"date2,omitempty"`
	Status      string     `json:"status,omitempty"`
	Description string     `json:"description"`
	Comment     string     `json:"comment,omitempty"`
	Tags        []Tag      `json:"tags,omitempty"`
	Postings    []Posting  `json:"postings"`
	SourcePos   SourcePos  `json:"source_pos"`
}

// BalanceRow is one account line of a balance report. Purely derived,
// read-only, never mutated after construction.
type BalanceRow struct {
	Account string   `json:"account"`
	Depth   int      `json:"depth"`
	Amounts []Amount `json:"amounts"`
	Display string   `json:"display"`
}

// Subreport is one section of a compound report (e.g. "Revenues" within an
// income statement), with its own rows and totals.
type Subreport struct {
	Title  string       `json:"title"`
	Rows   []BalanceRow `json:"rows"`
	Totals []Amount     `json:"totals"`
}

// CompoundReport is a multi-section tabular report: hledger's income
// statement and balance sheet shapes.
type CompoundReport struct {
	Title      string      `json:"title"`
	Subreports []Subreport `json:"subreports"`
	Totals     []Amount    `json:"totals"`
}

// RegisterRow is one line of an account register: a posting with the running
// total after it.
type RegisterRow struct {
	Date        date.Date `json:"date"`
	Description string    `json:"description"`
	Account     string    `json:"account"`
	Amounts     []Amount  `json:"amounts"`
	Display     string    `json:"display"`
	Running     []Amount  `json:"running"`
	RunningStr  string    `json:"running_display"`
}
