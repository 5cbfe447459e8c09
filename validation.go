package hledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chiendo97/hledger-webapp/date"
)

// PostingInput is one account/amount line of a caller-supplied transaction.
// Amount is a free-form literal ("12.50 usd", "150.000 vnd"); leave it empty
// to let the engine infer the balancing amount. Assertion, when set, is the
// `= AMOUNT` balance assertion to preserve on the rewritten posting.
type PostingInput struct {
	Account   string `json:"account"`
	Amount    string `json:"amount,omitempty"`
	Assertion string `json:"assertion,omitempty"`
}

// TransactionInput is the caller-facing shape of an add or update request.
type TransactionInput struct {
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Tags        []Tag          `json:"tags,omitempty"`
	Postings    []PostingInput `json:"postings"`
}

// Validate checks the input for structural problems before any subprocess
// call or file mutation is attempted: unparseable date, missing description,
// no postings, more than one amountless posting, unparseable amount
// literals, and single-commodity posting sets that do not sum to zero.
// Balancing across commodities is the engine's business and is not checked
// here.
func (in TransactionInput) Validate(currencies Currencies) error {
	if _, err := date.Parse(in.Date); err != nil {
		return &ValidationError{Field: "date", Msg: err.Error()}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Msg: "must not be empty"}
	}
	if len(in.Postings) == 0 {
		return &ValidationError{Field: "postings", Msg: "at least one posting is required"}
	}

	sums := make(map[string]decimal.Decimal)
	amountless := 0
	for i, p := range in.Postings {
		if p.Account == "" {
			return &ValidationError{Field: fmt.Sprintf("postings[%d].account", i), Msg: "must not be empty"}
		}
		if p.Amount == "" {
			amountless++
			continue
		}
		a, err := ParseAmount(p.Amount, currencies)
		if err != nil {
			return err
		}
		sums[a.Commodity] = sums[a.Commodity].Add(a.Quantity)
		if p.Assertion != "" {
			if _, err := ParseAmount(p.Assertion, currencies); err != nil {
				return err
			}
		}
	}

	if amountless > 1 {
		return &ValidationError{Field: "postings", Msg: "at most one posting may omit its amount"}
	}
	// only checkable when every amount is explicit and one commodity is in play
	if amountless == 0 && len(sums) == 1 {
		for commodity, sum := range sums {
			if !sum.IsZero() {
				return &ValidationError{Field: "postings", Msg: fmt.Sprintf("postings do not balance: %s %s left over", sum, commodity)}
			}
		}
	}
	return nil
}
