package hledger

import (
	"fmt"
	"strings"

	"github.com/chiendo97/hledger-webapp/date"
)

// EncodeTransaction renders a validated TransactionInput as a journal text
// block: the date and description line, an optional indented tag comment,
// then one indented line per posting. Amounts are normalized through
// [Amount.Normalize] so that ambiguous commodities are written back with
// their explicit-decimal marker. The block carries no trailing newline; the
// editor owns line termination.
func EncodeTransaction(in TransactionInput, currencies Currencies) (string, error) {
	d, err := date.Parse(in.Date)
	if err != nil {
		return "", &ValidationError{Field: "date", Msg: err.Error()}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d, in.Description)
	if len(in.Tags) > 0 {
		fmt.Fprintf(&b, "\n    ; %s", FormatTags(in.Tags))
	}
	for _, p := range in.Postings {
		fmt.Fprintf(&b, "\n    %s", p.Account)
		if p.Amount != "" {
			lit, err := normalizeLiteral(p.Amount, currencies)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "    %s", lit)
		}
		if p.Assertion != "" {
			lit, err := normalizeLiteral(p.Assertion, currencies)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, " = %s", lit)
		}
	}
	return b.String(), nil
}

func normalizeLiteral(literal string, currencies Currencies) (string, error) {
	a, err := ParseAmount(literal, currencies)
	if err != nil {
		return "", err
	}
	return a.Normalize(currencies)
}
