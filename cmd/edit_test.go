package cmd

import (
	"reflect"
	"testing"

	hledger "github.com/chiendo97/hledger-webapp"
)

func TestParsePostings(t *testing.T) {
	got, err := parsePostings([]string{"expenses:food", "150.000 vnd", "assets:cash", "-"})
	if err != nil {
		t.Fatalf("parsePostings: %v", err)
	}
	want := []hledger.PostingInput{
		{Account: "expenses:food", Amount: "150.000 vnd"},
		{Account: "assets:cash"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parsePostings = %+v, want %+v", got, want)
	}
}

func TestParsePostingsRejectsOddArguments(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"expenses:food"},
		{"expenses:food", "1.00 usd", "assets:cash"},
	} {
		if _, err := parsePostings(args); err == nil {
			t.Errorf("parsePostings(%v): accepted", args)
		}
	}
}

func TestMonthQuery(t *testing.T) {
	q, err := monthQuery("2025-01")
	if err != nil {
		t.Fatalf("monthQuery: %v", err)
	}
	if q.Begin.String() != "2025-01-01" || q.End.String() != "2025-02-01" {
		t.Errorf("bounds = %s..%s", q.Begin, q.End)
	}

	q, err = monthQuery("")
	if err != nil || !q.Begin.IsZero() {
		t.Errorf("empty month = %+v, %v", q, err)
	}

	if _, err := monthQuery("January"); err == nil {
		t.Error("bad month accepted")
	}
}
