package hledger

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chiendo97/hledger-webapp/date"
)

const printFixture = `[
  {
    "tindex": 1,
    "tdate": "2025-01-15",
    "tdate2": null,
    "tstatus": "Unmarked",
    "tdescription": "lunch",
    "tcomment": "\ncategory: food\n",
    "tsourcepos": [
      {"sourceName": "2025.journal", "sourceLine": 5, "sourceColumn": 1},
      {"sourceName": "2025.journal", "sourceLine": 9, "sourceColumn": 1}
    ],
    "tpostings": [
      {
        "paccount": "expenses:food",
        "pcomment": "shared: yes",
        "pstatus": "Unmarked",
        "pamount": [
          {
            "acommodity": "vnd",
            "aquantity": {"decimalMantissa": 150000, "decimalPlaces": 3, "floatingPoint": 150.0},
            "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}
          }
        ]
      },
      {
        "paccount": "assets:cash",
        "pcomment": "",
        "pstatus": "Unmarked",
        "pamount": [
          {
            "acommodity": "vnd",
            "aquantity": {"decimalMantissa": -150000, "decimalPlaces": 3, "floatingPoint": -150.0},
            "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}
          }
        ],
        "pbalanceassertion": {
          "baamount": {
            "acommodity": "vnd",
            "aquantity": {"decimalMantissa": 850000, "decimalPlaces": 0, "floatingPoint": 850000},
            "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}
          }
        }
      }
    ]
  }
]`

func TestDecodeTransactions(t *testing.T) {
	txs, err := DecodeTransactions([]byte(printFixture), DefaultCurrencies())
	if err != nil {
		t.Fatalf("DecodeTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	tx := txs[0]

	if tx.Index != 1 || tx.Description != "lunch" {
		t.Errorf("header = #%d %q", tx.Index, tx.Description)
	}
	if want := date.New(2025, 1, 15); tx.Date != want {
		t.Errorf("date = %s, want %s", tx.Date, want)
	}
	if want := []Tag{{"category", "food"}}; !reflect.DeepEqual(tx.Tags, want) {
		t.Errorf("tags = %v, want %v", tx.Tags, want)
	}
	// the engine reports [start, end) with end past the block; the span
	// here is inclusive
	if want := (SourcePos{File: "2025.journal", StartLine: 5, EndLine: 8}); tx.SourcePos != want {
		t.Errorf("source pos = %+v, want %+v", tx.SourcePos, want)
	}

	if len(tx.Postings) != 2 {
		t.Fatalf("got %d postings, want 2", len(tx.Postings))
	}
	p := tx.Postings[0]
	if p.Account != "expenses:food" {
		t.Errorf("posting account = %q", p.Account)
	}
	// decimalPlaces 3 on a 3-digit-group commodity: a digit group misread
	// as a fraction, resolved back to the whole number
	if p.Display != "150,000 vnd" {
		t.Errorf("posting display = %q, want %q", p.Display, "150,000 vnd")
	}
	if want := []Tag{{"shared", "yes"}}; !reflect.DeepEqual(p.Tags, want) {
		t.Errorf("posting tags = %v, want %v", p.Tags, want)
	}

	assertion := tx.Postings[1].Assertion
	if assertion == nil {
		t.Fatal("missing balance assertion")
	}
	if assertion.Display != "850,000 vnd" {
		t.Errorf("assertion display = %q, want %q", assertion.Display, "850,000 vnd")
	}
}

func TestDecodeTransactionsRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an array", `{"tindex": 1}`},
		{"missing index", `[{"tdate": "2025-01-15", "tdescription": "x"}]`},
		{"missing date", `[{"tindex": 1, "tdescription": "x"}]`},
		{"missing description", `[{"tindex": 1, "tdate": "2025-01-15"}]`},
		{"lone source pos", `[{"tindex": 1, "tdate": "2025-01-15", "tdescription": "x",
			"tsourcepos": [{"sourceName": "j", "sourceLine": 5}]}]`},
		{"inverted span", `[{"tindex": 1, "tdate": "2025-01-15", "tdescription": "x",
			"tsourcepos": [{"sourceName": "j", "sourceLine": 5}, {"sourceName": "j", "sourceLine": 5}]}]`},
		{"posting without account", `[{"tindex": 1, "tdate": "2025-01-15", "tdescription": "x",
			"tpostings": [{"pamount": []}]}]`},
	}
	for _, tt := range tests {
		_, err := DecodeTransactions([]byte(tt.data), DefaultCurrencies())
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("%s: error = %v, want DecodeError", tt.name, err)
		}
	}
}

func TestDecodeTransactionsAmbiguousAmount(t *testing.T) {
	// 2 decimal places on a 3-digit-group commodity is unresolvable
	data := `[{"tindex": 1, "tdate": "2025-01-15", "tdescription": "x",
		"tpostings": [{"paccount": "a", "pamount": [
			{"acommodity": "vnd", "aquantity": {"decimalMantissa": 1234, "decimalPlaces": 2, "floatingPoint": 12.34}}
		]}]}]`
	_, err := DecodeTransactions([]byte(data), DefaultCurrencies())
	var ambiguous *AmbiguousAmountError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("error = %v, want AmbiguousAmountError", err)
	}
}

const balanceFixture = `[
  [
    ["assets:cash", "cash", 2, [
      {"acommodity": "usd", "aquantity": {"decimalMantissa": 123456, "decimalPlaces": 2, "floatingPoint": 1234.56},
       "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
    ]],
    ["expenses:food", "food", 2, [
      {"acommodity": "vnd", "aquantity": {"decimalMantissa": 150000, "decimalPlaces": 3, "floatingPoint": 150.0},
       "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
    ]]
  ],
  [
    {"acommodity": "usd", "aquantity": {"decimalMantissa": 123456, "decimalPlaces": 2, "floatingPoint": 1234.56},
     "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
  ]
]`

func TestDecodeBalances(t *testing.T) {
	rows, totals, err := DecodeBalances([]byte(balanceFixture), DefaultCurrencies())
	if err != nil {
		t.Fatalf("DecodeBalances: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Account != "assets:cash" || rows[0].Depth != 2 || rows[0].Display != "1,234.56 usd" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Display != "150,000 vnd" {
		t.Errorf("row 1 display = %q", rows[1].Display)
	}
	if len(totals) != 1 || totals[0].Format() != "1,234.56 usd" {
		t.Errorf("totals = %v", totals)
	}
}

func TestDecodeBalancesEmpty(t *testing.T) {
	rows, totals, err := DecodeBalances([]byte(`[]`), DefaultCurrencies())
	if err != nil || rows != nil || totals != nil {
		t.Errorf("empty report = %v, %v, %v", rows, totals, err)
	}
}

const incomeStatementFixture = `{
  "cbrTitle": "Income Statement 2025-01-01..2025-01-31",
  "cbrSubreports": [
    ["Revenues", {
      "prRows": [
        {"prrName": "income:salary", "prrAmounts": [[
          {"acommodity": "usd", "aquantity": {"decimalMantissa": -500000, "decimalPlaces": 2, "floatingPoint": -5000.0},
           "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
        ]]}
      ],
      "prTotals": {"prrAmounts": [[
        {"acommodity": "usd", "aquantity": {"decimalMantissa": -500000, "decimalPlaces": 2, "floatingPoint": -5000.0},
         "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
      ]]}
    }, true]
  ],
  "cbrTotals": {"prrAmounts": [[
    {"acommodity": "usd", "aquantity": {"decimalMantissa": -500000, "decimalPlaces": 2, "floatingPoint": -5000.0},
     "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
  ]]}
}`

func TestDecodeCompoundReport(t *testing.T) {
	report, err := DecodeCompoundReport([]byte(incomeStatementFixture), DefaultCurrencies())
	if err != nil {
		t.Fatalf("DecodeCompoundReport: %v", err)
	}
	if report.Title != "Income Statement 2025-01-01..2025-01-31" {
		t.Errorf("title = %q", report.Title)
	}
	if len(report.Subreports) != 1 {
		t.Fatalf("got %d subreports, want 1", len(report.Subreports))
	}
	sub := report.Subreports[0]
	if sub.Title != "Revenues" {
		t.Errorf("subreport title = %q", sub.Title)
	}
	if len(sub.Rows) != 1 || sub.Rows[0].Account != "income:salary" || sub.Rows[0].Display != "-5,000.00 usd" {
		t.Errorf("subreport rows = %+v", sub.Rows)
	}
	if len(sub.Totals) != 1 || sub.Totals[0].Format() != "-5,000.00 usd" {
		t.Errorf("subreport totals = %v", sub.Totals)
	}
	if len(report.Totals) != 1 || report.Totals[0].Format() != "-5,000.00 usd" {
		t.Errorf("report totals = %v", report.Totals)
	}
}

func TestDecodeCompoundReportRejectsMissingTitle(t *testing.T) {
	var derr *DecodeError
	_, err := DecodeCompoundReport([]byte(`{"cbrSubreports": []}`), DefaultCurrencies())
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
}

const registerFixture = `[
  ["2025-01-10", "2025-01-10", "coffee",
    {"paccount": "expenses:food", "pcomment": "", "pstatus": "Unmarked", "pamount": [
      {"acommodity": "usd", "aquantity": {"decimalMantissa": 350, "decimalPlaces": 2, "floatingPoint": 3.5},
       "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
    ]},
    [
      {"acommodity": "usd", "aquantity": {"decimalMantissa": 350, "decimalPlaces": 2, "floatingPoint": 3.5},
       "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
    ]],
  ["2025-01-15", "2025-01-15", "lunch",
    {"paccount": "expenses:food", "pcomment": "", "pstatus": "Unmarked", "pamount": [
      {"acommodity": "usd", "aquantity": {"decimalMantissa": 1250, "decimalPlaces": 2, "floatingPoint": 12.5},
       "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
    ]},
    [
      {"acommodity": "usd", "aquantity": {"decimalMantissa": 1600, "decimalPlaces": 2, "floatingPoint": 16.0},
       "astyle": {"ascommodityside": "R", "ascommodityspaced": true, "asdecimalmark": "."}}
    ]]
]`

func TestDecodeRegister(t *testing.T) {
	rows, err := DecodeRegister([]byte(registerFixture), DefaultCurrencies())
	if err != nil {
		t.Fatalf("DecodeRegister: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Description != "coffee" || rows[0].Account != "expenses:food" || rows[0].Display != "3.50 usd" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].RunningStr != "3.50 usd" || rows[1].RunningStr != "16.00 usd" {
		t.Errorf("running = %q, %q", rows[0].RunningStr, rows[1].RunningStr)
	}
	if want := date.New(2025, 1, 15); rows[1].Date != want {
		t.Errorf("row 1 date = %s, want %s", rows[1].Date, want)
	}
}

func TestDecodeRegisterRejectsShortTuples(t *testing.T) {
	var derr *DecodeError
	_, err := DecodeRegister([]byte(`[["2025-01-10", "coffee"]]`), DefaultCurrencies())
	if !errors.As(err, &derr) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
}

func TestDecodeAccounts(t *testing.T) {
	got := DecodeAccounts([]byte("assets:cash\nexpenses:food\n\n"))
	want := []string{"assets:cash", "expenses:food"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeAccounts = %v, want %v", got, want)
	}
	if got := DecodeAccounts(nil); got != nil {
		t.Errorf("DecodeAccounts(nil) = %v, want nil", got)
	}
}
