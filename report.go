package hledger

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chiendo97/hledger-webapp/date"
)

// This file decodes hledger's JSON report output into the typed entities of
// this package. Each report kind has a declared schema; decoding fails closed
// on anything that does not match it. A silently defaulted field here would
// end up as a wrong number on a financial display, so unexpected shapes are
// a DecodeError, and required fields are modeled as pointers so their absence
// is detectable.

// report kind names, used in DecodeError messages.
const (
	kindPrint    = "print"
	kindBalance  = "balance"
	kindCompound = "compound"
	kindRegister = "register"
)

// jQuantity mirrors hledger's aquantity object. The mantissa is kept as a
// json.Number so the exact digits reach decimal.Decimal without a float64
// round trip.
type jQuantity struct {
	DecimalMantissa json.Number `json:"decimalMantissa"`
	DecimalPlaces   *int32      `json:"decimalPlaces"`
	FloatingPoint   float64     `json:"floatingPoint"`
}

// jStyle mirrors hledger's astyle object. All fields are optional: a missing
// style falls back to right-side spaced rendering.
type jStyle struct {
	Side    string `json:"ascommodityside"`
	Spaced  bool   `json:"ascommodityspaced"`
	Decimal string `json:"asdecimalmark"`
}

// jAmount mirrors hledger's amount object.
type jAmount struct {
	Commodity *string    `json:"acommodity"`
	Quantity  *jQuantity `json:"aquantity"`
	Style     *jStyle    `json:"astyle"`
}

// mapAmount validates a decoded amount and maps it to the domain type,
// resolving the ambiguous-decimal commodities on the way.
func mapAmount(kind string, ja jAmount, currencies Currencies) (Amount, error) {
	if ja.Commodity == nil {
		return Amount{}, decodeErrf(kind, "amount is missing acommodity")
	}
	if ja.Quantity == nil || ja.Quantity.DecimalPlaces == nil || ja.Quantity.DecimalMantissa == "" {
		return Amount{}, decodeErrf(kind, "amount in %q is missing aquantity fields", *ja.Commodity)
	}
	mantissa, err := decimal.NewFromString(ja.Quantity.DecimalMantissa.String())
	if err != nil {
		return Amount{}, &DecodeError{Kind: kind, Msg: "decimalMantissa is not an integer", Err: err}
	}
	places := *ja.Quantity.DecimalPlaces
	quantity := mantissa.Shift(-places)

	resolved, err := disambiguate(quantity, places, *ja.Commodity, currencies)
	if err != nil {
		return Amount{}, err
	}
	if !resolved.Equal(quantity) {
		places = 0 // the "fraction" was a digit group; the value is whole
	}

	style := Style{Side: "R", Spaced: true, Decimal: ".", Places: places}
	if js := ja.Style; js != nil {
		if js.Side != "" {
			style.Side = js.Side
			style.Spaced = js.Spaced
		}
		if js.Decimal != "" {
			style.Decimal = js.Decimal
		}
	}
	if _, ok := currencies.Ambiguous(*ja.Commodity); ok {
		style.Places = 0
	}
	return Amount{Quantity: resolved, Commodity: *ja.Commodity, Style: style}, nil
}

func mapAmounts(kind string, jas []jAmount, currencies Currencies) ([]Amount, error) {
	amounts := make([]Amount, 0, len(jas))
	for _, ja := range jas {
		a, err := mapAmount(kind, ja, currencies)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, a)
	}
	return amounts, nil
}

// jSourcePos mirrors one element of hledger's tsourcepos pair.
type jSourcePos struct {
	Name   string `json:"sourceName"`
	Line   *int   `json:"sourceLine"`
	Column int    `json:"sourceColumn"`
}

// jAssertion mirrors hledger's pbalanceassertion object.
type jAssertion struct {
	Amount *jAmount `json:"baamount"`
}

// jPosting mirrors hledger's posting object.
type jPosting struct {
	Account   *string     `json:"paccount"`
	Amounts   []jAmount   `json:"pamount"`
	Comment   string      `json:"pcomment"`
	Status    string      `json:"pstatus"`
	Assertion *jAssertion `json:"pbalanceassertion"`
}

func mapPosting(kind string, jp jPosting, currencies Currencies) (Posting, error) {
	if jp.Account == nil {
		return Posting{}, decodeErrf(kind, "posting is missing paccount")
	}
	amounts, err := mapAmounts(kind, jp.Amounts, currencies)
	if err != nil {
		return Posting{}, err
	}
	p := Posting{
		Account: *jp.Account,
		Amounts: amounts,
		Comment: jp.Comment,
		Tags:    ParseTags(jp.Comment),
		Status:  jp.Status,
		Display: FormatAmounts(amounts),
	}
	if jp.Assertion != nil {
		if jp.Assertion.Amount == nil {
			return Posting{}, decodeErrf(kind, "balance assertion on %q is missing baamount", p.Account)
		}
		a, err := mapAmount(kind, *jp.Assertion.Amount, currencies)
		if err != nil {
			return Posting{}, err
		}
		p.Assertion = &BalanceAssertion{Amount: a, Display: a.Format()}
	}
	return p, nil
}

// jTransaction mirrors hledger's transaction object from `print -O json`.
type jTransaction struct {
	Index       *int         `json:"tindex"`
	Date        *date.Date   `json:"tdate"`
	Date2       *date.Date   `json:"tdate2"`
	Status      string       `json:"tstatus"`
	Description *string      `json:"tdescription"`
	Comment     string       `json:"tcomment"`
	Postings    []jPosting   `json:"tpostings"`
	SourcePos   []jSourcePos `json:"tsourcepos"`
}

func mapTransaction(jt jTransaction, currencies Currencies) (Transaction, error) {
	if jt.Index == nil {
		return Transaction{}, decodeErrf(kindPrint, "transaction is missing tindex")
	}
	if jt.Date == nil {
		return Transaction{}, decodeErrf(kindPrint, "transaction %d is missing tdate", *jt.Index)
	}
	if jt.Description == nil {
		return Transaction{}, decodeErrf(kindPrint, "transaction %d is missing tdescription", *jt.Index)
	}
	tx := Transaction{
		Index:       *jt.Index,
		Date:        *jt.Date,
		Date2:       jt.Date2,
		Status:      jt.Status,
		Description: *jt.Description,
		Comment:     jt.Comment,
		Tags:        ParseTags(jt.Comment),
	}
	tx.Postings = make([]Posting, 0, len(jt.Postings))
	for _, jp := range jt.Postings {
		p, err := mapPosting(kindPrint, jp, currencies)
		if err != nil {
			return Transaction{}, err
		}
		tx.Postings = append(tx.Postings, p)
	}
	if len(jt.SourcePos) > 0 {
		// hledger reports a (start, end) pair where end points past the last
		// line of the block; the domain span is inclusive.
		if len(jt.SourcePos) != 2 {
			return Transaction{}, decodeErrf(kindPrint, "transaction %d has %d source positions, want 2", tx.Index, len(jt.SourcePos))
		}
		start, end := jt.SourcePos[0], jt.SourcePos[1]
		if start.Line == nil || end.Line == nil {
			return Transaction{}, decodeErrf(kindPrint, "transaction %d source position is missing sourceLine", tx.Index)
		}
		if *start.Line < 1 || *end.Line <= *start.Line {
			return Transaction{}, decodeErrf(kindPrint, "transaction %d has inverted source span [%d,%d)", tx.Index, *start.Line, *end.Line)
		}
		tx.SourcePos = SourcePos{File: start.Name, StartLine: *start.Line, EndLine: *end.Line - 1}
	}
	return tx, nil
}

// DecodeTransactions decodes the output of `hledger print -O json`.
func DecodeTransactions(data []byte, currencies Currencies) ([]Transaction, error) {
	var jts []jTransaction
	if err := json.Unmarshal(data, &jts); err != nil {
		return nil, &DecodeError{Kind: kindPrint, Msg: "not a transaction array", Err: err}
	}
	txs := make([]Transaction, 0, len(jts))
	for _, jt := range jts {
		tx, err := mapTransaction(jt, currencies)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// DecodeBalances decodes the output of `hledger bal -O json --tree`: a pair
// of [account rows, grand totals], each row a [name, display name, depth,
// amounts] tuple.
func DecodeBalances(data []byte, currencies Currencies) (rows []BalanceRow, totals []Amount, err error) {
	var top []json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, &DecodeError{Kind: kindBalance, Msg: "not a [rows, totals] pair", Err: err}
	}
	if len(top) == 0 {
		return nil, nil, nil
	}
	if len(top) != 2 {
		return nil, nil, decodeErrf(kindBalance, "report has %d elements, want 2", len(top))
	}

	var jrows [][]json.RawMessage
	if err := json.Unmarshal(top[0], &jrows); err != nil {
		return nil, nil, &DecodeError{Kind: kindBalance, Msg: "rows are not arrays", Err: err}
	}
	rows = make([]BalanceRow, 0, len(jrows))
	for i, jrow := range jrows {
		if len(jrow) != 4 {
			return nil, nil, decodeErrf(kindBalance, "row %d has %d elements, want [name, display, depth, amounts]", i, len(jrow))
		}
		var row BalanceRow
		var jas []jAmount
		if err := json.Unmarshal(jrow[0], &row.Account); err != nil {
			return nil, nil, &DecodeError{Kind: kindBalance, Msg: "row name is not a string", Err: err}
		}
		if err := json.Unmarshal(jrow[2], &row.Depth); err != nil {
			return nil, nil, &DecodeError{Kind: kindBalance, Msg: "row depth is not a number", Err: err}
		}
		if err := json.Unmarshal(jrow[3], &jas); err != nil {
			return nil, nil, &DecodeError{Kind: kindBalance, Msg: "row amounts are not amount objects", Err: err}
		}
		if row.Amounts, err = mapAmounts(kindBalance, jas, currencies); err != nil {
			return nil, nil, err
		}
		row.Display = FormatAmounts(row.Amounts)
		rows = append(rows, row)
	}

	var jtotals []jAmount
	if err := json.Unmarshal(top[1], &jtotals); err != nil {
		return nil, nil, &DecodeError{Kind: kindBalance, Msg: "totals are not amount objects", Err: err}
	}
	if totals, err = mapAmounts(kindBalance, jtotals, currencies); err != nil {
		return nil, nil, err
	}
	return rows, totals, nil
}

// jPeriodicRow mirrors one prRows/prTotals entry of a periodic report.
// Amounts come as one cell per reporting period, each cell holding one
// amount per commodity.
type jPeriodicRow struct {
	Name    *string     `json:"prrName"`
	Amounts [][]jAmount `json:"prrAmounts"`
}

// firstCell maps the row's first period cell, the only one the single-period
// reports this layer requests ever carry.
func (jr jPeriodicRow) firstCell(currencies Currencies) ([]Amount, error) {
	if len(jr.Amounts) == 0 {
		return nil, nil
	}
	return mapAmounts(kindCompound, jr.Amounts[0], currencies)
}

// jPeriodic mirrors the periodic report object inside a compound subreport.
type jPeriodic struct {
	Rows   []jPeriodicRow `json:"prRows"`
	Totals *jPeriodicRow  `json:"prTotals"`
}

// DecodeCompoundReport decodes the output of `hledger is -O json` and
// `hledger bs -O json`: a titled list of subreports plus grand totals.
func DecodeCompoundReport(data []byte, currencies Currencies) (*CompoundReport, error) {
	var jc struct {
		Title      *string           `json:"cbrTitle"`
		Subreports []json.RawMessage `json:"cbrSubreports"`
		Totals     *jPeriodicRow     `json:"cbrTotals"`
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, &DecodeError{Kind: kindCompound, Msg: "not a compound report object", Err: err}
	}
	if jc.Title == nil {
		return nil, decodeErrf(kindCompound, "report is missing cbrTitle")
	}
	report := &CompoundReport{Title: *jc.Title}

	for i, raw := range jc.Subreports {
		// each subreport is a [title, periodic report, increases-total] triple
		var triple []json.RawMessage
		if err := json.Unmarshal(raw, &triple); err != nil || len(triple) < 2 {
			return nil, decodeErrf(kindCompound, "subreport %d is not a [title, report] pair", i)
		}
		var sub Subreport
		if err := json.Unmarshal(triple[0], &sub.Title); err != nil {
			return nil, &DecodeError{Kind: kindCompound, Msg: "subreport title is not a string", Err: err}
		}
		var jp jPeriodic
		if err := json.Unmarshal(triple[1], &jp); err != nil {
			return nil, &DecodeError{Kind: kindCompound, Msg: "subreport body is not a periodic report", Err: err}
		}
		for _, jrow := range jp.Rows {
			if jrow.Name == nil {
				return nil, decodeErrf(kindCompound, "row in %q is missing prrName", sub.Title)
			}
			amounts, err := jrow.firstCell(currencies)
			if err != nil {
				return nil, err
			}
			sub.Rows = append(sub.Rows, BalanceRow{
				Account: *jrow.Name,
				Depth:   strings.Count(*jrow.Name, ":"),
				Amounts: amounts,
				Display: FormatAmounts(amounts),
			})
		}
		if jp.Totals != nil {
			totals, err := jp.Totals.firstCell(currencies)
			if err != nil {
				return nil, err
			}
			sub.Totals = totals
		}
		report.Subreports = append(report.Subreports, sub)
	}

	if jc.Totals != nil {
		totals, err := jc.Totals.firstCell(currencies)
		if err != nil {
			return nil, err
		}
		report.Totals = totals
	}
	return report, nil
}

// DecodeRegister decodes the output of `hledger reg ACCT -O json`: an array
// of [date, date2, description, posting, running total] tuples.
func DecodeRegister(data []byte, currencies Currencies) ([]RegisterRow, error) {
	var jrows [][]json.RawMessage
	if err := json.Unmarshal(data, &jrows); err != nil {
		return nil, &DecodeError{Kind: kindRegister, Msg: "not an array of register entries", Err: err}
	}
	rows := make([]RegisterRow, 0, len(jrows))
	for i, jrow := range jrows {
		if len(jrow) != 5 {
			return nil, decodeErrf(kindRegister, "entry %d has %d elements, want [date, date2, description, posting, running]", i, len(jrow))
		}
		var row RegisterRow
		if err := json.Unmarshal(jrow[0], &row.Date); err != nil {
			return nil, &DecodeError{Kind: kindRegister, Msg: "entry date is not a date", Err: err}
		}
		if err := json.Unmarshal(jrow[2], &row.Description); err != nil {
			return nil, &DecodeError{Kind: kindRegister, Msg: "entry description is not a string", Err: err}
		}
		var jp jPosting
		if err := json.Unmarshal(jrow[3], &jp); err != nil {
			return nil, &DecodeError{Kind: kindRegister, Msg: "entry posting is not a posting object", Err: err}
		}
		posting, err := mapPosting(kindRegister, jp, currencies)
		if err != nil {
			return nil, err
		}
		row.Account = posting.Account
		row.Amounts = posting.Amounts
		row.Display = posting.Display

		var jrunning []jAmount
		if err := json.Unmarshal(jrow[4], &jrunning); err != nil {
			return nil, &DecodeError{Kind: kindRegister, Msg: "entry running total is not an amount array", Err: err}
		}
		if row.Running, err = mapAmounts(kindRegister, jrunning, currencies); err != nil {
			return nil, err
		}
		row.RunningStr = FormatAmounts(row.Running)
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeAccounts decodes the output of `hledger accounts`: plain text, one
// account name per line.
func DecodeAccounts(data []byte) []string {
	var accounts []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			accounts = append(accounts, line)
		}
	}
	return accounts
}
