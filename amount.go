package hledger

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Style carries the formatting metadata hledger reports alongside a quantity,
// enough to reproduce an engine-compatible rendering of the amount.
type Style struct {
	Side    string `json:"side"`   // "L" or "R": which side of the number the commodity sits on
	Spaced  bool   `json:"spaced"` // whether a space separates commodity and number
	Decimal string `json:"decimal_mark"`
	Places  int32  `json:"places"` // display decimal places
}

// Amount is a quantity of a commodity. The quantity is an exact decimal,
// never a float, so engine-reported precision is preserved bit for bit.
type Amount struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Commodity string          `json:"commodity"`
	Style     Style           `json:"style"`
}

// defaultStyle guesses a display style for an amount constructed without
// engine metadata (user input): commodity on the right, spaced, with the
// conventional fraction digits for the currency when go-money knows it.
func defaultStyle(quantity decimal.Decimal, commodity string, currencies Currencies) Style {
	s := Style{Side: "R", Spaced: true, Decimal: "."}
	if _, ok := currencies.Ambiguous(commodity); ok {
		s.Places = 0
		return s
	}
	if cur := money.GetCurrency(strings.ToUpper(commodity)); cur != nil {
		s.Places = int32(cur.Fraction)
	} else {
		s.Places = fracDigits(quantity)
	}
	return s
}

// NewAmount builds an Amount from an exact quantity, with a default style.
func NewAmount(quantity decimal.Decimal, commodity string, currencies Currencies) Amount {
	return Amount{Quantity: quantity, Commodity: commodity, Style: defaultStyle(quantity, commodity, currencies)}
}

// fracDigits returns the number of fractional digits the decimal carries.
func fracDigits(d decimal.Decimal) int32 {
	if e := d.Exponent(); e < 0 {
		return -e
	}
	return 0
}

// disambiguate resolves the "." ambiguity for a quantity reported by the
// engine in an ambiguous-decimal commodity. places is the number of decimal
// places the engine parsed.
//
// The rule is deterministic: zero places means the literal had no "." at all
// and the value stands; places equal to the commodity's group size means the
// engine mistook a trailing digit group for a fraction, so the value is the
// whole number scaled back up; any other number of places cannot be resolved
// and is an AmbiguousAmountError, never a guess.
func disambiguate(quantity decimal.Decimal, places int32, commodity string, currencies Currencies) (decimal.Decimal, error) {
	groupSize, ok := currencies.Ambiguous(commodity)
	if !ok || places == 0 {
		return quantity, nil
	}
	if places == int32(groupSize) {
		return quantity.Shift(int32(groupSize)), nil
	}
	return decimal.Decimal{}, &AmbiguousAmountError{Commodity: commodity, Literal: quantity.String()}
}

// Format renders the amount as a display string: sign preserved, integer
// digits in comma-separated groups, the engine's decimal places, and the
// commodity on its reported side.
func (a Amount) Format() string {
	num := groupDigits(a.Quantity.Abs().StringFixed(a.Style.Places))
	if a.Quantity.Sign() < 0 {
		num = "-" + num
	}
	sep := ""
	if a.Style.Spaced {
		sep = " "
	}
	if a.Style.Side == "L" {
		return a.Commodity + sep + num
	}
	return num + sep + a.Commodity
}

// Normalize renders the amount as a canonical on-disk literal that hledger
// re-parses to the identical quantity. No digit grouping is emitted. For an
// ambiguous-decimal commodity the literal always carries a trailing "."
// marker, which pins the period down as a decimal mark so the engine cannot
// re-read the digits as anything but a whole number. Non-integral quantities
// in such a commodity have no unambiguous rendering and are rejected.
func (a Amount) Normalize(currencies Currencies) (string, error) {
	if _, ok := currencies.Ambiguous(a.Commodity); ok {
		if !a.Quantity.IsInteger() {
			return "", &AmbiguousAmountError{Commodity: a.Commodity, Literal: a.Quantity.String()}
		}
		return a.Quantity.String() + ". " + a.Commodity, nil
	}
	places := fracDigits(a.Quantity)
	if a.Style.Places > places {
		places = a.Style.Places
	}
	return a.Quantity.StringFixed(places) + " " + a.Commodity, nil
}

// FormatAmounts renders a posting's amounts as one display string, the
// engine's order preserved.
func FormatAmounts(amounts []Amount) string {
	parts := make([]string, 0, len(amounts))
	for _, a := range amounts {
		parts = append(parts, a.Format())
	}
	return strings.Join(parts, ", ")
}

// ParseAmount parses a user-typed amount literal like "12.50 usd", "$25" or
// "150.000 vnd" into an Amount. For ambiguous-decimal commodities the "."
// groups are read as digit group separators, except for a single trailing "."
// which is the disambiguating decimal marker Normalize emits.
func ParseAmount(literal string, currencies Currencies) (Amount, error) {
	s := strings.TrimSpace(literal)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return Amount{}, &ValidationError{Field: "amount", Msg: "no digits in " + strconv.Quote(literal)}
	}
	end := start
	for end < len(s) && isNumberByte(s[end]) {
		end++
	}
	left := strings.TrimSpace(s[:start])
	right := strings.TrimSpace(s[end:])
	if left != "" && right != "" {
		return Amount{}, &ValidationError{Field: "amount", Msg: "two commodities in " + strconv.Quote(literal)}
	}
	commodity := left + right
	if commodity == "" {
		return Amount{}, &ValidationError{Field: "amount", Msg: "missing commodity in " + strconv.Quote(literal)}
	}

	num := s[start:end]
	quantity, err := parseQuantity(num, commodity, currencies)
	if err != nil {
		return Amount{}, err
	}
	if neg {
		quantity = quantity.Neg()
	}
	a := NewAmount(quantity, commodity, currencies)
	if left != "" {
		a.Style.Side = "L"
		a.Style.Spaced = s[start-1] == ' '
	}
	return a, nil
}

// parseQuantity turns the numeric part of a literal into an exact decimal,
// applying the ambiguous-commodity rules where they are declared.
func parseQuantity(num, commodity string, currencies Currencies) (decimal.Decimal, error) {
	if _, ok := currencies.Ambiguous(commodity); ok {
		switch {
		case !strings.Contains(num, "."):
			// plain digits (commas are grouping either way)
			num = strings.ReplaceAll(num, ",", "")
		case strings.HasSuffix(num, ".") && strings.Count(num, ".") == 1:
			// the trailing decimal marker Normalize writes
			num = strings.ReplaceAll(strings.TrimSuffix(num, "."), ",", "")
		case isDotGrouped(num):
			num = strings.ReplaceAll(num, ".", "")
		default:
			return decimal.Decimal{}, &AmbiguousAmountError{Commodity: commodity, Literal: num}
		}
	} else {
		num = strings.ReplaceAll(num, ",", "")
	}
	quantity, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Field: "amount", Msg: "not a number: " + strconv.Quote(num)}
	}
	return quantity, nil
}

// isDotGrouped reports whether num is digits in "."-separated 3-digit groups,
// like "1.234.567" or "150.000".
func isDotGrouped(num string) bool {
	groups := strings.Split(num, ".")
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	for _, g := range groups {
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func isNumberByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == ','
}

// groupDigits inserts "," separators in the integer part of a plain decimal
// string. The input must not already contain separators.
func groupDigits(s string) string {
	intPart := s
	rest := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, rest = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + rest
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + rest
}
