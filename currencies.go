package hledger

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Currencies declares the commodities whose conventional notation makes "."
// ambiguous between decimal point and digit group separator. hledger cannot
// tell the two apart for such commodities, so amounts in them must be
// disambiguated here before their quantity is treated as authoritative.
//
// The table is configurable rather than hardcoded to one symbol: any
// zero-decimal commodity written with "."-separated digit groups (vnd, idr,
// clp...) gets the same treatment.
type Currencies struct {
	ambiguous map[string]int // lowercased commodity -> digit group size
}

// DefaultCurrencies returns the built-in table: vnd with 3-digit groups.
func DefaultCurrencies() Currencies {
	return Currencies{ambiguous: map[string]int{"vnd": 3}}
}

// Ambiguous reports whether the commodity needs "." disambiguation, and the
// size of its digit groups.
func (c Currencies) Ambiguous(commodity string) (groupSize int, ok bool) {
	groupSize, ok = c.ambiguous[strings.ToLower(commodity)]
	return groupSize, ok
}

// currencyFile is the YAML shape of a currencies configuration file:
//
//	ambiguous:
//	  - commodity: vnd
//	    group_size: 3
type currencyFile struct {
	Ambiguous []struct {
		Commodity string `yaml:"commodity"`
		GroupSize int    `yaml:"group_size"`
	} `yaml:"ambiguous"`
}

// LoadCurrencies reads a currencies table from a YAML file. Entries with a
// missing group size default to 3-digit groups.
func LoadCurrencies(path string) (Currencies, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Currencies{}, fmt.Errorf("cannot read currencies file %q: %w", path, err)
	}
	var cf currencyFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return Currencies{}, fmt.Errorf("cannot parse currencies file %q: %w", path, err)
	}
	c := Currencies{ambiguous: make(map[string]int, len(cf.Ambiguous))}
	for _, e := range cf.Ambiguous {
		if e.Commodity == "" {
			return Currencies{}, fmt.Errorf("invalid currencies file %q: entry with empty commodity", path)
		}
		size := e.GroupSize
		if size == 0 {
			size = 3
		}
		c.ambiguous[strings.ToLower(e.Commodity)] = size
	}
	return c, nil
}
