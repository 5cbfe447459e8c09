// Package hledger is a presentation and editing layer over a plain-text
// accounting journal maintained by the hledger command-line program.
//
// hledger owns all accounting semantics (balancing, valuation, reporting).
// This package invokes it as a subprocess, decodes its JSON report output
// into typed entities, renders amounts into display strings, and translates
// user edits back into targeted text mutations of the journal file.
//
// The entry point is [Journal], which wires the subprocess runner, the
// report decoders, the read cache and the journal editor together.
package hledger
