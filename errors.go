package hledger

import (
	"fmt"
	"strings"
)

// The error taxonomy. Every failure surfaced by this package belongs to
// exactly one of these types, so callers can branch with errors.As and
// decide their own retry policy. Nothing here retries, and nothing here
// substitutes a default value for an undecodable one.

// ExecError reports a failure to run the hledger subprocess: the binary is
// unreachable, exited non-zero, or hit the call timeout.
type ExecError struct {
	Bin     string
	Args    []string
	Stderr  string
	Timeout bool
	Err     error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("exec error: %s %s: %v", e.Bin, strings.Join(e.Args, " "), e.Err)
	if e.Timeout {
		msg = fmt.Sprintf("exec error: %s %s: timed out", e.Bin, strings.Join(e.Args, " "))
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

// DecodeError reports hledger output that did not match the expected report
// schema, or matched it but was missing an expected field. It is distinct
// from ExecError: the process ran fine, the payload is the problem.
type DecodeError struct {
	Kind string // report kind: "print", "balance", "compound", "register"
	Msg  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode error in %s report: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("decode error in %s report: %s", e.Kind, e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodeErrf builds a DecodeError with a formatted message.
func decodeErrf(kind, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// ValidationError reports caller-supplied transaction fields that are
// structurally invalid. It is raised before any subprocess call or file
// mutation is attempted.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid transaction: " + e.Msg
	}
	return fmt.Sprintf("invalid transaction: %s: %s", e.Field, e.Msg)
}

// FileError reports a read, write or rename failure on the journal file,
// including out-of-range position edits.
type FileError struct {
	Path string
	Msg  string
	Err  error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("edit error in %q: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("edit error in %q: %s", e.Path, e.Msg)
}

func (e *FileError) Unwrap() error { return e.Err }

// AmbiguousAmountError reports an amount in an ambiguous-decimal commodity
// that could not be deterministically disambiguated. The quantity is never
// guessed at.
type AmbiguousAmountError struct {
	Commodity string
	Literal   string
}

func (e *AmbiguousAmountError) Error() string {
	return fmt.Sprintf("ambiguous amount %q in commodity %q: cannot tell decimal mark from digit group separator", e.Literal, e.Commodity)
}
