package hledger

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single hledger invocation. Whole-journal reports
// on a large journal take well under a second; anything past this is a hung
// engine, not a slow one.
const DefaultTimeout = 10 * time.Second

// Runner invokes the hledger binary and captures its standard output. It
// knows nothing about report semantics: it hands raw bytes up and turns
// every process-level failure into an ExecError. Calls share no state and
// may run concurrently.
type Runner struct {
	Bin     string        // hledger binary, "hledger" when empty
	Timeout time.Duration // per-call bound, DefaultTimeout when zero
}

func (r *Runner) bin() string {
	if r == nil || r.Bin == "" {
		return "hledger"
	}
	return r.Bin
}

func (r *Runner) timeout() time.Duration {
	if r == nil || r.Timeout == 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// Run executes the engine with the given arguments and returns its standard
// output. A non-zero exit, an unreachable binary, or the timeout elapsing
// all surface as an *ExecError; the timeout case is marked so callers can
// tell it apart.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ExecError{
			Bin:     r.bin(),
			Args:    args,
			Stderr:  stderr.String(),
			Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded),
			Err:     err,
		}
	}
	return stdout.Bytes(), nil
}
