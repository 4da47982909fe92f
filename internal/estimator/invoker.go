// Package estimator runs the external position estimator and captures what
// it printed.
package estimator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/banshee-data/position.report/internal/monitoring"
)

// Result is the captured outcome of one estimator run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner starts an executable with no arguments and waits for it. A non-nil
// error means the process could not be run at all; a process that ran and
// failed is reported through Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, path string) (*Result, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// A killed estimator may leave children holding the output pipes.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err = cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		res.ExitCode = -1
		return res, err
	}
}

// Invoker runs the estimator at Path once per call to Run.
//
// With Timeout zero the call waits for the estimator for as long as it
// takes: a hung estimator blocks the caller indefinitely. Set Timeout to
// bound the wait; expiry returns *TimeoutError.
type Invoker struct {
	Path    string
	Timeout time.Duration
	Runner  Runner
	Logger  monitoring.Logger
}

// NewInvoker returns an Invoker for the executable at path using os/exec.
func NewInvoker(path string) *Invoker {
	return &Invoker{
		Path:   path,
		Runner: ExecRunner{},
		Logger: monitoring.Nop{},
	}
}

// SetLogger sets the debug logger for the invoker.
func (inv *Invoker) SetLogger(logger monitoring.Logger) {
	if logger != nil {
		inv.Logger = logger
	}
}

// Run launches the estimator and blocks until it exits. Any failure to
// launch and any non-zero exit is an *ExternalProcessError; stdout must not
// be parsed in that case. Stderr from a successful run is informational
// and only logged.
func (inv *Invoker) Run(ctx context.Context) (*Result, error) {
	if inv.Path == "" {
		return nil, &ExternalProcessError{ExitCode: -1, Err: errors.New("no estimator path configured")}
	}

	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	inv.logger().Debugf("Executing estimator: %s (timeout=%s)", inv.Path, inv.Timeout)
	res, err := inv.runner().Run(runCtx, inv.Path)

	if inv.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		var stderr string
		if res != nil {
			stderr = res.Stderr
		}
		return nil, &TimeoutError{Path: inv.Path, Timeout: inv.Timeout, Stderr: stderr}
	}
	if err != nil {
		inv.logger().Debugf("Estimator failed to start: %v", err)
		pe := &ExternalProcessError{Path: inv.Path, ExitCode: -1, Err: err}
		if res != nil {
			pe.Stderr = res.Stderr
		}
		return nil, pe
	}
	if res.ExitCode != 0 {
		inv.logger().Debugf("Estimator exited %d after %s", res.ExitCode, res.Duration)
		return nil, &ExternalProcessError{Path: inv.Path, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	inv.logger().Debugf("Estimator finished in %s, %d bytes of output", res.Duration, len(res.Stdout))
	if s := strings.TrimSpace(res.Stderr); s != "" {
		monitoring.Logf("estimator stderr: %s", s)
	}
	return res, nil
}

func (inv *Invoker) runner() Runner {
	if inv.Runner == nil {
		return ExecRunner{}
	}
	return inv.Runner
}

func (inv *Invoker) logger() monitoring.Logger {
	if inv.Logger == nil {
		return monitoring.Nop{}
	}
	return inv.Logger
}
