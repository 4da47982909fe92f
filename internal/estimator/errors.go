package estimator

import (
	"fmt"
	"strings"
	"time"
)

// ExternalProcessError reports an estimator that could not be launched or
// exited non-zero. Stderr is the captured diagnostic text, verbatim.
type ExternalProcessError struct {
	Path     string
	ExitCode int
	Stderr   string
	// Err is the launch failure, if the process never ran.
	Err error
}

func (e *ExternalProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("estimator %s failed to start: %v", e.Path, e.Err)
	}
	msg := fmt.Sprintf("estimator %s exited with status %d", e.Path, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExternalProcessError) Unwrap() error { return e.Err }

// TimeoutError reports an estimator still running when Invoker.Timeout
// elapsed. The process is killed before this is returned.
type TimeoutError struct {
	Path    string
	Timeout time.Duration
	Stderr  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("estimator %s did not exit within %s", e.Path, e.Timeout)
}
