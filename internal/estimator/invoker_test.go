package estimator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/position.report/internal/monitoring"
	"github.com/banshee-data/position.report/internal/testutil"
)

type testLogger struct {
	logs []string
}

func (l *testLogger) Debugf(format string, args ...interface{}) {
	l.logs = append(l.logs, fmt.Sprintf(format, args...))
}

type stubRunner struct {
	res   *Result
	err   error
	block bool
	calls int
	path  string
}

func (s *stubRunner) Run(ctx context.Context, path string) (*Result, error) {
	s.calls++
	s.path = path
	if s.block {
		<-ctx.Done()
		return &Result{ExitCode: -1, Stderr: "partial"}, nil
	}
	return s.res, s.err
}

func TestNewInvoker(t *testing.T) {
	inv := NewInvoker("/opt/estimator")
	assert.Equal(t, "/opt/estimator", inv.Path)
	assert.Equal(t, time.Duration(0), inv.Timeout)
	assert.IsType(t, ExecRunner{}, inv.Runner)

	// nil logger keeps the existing one
	inv.SetLogger(nil)
	assert.NotNil(t, inv.Logger)
}

func TestInvoker_Success(t *testing.T) {
	stub := &stubRunner{res: &Result{ExitCode: 0, Stdout: "TargetID\n"}}
	logger := &testLogger{}
	inv := &Invoker{Path: "est", Runner: stub}
	inv.SetLogger(logger)

	res, err := inv.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TargetID\n", res.Stdout)
	assert.Equal(t, 1, stub.calls, "no retries")
	assert.Equal(t, "est", stub.path)
	assert.NotEmpty(t, logger.logs)
}

func TestInvoker_StderrOnSuccessIsInformational(t *testing.T) {
	orig := monitoring.Logf
	defer func() { monitoring.Logf = orig }()
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	stub := &stubRunner{res: &Result{ExitCode: 0, Stdout: "ok", Stderr: "warming up\n"}}
	inv := &Invoker{Path: "est", Runner: stub}

	res, err := inv.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Stdout)
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "warming up")
}

func TestInvoker_NonZeroExit(t *testing.T) {
	stub := &stubRunner{res: &Result{ExitCode: 1, Stdout: "TargetID,garbage", Stderr: "boom"}}
	inv := &Invoker{Path: "est", Runner: stub}

	res, err := inv.Run(context.Background())
	assert.Nil(t, res, "stdout must not be handed on after a failure")

	var pe *ExternalProcessError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.ExitCode)
	assert.Equal(t, "boom", pe.Stderr)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, stub.calls)
}

func TestInvoker_LaunchFailure(t *testing.T) {
	cause := errors.New("exec format error")
	inv := &Invoker{Path: "est", Runner: &stubRunner{err: cause}}

	_, err := inv.Run(context.Background())
	var pe *ExternalProcessError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, -1, pe.ExitCode)
}

func TestInvoker_EmptyPath(t *testing.T) {
	stub := &stubRunner{}
	inv := &Invoker{Runner: stub}

	_, err := inv.Run(context.Background())
	var pe *ExternalProcessError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, stub.calls)
}

func TestInvoker_Timeout(t *testing.T) {
	inv := &Invoker{Path: "est", Timeout: 20 * time.Millisecond, Runner: &stubRunner{block: true}}

	_, err := inv.Run(context.Background())
	var te *TimeoutError
	require.True(t, errors.As(err, &te), "got %T: %v", err, err)
	assert.Equal(t, 20*time.Millisecond, te.Timeout)
	assert.Equal(t, "partial", te.Stderr)

	var pe *ExternalProcessError
	assert.False(t, errors.As(err, &pe), "timeout is its own kind")
}

func TestExecRunner_RealProcess(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := testutil.WriteScript(t, "echo '"+testutil.Header+"'\necho note >&2")
		res, err := NewInvoker(path).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.True(t, strings.HasPrefix(res.Stdout, "TargetID,"))
		assert.Equal(t, "note\n", res.Stderr)
	})

	t.Run("exit 1 with stderr", func(t *testing.T) {
		path := testutil.WriteScript(t, "printf boom >&2\nexit 1")
		_, err := NewInvoker(path).Run(context.Background())
		var pe *ExternalProcessError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 1, pe.ExitCode)
		assert.Equal(t, "boom", pe.Stderr)
	})

	t.Run("missing executable", func(t *testing.T) {
		_, err := NewInvoker(filepath.Join(t.TempDir(), "nope")).Run(context.Background())
		var pe *ExternalProcessError
		require.True(t, errors.As(err, &pe))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewInvoker(t.TempDir()).Run(context.Background())
		var pe *ExternalProcessError
		require.True(t, errors.As(err, &pe))
		assert.Contains(t, err.Error(), "is a directory")
	})

	t.Run("timeout kills the process", func(t *testing.T) {
		path := testutil.WriteScript(t, "sleep 5")
		inv := NewInvoker(path)
		inv.Timeout = 50 * time.Millisecond

		start := time.Now()
		_, err := inv.Run(context.Background())
		var te *TimeoutError
		require.True(t, errors.As(err, &te), "got %T: %v", err, err)
		assert.Less(t, time.Since(start), 4*time.Second)
	})
}
