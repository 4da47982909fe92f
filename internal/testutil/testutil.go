// Package testutil provides shared test helpers: fake estimator
// executables and canned estimator output.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Header is the first line every estimator run prints.
const Header = "TargetID,TrueX,TrueY,TrueZ,EstX,EstY,EstZ,AvgError"

// SingleTargetOutput is the output of a one-target run.
const SingleTargetOutput = Header + "\nTarget_1,10,20,30,10.5,19.5,30.2,0.5"

// EstimatorOutput joins the header and rows into estimator stdout.
func EstimatorOutput(rows ...string) string {
	return strings.Join(append([]string{Header}, rows...), "\n") + "\n"
}

// WriteScript writes an executable shell script with the given body into
// a temporary directory and returns its path. The test is skipped where
// /bin/sh is unavailable.
func WriteScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	path := filepath.Join(t.TempDir(), "estimator.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// EchoScript returns a script that prints out on stdout and exits 0.
func EchoScript(t *testing.T, out string) string {
	t.Helper()
	return WriteScript(t, "cat <<'EOF'\n"+strings.TrimRight(out, "\n")+"\nEOF")
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
