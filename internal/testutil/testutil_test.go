package testutil

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestEstimatorOutput(t *testing.T) {
	got := EstimatorOutput("A,0,0,0,0,0,0,0", "B,1,1,1,1,1,1,0")
	want := Header + "\nA,0,0,0,0,0,0,0\nB,1,1,1,1,1,1,0\n"
	if got != want {
		t.Errorf("EstimatorOutput() = %q, want %q", got, want)
	}
	if EstimatorOutput() != Header+"\n" {
		t.Errorf("header-only output = %q", EstimatorOutput())
	}
}

func TestSingleTargetOutput(t *testing.T) {
	lines := strings.Split(SingleTargetOutput, "\n")
	if len(lines) != 2 || lines[0] != Header {
		t.Fatalf("unexpected fixture: %q", SingleTargetOutput)
	}
}

func TestWriteScript(t *testing.T) {
	path := WriteScript(t, "exit 0")
	info, err := os.Stat(path)
	AssertNoError(t, err)
	if info.Mode()&0o100 == 0 {
		t.Errorf("script mode = %v, want executable", info.Mode())
	}
}

func TestEchoScript(t *testing.T) {
	path := EchoScript(t, SingleTargetOutput)
	out, err := exec.Command(path).Output()
	AssertNoError(t, err)
	if string(out) != SingleTargetOutput+"\n" {
		t.Errorf("script output = %q", out)
	}
}
