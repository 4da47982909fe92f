package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger used by the report pipeline.
// It defaults to log.Printf but may be replaced by SetLogger so tests can
// capture or mute pipeline output.
var Logf func(format string, v ...interface{}) = log.Printf

var debugEnabled atomic.Bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug toggles Debugf output.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether Debugf currently emits anything.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf logs through Logf with a "debug:" prefix when debug output is on.
func Debugf(format string, v ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	Logf("debug: "+format, v...)
}

// Logger is the minimal logging surface components accept. Debugger
// adapts the package functions to it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Debugger forwards to the package-level Debugf.
type Debugger struct{}

// Debugf implements Logger.
func (Debugger) Debugf(format string, args ...interface{}) {
	Debugf(format, args...)
}

// Nop discards everything.
type Nop struct{}

// Debugf implements Logger.
func (Nop) Debugf(string, ...interface{}) {}
