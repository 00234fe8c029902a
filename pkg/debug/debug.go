// Package debug provides conditional debug logging for pathlab.
//
// Debug logging is enabled by setting the PATHLAB_DEBUG environment variable:
//
//	PATHLAB_DEBUG=1 pathlab -headless
//
// The TUI owns the terminal, so set PATHLAB_DEBUG_FILE to send records to a
// file instead of stderr:
//
//	PATHLAB_DEBUG=1 PATHLAB_DEBUG_FILE=/tmp/pathlab.log pathlab
//
// When disabled (default), the printf-style helpers are no-ops and Logger
// returns a no-op *zap.Logger.
//
// Usage:
//
//	debug.Log("relaxed %d neighbors", count)
//	defer debug.LogEnterExit("BFS")()
//	debug.Logger().Warn("bound exceeded", zap.Int("limit", limit))
package debug

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	enabled atomic.Bool
	logger  atomic.Pointer[zap.Logger]

	checkpointCounter atomic.Int64
)

func init() {
	logger.Store(zap.NewNop())
	if os.Getenv("PATHLAB_DEBUG") != "" {
		SetEnabled(true)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled allows programmatic control of debug logging. Enabling builds
// the zap logger on first use.
func SetEnabled(e bool) {
	if e && !enabled.Load() {
		logger.Store(newLogger())
	}
	if !e {
		logger.Store(zap.NewNop())
	}
	enabled.Store(e)
}

// SetLogger installs l as the process logger and enables debug output.
// A nil logger disables it.
func SetLogger(l *zap.Logger) {
	if l == nil {
		SetEnabled(false)
		return
	}
	logger.Store(l)
	enabled.Store(true)
}

// Logger returns the process logger. It is a no-op logger when debug logging
// is disabled, so callers can log structured records unconditionally.
func Logger() *zap.Logger {
	return logger.Load()
}

// Sync flushes buffered records.
func Sync() {
	_ = logger.Load().Sync()
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	out := "stderr"
	if path := os.Getenv("PATHLAB_DEBUG_FILE"); path != "" {
		out = path
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug: falling back to stderr: %v\n", err)
		cfg.OutputPaths = []string{"stderr"}
		if l, err = cfg.Build(); err != nil {
			return zap.NewNop()
		}
	}
	return l.Named("pathlab")
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled.Load() {
		return
	}
	logger.Load().Sugar().Debugf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	logger.Load().Debug("timing", zap.String("name", name), zap.Duration("took", d))
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled.Load() || !cond {
		return
	}
	logger.Load().Sugar().Debugf(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	}
func LogEnterExit(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	l := logger.Load()
	l.Debug("-> " + name)
	start := time.Now()
	return func() {
		l.Debug("<- "+name, zap.Duration("took", time.Since(start)))
	}
}

// Trace is an alias for LogEnterExit.
var Trace = LogEnterExit

// Dump logs a value with its type.
func Dump(name string, v any) {
	if !enabled.Load() {
		return
	}
	logger.Load().Sugar().Debugf("%s: %T = %+v", name, v, v)
}

// Section logs a section header.
func Section(name string) {
	if !enabled.Load() {
		return
	}
	logger.Load().Sugar().Debugf("=== %s ===", name)
}

// Checkpoint logs a numbered checkpoint for tracking progress.
func Checkpoint(msg string) {
	if !enabled.Load() {
		return
	}
	n := checkpointCounter.Add(1)
	logger.Load().Sugar().Debugf("[%d] %s", n, msg)
}

// ResetCheckpoints resets the checkpoint counter.
func ResetCheckpoints() {
	checkpointCounter.Store(0)
}
