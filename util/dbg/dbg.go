// Package dbg is the core's one logging seam. It keeps the call shape of
// the original build-tag-based debug logger (Printf/Println) but backs it
// with log/slog so the -q flag can raise the level at runtime instead of
// at compile time.
package dbg

import (
	"fmt"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// SetLevel points future log calls at a new minimum level. Called once
// from cmd/goba/main.go after parsing the repeatable -q flag.
func SetLevel(level slog.Level) {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Printf logs a runtime warning (§7 "Runtime warnings"): unmapped access,
// ROM writes, non-writable IO writes, invalid DMA modes. Never fatal.
func Printf(format string, a ...interface{}) {
	logger.Warn(fmt.Sprintf(format, a...))
}

// Println logs an informational line (frame pacing, boot messages).
func Println(a ...interface{}) {
	logger.Info(fmt.Sprintln(a...))
}

// Warnf is Printf under its real name, used by new code that doesn't need
// the teacher's Printf/Println naming.
func Warnf(format string, a ...interface{}) {
	logger.Warn(fmt.Sprintf(format, a...))
}

// Infof logs at info level with printf-style args.
func Infof(format string, a ...interface{}) {
	logger.Info(fmt.Sprintf(format, a...))
}
