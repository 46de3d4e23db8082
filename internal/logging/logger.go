// SPDX-License-Identifier: EPL-2.0

// Package logging provides the leveled, optionally colored logger of the
// sampleprep command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // colors when stdout is a terminal
	ColorAlways ColorMode = "always" // force colors on
	ColorNever  ColorMode = "never"  // no colors
)

// ParseColorMode accepts auto, always or never, ignoring case.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("invalid color mode %q: want auto, always or never", s)
}

// palette holds the ANSI sequences in use. Every field is empty when colors
// are disabled.
type palette struct {
	red, green, yellow, blue, cyan, reset string
}

var ansi = palette{
	red:    "\033[1;91m",
	green:  "\033[1;92m",
	yellow: "\033[1;93m",
	blue:   "\033[1;94m",
	cyan:   "\033[1;96m",
	reset:  "\033[0m",
}

// Options configures a Logger.
type Options struct {
	Color   ColorMode
	File    string // append-only log file; empty for none
	Verbose bool   // enables Debug

	// Out and Err default to os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer
}

// Logger provides leveled, optionally colored logging with an optional
// file sink. The file never receives color sequences.
type Logger struct {
	mu      sync.Mutex
	colors  palette
	verbose bool
	out     io.Writer
	err     io.Writer
	file    *os.File
}

// New resolves the color mode and opens the log file, creating its
// directory. Call Close when done.
func New(opts Options) (*Logger, error) {
	l := &Logger{
		verbose: opts.Verbose,
		out:     opts.Out,
		err:     opts.Err,
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if l.err == nil {
		l.err = os.Stderr
	}

	if colorEnabled(opts.Color, l.out) {
		l.colors = ansi
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = f
	}
	return l, nil
}

// Discard returns a logger that writes nowhere.
func Discard() *Logger {
	return &Logger{out: io.Discard, err: io.Discard}
}

func colorEnabled(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	f, ok := out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
}

// Colored reports whether ANSI colors are in use.
func (l *Logger) Colored() bool { return l.colors.reset != "" }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")

	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if level == "ERROR" {
		out = l.err
	}

	plain := ts + " [" + level + "] " + text + "\n"
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+l.colors.reset+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...any) {
	l.line("INFO", l.colors.blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...any) {
	l.line("SUCCESS", l.colors.green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...any) {
	l.line("WARN", l.colors.yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to the error writer.
func (l *Logger) Error(format string, args ...any) {
	l.line("ERROR", l.colors.red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) when the logger is verbose.
func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", l.colors.cyan, fmt.Sprintf(format, args...))
}
