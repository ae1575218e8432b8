package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var (
	GlobalLogLevel           = LogLevelInfo
	Output         io.Writer = os.Stderr
)

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// SetGlobalLevel changes the level for every logger created afterwards.
func SetGlobalLevel(level string) {
	GlobalLogLevel = ParseLevel(level)
}

type Log struct {
	level LogLevel
	err   error
	out   io.Writer
}

func New() *Log {
	return &Log{
		level: GlobalLogLevel,
		out:   Output,
	}
}

// NewWithWriter is used by tests to capture output.
func NewWithWriter(w io.Writer, level LogLevel) *Log {
	return &Log{level: level, out: w}
}

func (l *Log) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, err: err, out: l.out}
}

func (l *Log) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Log) Debug(msg string) {
	if l.level > LogLevelDebug {
		return
	}
	if l.err != nil {
		fmt.Fprintf(l.out, "%s[%s]%s 🔎 %s: %v%s\n", ColorCyan, l.timestamp(), ColorReset, msg, l.err, ColorReset)
		return
	}
	fmt.Fprintf(l.out, "%s[%s]%s 🔎 %s%s\n", ColorCyan, l.timestamp(), ColorReset, msg, ColorReset)
}

func (l *Log) Info(msg string) {
	if l.level > LogLevelInfo {
		return
	}

	fmt.Fprintf(l.out, "%s[%s]%s ℹ️  %s%s\n", ColorBlue, l.timestamp(), ColorReset, msg, ColorReset)
}

// Suspect logs a line of dialogue attributed to a suspect.
func (l *Log) Suspect(name, msg string) {
	if l.level > LogLevelDebug {
		return
	}

	fmt.Fprintf(l.out, "%s[%s]%s %s[%s]%s %s\n", ColorBlue, l.timestamp(), ColorReset, ColorBold, name, ColorReset, msg)
}

func (l *Log) Warn(msg string) {
	if l.level > LogLevelWarn {
		return
	}

	if l.err != nil {
		fmt.Fprintf(l.out, "%s[%s]%s ⚠️  %s: %v%s\n", ColorYellow, l.timestamp(), ColorReset, msg, l.err, ColorReset)
		return
	}
	fmt.Fprintf(l.out, "%s[%s]%s ⚠️  %s%s\n", ColorYellow, l.timestamp(), ColorReset, msg, ColorReset)
}

func (l *Log) Error(msg string) {
	if l.err != nil {
		fmt.Fprintf(l.out, "%s[%s]%s ❌ %s: %v%s\n", ColorRed, l.timestamp(), ColorReset, msg, l.err, ColorReset)
		return
	}
	fmt.Fprintf(l.out, "%s[%s]%s ❌ %s%s\n", ColorRed, l.timestamp(), ColorReset, msg, ColorReset)
}
