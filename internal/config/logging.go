package config

import (
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"
)

// LogLevel controls which messages a LogGroup prints.
type LogLevel int

const (
	// ErrLevel is the minimum level: only errors.
	ErrLevel LogLevel = iota + 1
	// WarnLevel adds warnings.
	WarnLevel
	// InfoLevel adds progress and result summaries. This is the default.
	InfoLevel
	// DebugLevel adds per-phase diagnostics such as suppressed cycle edges.
	DebugLevel
	// TraceLevel adds per-edge tracing. Very noisy on real binaries.
	TraceLevel
)

// LogGroup is a set of leveled loggers writing to one destination.
// A nil *LogGroup discards everything.
type LogGroup struct {
	level LogLevel
	trace *log.Logger
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
}

// NewLogGroup returns a log group writing to stderr at the configured level.
func NewLogGroup(cfg *Config) *LogGroup {
	return NewLogGroupTo(os.Stderr, LogLevel(cfg.LogLevel))
}

// NewLogGroupTo returns a log group writing to w. Prefixes are colored when
// w is a terminal.
func NewLogGroupTo(w io.Writer, level LogLevel) *LogGroup {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	mk := func(prefix, code string) *log.Logger {
		if color {
			prefix = fmt.Sprintf("\033[%sm%s\033[0m", code, prefix)
		}
		return log.New(w, prefix, 0)
	}
	return &LogGroup{
		level: level,
		trace: mk("[TRACE] ", "2"),
		debug: mk("[DEBUG] ", "1;36"),
		info:  mk("[INFO] ", "1;32"),
		warn:  mk("[WARN] ", "1;33"),
		err:   mk("[ERROR] ", "1;31"),
	}
}

// Level returns the active level.
func (l *LogGroup) Level() LogLevel {
	if l == nil {
		return 0
	}
	return l.level
}

func (l *LogGroup) logf(level LogLevel, lg *log.Logger, format string, v ...any) {
	if l == nil || l.level < level {
		return
	}
	lg.Printf(format, v...)
}

// Tracef prints at TraceLevel. Arguments are handled in the manner of Printf.
func (l *LogGroup) Tracef(format string, v ...any) {
	if l != nil {
		l.logf(TraceLevel, l.trace, format, v...)
	}
}

// Debugf prints at DebugLevel.
func (l *LogGroup) Debugf(format string, v ...any) {
	if l != nil {
		l.logf(DebugLevel, l.debug, format, v...)
	}
}

// Infof prints at InfoLevel.
func (l *LogGroup) Infof(format string, v ...any) {
	if l != nil {
		l.logf(InfoLevel, l.info, format, v...)
	}
}

// Warnf prints at WarnLevel.
func (l *LogGroup) Warnf(format string, v ...any) {
	if l != nil {
		l.logf(WarnLevel, l.warn, format, v...)
	}
}

// Errorf prints at ErrLevel.
func (l *LogGroup) Errorf(format string, v ...any) {
	if l != nil {
		l.logf(ErrLevel, l.err, format, v...)
	}
}
