// Package logger writes translated, leveled log lines for a sweep.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/sweepcast/pkg/ports"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// sink is shared by a logger and every component logger derived from it,
// so lines from the encoder's stdout and stderr readers never interleave.
type sink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

func (s *sink) println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

// ConsoleLogger writes one line per message. Messages are lexicon keys
// rendered with l10n.F, so callers pass the untranslated format string.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	sink      *sink
}

// NewConsole logs to stderr, keeping stdout free for --json output.
// Color is enabled when stderr is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	fd := os.Stderr.Fd()
	return &ConsoleLogger{
		level: level,
		sink: &sink{
			w:     os.Stderr,
			color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		},
	}
}

// NewWriter creates an uncolored logger writing to w.
func NewWriter(level ports.LogLevel, w io.Writer) *ConsoleLogger {
	return &ConsoleLogger{level: level, sink: &sink{w: w}}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger that prefixes lines with [component].
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	return &ConsoleLogger{
		level:     l.level,
		component: component,
		sink:      l.sink,
	}
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	text := l10n.F(msg, args...)
	switch level {
	case ports.LevelWarn:
		text = l10n.T("warning") + ": " + text
	case ports.LevelError:
		text = l10n.T("error") + ": " + text
	}

	color := l.sink.color
	if l.component != "" {
		if color {
			text = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, text)
		} else {
			text = fmt.Sprintf("[%s] %s", l.component, text)
		}
	}

	if color {
		switch level {
		case ports.LevelDebug:
			text = colorGray + text + colorReset
		case ports.LevelWarn:
			text = colorYellow + text + colorReset
		case ports.LevelError:
			text = colorRed + text + colorReset
		}
	}

	l.sink.println(text)
}
