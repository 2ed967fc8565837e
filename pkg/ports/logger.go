package ports

// LogLevel is the minimum severity a Logger writes.
type LogLevel int

const (
	// LevelDebug adds per-width captures and raw encoder lines (--verbose).
	LevelDebug LogLevel = iota
	// LevelInfo reports each phase of a run.
	LevelInfo
	// LevelWarn is for problems that don't stop the run.
	LevelWarn
	// LevelError is for failures that stop the run.
	LevelError
	// LevelQuiet writes nothing (--quiet).
	LevelQuiet
)

// String returns the lowercase level name.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// LevelFromFlags maps the quiet/verbose switches to a level.
// Callers reject the combination of both before calling.
func LevelFromFlags(quiet, verbose bool) LogLevel {
	switch {
	case quiet:
		return LevelQuiet
	case verbose:
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger writes translated messages. msg is a lexicon key used as the
// format string, so callers never pre-format or pre-translate it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
