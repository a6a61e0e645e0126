package log

import (
	"log/slog"
	"strings"
)

// Level is the severity of a log record
type Level int

// Levels from most to least verbose
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levels = []struct {
	level Level
	name  string
	slog  slog.Level
}{
	{LevelDebug, "DEBUG", slog.LevelDebug},
	{LevelInfo, "INFO", slog.LevelInfo},
	{LevelWarn, "WARN", slog.LevelWarn},
	{LevelError, "ERROR", slog.LevelError},
}

// String returns the upper-case level name
func (l Level) String() string {
	for _, e := range levels {
		if e.level == l {
			return e.name
		}
	}
	return "UNKNOWN"
}

// ToSlogLevel converts l, mapping unknown levels to info
func (l Level) ToSlogLevel() slog.Level {
	for _, e := range levels {
		if e.level == l {
			return e.slog
		}
	}
	return slog.LevelInfo
}

// LookupLevel parses a level name case-insensitively. "warning" is
// accepted for warn.
func LookupLevel(s string) (Level, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		name = "WARN"
	}
	for _, e := range levels {
		if e.name == name {
			return e.level, true
		}
	}
	return LevelInfo, false
}

// ParseLevel is LookupLevel with unknown names falling back to info
func ParseLevel(s string) Level {
	l, _ := LookupLevel(s)
	return l
}
