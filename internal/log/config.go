package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is the record encoding
type Format int

const (
	// FormatText writes logfmt-style key=value records
	FormatText Format = iota
	// FormatJSON writes one JSON object per record
	FormatJSON
)

// String returns the format name used in configuration
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a format name case-insensitively; anything but "json"
// is text
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Output is where records are written
type Output struct {
	writer io.Writer
}

// Writer returns the destination, stderr for the zero Output
func (o Output) Writer() io.Writer {
	if o.writer == nil {
		return os.Stderr
	}
	return o.writer
}

// NewOutput wraps w
func NewOutput(w io.Writer) Output {
	return Output{writer: w}
}

// OutputStderr writes to standard error
func OutputStderr() Output {
	return Output{writer: os.Stderr}
}

// OutputFile appends to the file at path, creating parent directories as
// needed. The caller closes the returned file.
func OutputFile(path string) (Output, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return Output{}, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return Output{}, nil, fmt.Errorf("open log file: %w", err)
	}

	return Output{writer: f}, f, nil
}

// Config holds configuration for the logger
type Config struct {
	Level  Level
	Format Format
	Output Output

	// AddSource includes the caller's file and line
	AddSource bool

	// ServiceName and ServiceVersion are attached to every record when set
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig logs info and above as text to stderr. Standard output is
// left to command results.
func DefaultConfig() Config {
	return Config{
		Level:       LevelInfo,
		Format:      FormatText,
		Output:      OutputStderr(),
		ServiceName: "backoffice",
	}
}
