// Package commands provides the cobra command tree for the asynctools CLI.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erraggy/asynctools/logging"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log format constants
const (
	LogFormatText    = "text"
	LogFormatJSON    = "json"
	LogFormatZerolog = "zerolog"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrValidationFailed is returned by commands whose input document has fatal
// findings. The report has already been printed when it is returned.
var ErrValidationFailed = errors.New("validation failed")

// Writef writes formatted output to w. Write failures are reported on the
// process stderr since w is usually the command's own output stream.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// FormatSpecPath returns a display name for a document path.
func FormatSpecPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// NewLogger builds the logger selected by --log-format and --log-level.
// Logs go to w, which is stderr for the CLI.
func NewLogger(w io.Writer, format, level string) (logging.Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level '%s'. Valid levels: debug, info, warn, error", level)
	}

	switch format {
	case LogFormatText:
		return logging.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel}))), nil
	case LogFormatJSON:
		return logging.NewSlogAdapter(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel}))), nil
	case LogFormatZerolog:
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
			Level(zerologLevel(slogLevel)).
			With().Timestamp().Logger()
		return logging.NewZerologAdapter(zl), nil
	default:
		return nil, fmt.Errorf("invalid log format '%s'. Valid formats: %s, %s, %s",
			format, LogFormatText, LogFormatJSON, LogFormatZerolog)
	}
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l <= slog.LevelDebug:
		return zerolog.DebugLevel
	case l <= slog.LevelInfo:
		return zerolog.InfoLevel
	case l <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
