package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

const (
	eventsFile    = "../../../testdata/events.yaml"
	invalidFile   = "../../../testdata/invalid.yaml"
	duplicateFile = "../../../testdata/duplicate-keys.yaml"
)

// execute runs the root command with args and returns its stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestValidate_ValidDocument(t *testing.T) {
	_, stderr, err := execute(t, "", "validate", eventsFile)
	require.NoError(t, err)
	assert.Contains(t, stderr, "AsyncAPI Version: 3.0.0")
	assert.Contains(t, stderr, "Channels: 1")
	assert.Contains(t, stderr, "Operations: 2")
	assert.Contains(t, stderr, "Server production: kafka://eu-west-1.broker.example.com:9092")
	assert.Contains(t, stderr, "✓ Validation passed")
}

func TestValidate_InvalidDocument(t *testing.T) {
	_, stderr, err := execute(t, "", "validate", "--no-warnings", invalidFile)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, stderr, "Errors (2):")
	assert.Contains(t, stderr, invalidFile+":21:")
	assert.Contains(t, stderr, "operations.receiveMissing.channel")
	assert.Contains(t, stderr, "operations.sendEvent.messages[0]")
	assert.Contains(t, stderr, "✗ Validation failed: 2 error(s)")
}

func TestValidate_Quiet(t *testing.T) {
	stdout, stderr, err := execute(t, "", "validate", "-q", invalidFile)
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestValidate_JSONFormat(t *testing.T) {
	stdout, _, err := execute(t, "", "validate", "--format", "json", "--no-warnings", invalidFile)
	require.ErrorIs(t, err, ErrValidationFailed)

	var report ValidateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, "3.0.0", report.Version)
	assert.Equal(t, 2, report.ErrorCount)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, ReportIssue{
		Path:    "operations.receiveMissing.channel",
		Message: report.Errors[0].Message,
		Line:    21,
		Column:  report.Errors[0].Column,
	}, report.Errors[0])
	assert.Empty(t, report.Warnings)
}

func TestValidate_YAMLFormat(t *testing.T) {
	stdout, _, err := execute(t, "", "validate", "--format", "yaml", eventsFile)
	require.NoError(t, err)

	var report ValidateReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.Valid)
	assert.Equal(t, eventsFile, report.File)
}

func TestValidate_Stdin(t *testing.T) {
	data, err := os.ReadFile(eventsFile)
	require.NoError(t, err)

	stdout, _, err := execute(t, string(data), "validate", "--format", "json", "-")
	require.NoError(t, err)
	var report ValidateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.Valid)
	assert.Equal(t, "<stdin>", report.File)
}

func TestValidate_DuplicateKeys(t *testing.T) {
	_, _, err := execute(t, "", "validate", duplicateFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, asyncerrors.ErrStructural)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}

func TestValidate_Lint(t *testing.T) {
	doc := `asyncapi: 3.0.0
info:
  title: Lint
  version: "1.0"
channels:
  audit:
    address: audit
    bindings:
      $ref: "#/components/messageBindings/kafka"
    messages:
      Entry:
        payload:
          type: string
operations:
  sendAudit:
    action: send
    channel:
      $ref: "#/channels/audit"
    messages:
      - $ref: "#/channels/audit/messages/Entry"
components:
  messageBindings:
    kafka:
      kafka:
        key:
          type: string
`
	_, _, err := execute(t, doc, "validate", "-q", "-")
	require.ErrorIs(t, err, ErrValidationFailed)

	stdout, _, err := execute(t, doc, "validate", "--lint", "--format", "json", "-")
	require.NoError(t, err)
	var report ValidateReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.Valid)
	var paths []string
	for _, w := range report.Warnings {
		paths = append(paths, w.Path)
	}
	assert.Contains(t, paths, "channels.audit.bindings")
}

func TestValidate_FlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "no args", args: []string{"validate"}, wantMsg: "accepts 1 arg(s)"},
		{name: "invalid format", args: []string{"validate", "--format", "xml", eventsFile}, wantMsg: "invalid format 'xml'"},
		{name: "watch stdin", args: []string{"validate", "--watch", "-"}, wantMsg: "--watch cannot be used with stdin"},
		{name: "invalid log format", args: []string{"--log-format", "xml", "validate", eventsFile}, wantMsg: "invalid log format 'xml'"},
		{name: "invalid log level", args: []string{"--log-level", "loud", "validate", eventsFile}, wantMsg: "invalid log level 'loud'"},
		{name: "missing file", args: []string{"validate", "does-not-exist.yaml"}, wantMsg: "parsing does-not-exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRender(t *testing.T) {
	stdout, _, err := execute(t, "", "render", "--format", "json", eventsFile)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "3.0.0", doc["asyncapi"])
	assert.Contains(t, doc, "channels")
	assert.Contains(t, doc, "operations")
}

func TestRender_DefaultsToSourceFormat(t *testing.T) {
	stdout, _, err := execute(t, "", "render", eventsFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "asyncapi: 3.0.0"), "expected YAML output, got %q", stdout)
}

func TestRender_Output(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	stdout, _, err := execute(t, "", "render", "--format", "json", "-o", out, eventsFile)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestRender_InvalidDocument(t *testing.T) {
	stdout, _, err := execute(t, "", "render", invalidFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, asyncerrors.ErrReference)
	assert.ErrorIs(t, err, asyncerrors.ErrIntegrity)
	assert.Empty(t, stdout)
}

func TestRender_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "render", "--format", "toml", eventsFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format 'toml'")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version: ")
	assert.Contains(t, stdout, "Go Version: ")

	stdout, _, err = execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Version:")
	assert.NotEmpty(t, strings.TrimSpace(stdout))
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"validate", "render", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{LogFormatText, LogFormatJSON, LogFormatZerolog} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(&buf, format, "info")
			require.NoError(t, err)
			logger.Debug("hidden")
			logger.Info("shown", "key", "value")
			assert.NotContains(t, buf.String(), "hidden")
			assert.Contains(t, buf.String(), "shown")
			assert.Contains(t, buf.String(), "value")
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := map[string]int{"a": 1}

	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, data, FormatJSON))
	assert.JSONEq(t, `{"a": 1}`, buf.String())

	buf.Reset()
	require.NoError(t, OutputStructured(&buf, data, FormatYAML))
	assert.Equal(t, "a: 1\n", buf.String())

	assert.Error(t, OutputStructured(&buf, data, FormatText))
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asyncapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("asyncapi: 3.0.0\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, nil, func() { calls.Add(1) })
	}()

	// Keep writing until the watcher (started asynchronously) reports a change.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("asyncapi: 3.0.0\n# edit\n"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WatchFile did not stop after cancel")
	}
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "a.yaml", FormatSpecPath("a.yaml"))
}

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d error(s)\n", "events.yaml", 2)
	assert.Equal(t, "events.yaml: 2 error(s)\n", buf.String())

	// A failing writer must not panic.
	assert.NotPanics(t, func() { Writef(failingWriter{}, "ignored") })
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }
