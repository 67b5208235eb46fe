package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/erraggy/asynctools"
	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/logging"
	"github.com/erraggy/asynctools/parser"
	"github.com/erraggy/asynctools/validator"
	"github.com/spf13/cobra"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Format     string
	NoWarnings bool
	Lint       bool
	Quiet      bool
	Watch      bool
}

// ValidateReport is the structured output of the validate command.
type ValidateReport struct {
	File         string        `json:"file"          yaml:"file"`
	Version      string        `json:"version"       yaml:"version"`
	Valid        bool          `json:"valid"         yaml:"valid"`
	ErrorCount   int           `json:"errorCount"    yaml:"errorCount"`
	WarningCount int           `json:"warningCount"  yaml:"warningCount"`
	Errors       []ReportIssue `json:"errors,omitempty"   yaml:"errors,omitempty"`
	Warnings     []ReportIssue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ReportIssue is one finding with its source location, when known.
type ReportIssue struct {
	Path    string `json:"path"             yaml:"path"`
	Message string `json:"message"          yaml:"message"`
	Line    int    `json:"line,omitempty"   yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func newValidateCommand(g *globalFlags) *cobra.Command {
	flags := &ValidateFlags{}

	cmd := &cobra.Command{
		Use:   "validate [flags] <file|->",
		Short: "Validate an AsyncAPI document",
		Long: `Validate an AsyncAPI 3.x document from a file or stdin.

The document is decoded, re-assembled through the builder (duplicate keys are
structural errors), and validated in a single pass that reports every
reference, integrity, and structural error.

Output Formats:
  text (default)  Human-readable text output
  json            JSON format for programmatic processing
  yaml            YAML format for programmatic processing

Examples:
  asynctools validate asyncapi.yaml
  asynctools validate --lint legacy.yaml
  cat asyncapi.yaml | asynctools validate -q -
  asynctools validate --format json asyncapi.yaml | jq '.valid'
  asynctools validate --watch asyncapi.yaml

Exit Codes:
  0    Validation successful
  1    Validation failed with errors`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(flags.Format); err != nil {
				return err
			}
			if flags.Watch && args[0] == StdinFilePath {
				return fmt.Errorf("--watch cannot be used with stdin")
			}
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}

			if flags.Watch {
				run := func() {
					if err := runValidate(cmd, flags, logger, args[0]); err != nil && !errors.Is(err, ErrValidationFailed) {
						Writef(cmd.ErrOrStderr(), "Error: %v\n", err)
					}
				}
				run()
				return WatchFile(cmd.Context(), args[0], logger, run)
			}
			return runValidate(cmd, flags, logger, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	cmd.Flags().BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	cmd.Flags().BoolVar(&flags.Lint, "lint", false, "report component kind mismatches as warnings instead of errors")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "quiet mode: only output validation result, no diagnostic messages")
	cmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "re-validate whenever the file changes")
	return cmd
}

// parseInput decodes the document at path, or stdin when path is "-".
func parseInput(cmd *cobra.Command, path string, logger logging.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithSourceMap(true), parser.WithLogger(logger)}
	if path == StdinFilePath {
		opts = append(opts, parser.WithReader(cmd.InOrStdin()), parser.WithSourceName(FormatSpecPath(path)))
	} else {
		opts = append(opts, parser.WithFilePath(path))
	}
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(path), err)
	}
	return result, nil
}

// runValidate validates one document and prints its report. It returns
// ErrValidationFailed when the document has fatal findings.
func runValidate(cmd *cobra.Command, flags *ValidateFlags, logger logging.Logger, path string) error {
	startTime := time.Now()

	parsed, err := parseInput(cmd, path, logger)
	if err != nil {
		return err
	}

	a, err := assembler.New(
		assembler.WithLogger(logger),
		assembler.WithValidatorOptions(
			validator.WithIncludeWarnings(!flags.NoWarnings),
			validator.WithKindMismatchAsWarning(flags.Lint),
		),
	)
	if err != nil {
		return err
	}
	_, result, err := a.Run(builder.FromDocument(parsed.Document)...)
	if result == nil {
		return err
	}
	totalTime := time.Since(startTime)

	report := newValidateReport(path, parsed, result)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(out, report, flags.Format); err != nil {
			return err
		}
	} else if !flags.Quiet {
		writeTextReport(errOut, report, parsed, totalTime)
	}

	if !report.Valid {
		return ErrValidationFailed
	}
	return nil
}

func newValidateReport(path string, parsed *parser.ParseResult, result *validator.Result) ValidateReport {
	report := ValidateReport{
		File:         FormatSpecPath(path),
		Version:      parsed.Version,
		Valid:        result.Valid,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
	}
	for _, e := range result.Errors {
		report.Errors = append(report.Errors, newReportIssue(e, parsed.SourceMap))
	}
	for _, w := range result.Warnings {
		report.Warnings = append(report.Warnings, newReportIssue(w, parsed.SourceMap))
	}
	return report
}

func newReportIssue(issue validator.Issue, sm *parser.SourceMap) ReportIssue {
	loc := sm.Locate(issue.Path)
	return ReportIssue{
		Path:    issue.Path,
		Message: issue.Message,
		Line:    loc.Line,
		Column:  loc.Column,
	}
}

// location renders an IDE-friendly "file:line:column" prefix.
func (i ReportIssue) location(file string) string {
	if i.Line == 0 {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, i.Line, i.Column)
}

func writeTextReport(w io.Writer, report ValidateReport, parsed *parser.ParseResult, totalTime time.Duration) {
	Writef(w, "AsyncAPI Document Validator\n")
	Writef(w, "===========================\n\n")
	Writef(w, "asynctools version: %s\n", asynctools.Version())
	Writef(w, "Document: %s\n", report.File)
	Writef(w, "AsyncAPI Version: %s\n", report.Version)
	Writef(w, "Source Size: %s\n", parser.FormatBytes(parsed.SourceSize))
	Writef(w, "Channels: %d\n", len(parsed.Document.Channels))
	Writef(w, "Operations: %d\n", len(parsed.Document.Operations))
	Writef(w, "Components: %d\n", parsed.Document.Components.Len())
	for _, name := range parsed.Document.ServerNames() {
		Writef(w, "Server %s: %s\n", name, parsed.Document.Servers[name].ResolvedURL())
	}
	Writef(w, "Load Time: %v\n", parsed.LoadTime)
	Writef(w, "Total Time: %v\n\n", totalTime)

	if len(report.Errors) > 0 {
		Writef(w, "Errors (%d):\n", report.ErrorCount)
		for _, e := range report.Errors {
			Writef(w, "  ✗ %s: %s: %s\n", e.location(report.File), e.Path, e.Message)
		}
		Writef(w, "\n")
	}
	if len(report.Warnings) > 0 {
		Writef(w, "Warnings (%d):\n", report.WarningCount)
		for _, warning := range report.Warnings {
			Writef(w, "  ⚠ %s: %s: %s\n", warning.location(report.File), warning.Path, warning.Message)
		}
		Writef(w, "\n")
	}

	if report.Valid {
		Writef(w, "✓ Validation passed")
		if report.WarningCount > 0 {
			Writef(w, " with %d warning(s)", report.WarningCount)
		}
		Writef(w, "\n")
		return
	}
	Writef(w, "✗ Validation failed: %d error(s)", report.ErrorCount)
	if report.WarningCount > 0 {
		Writef(w, ", %d warning(s)", report.WarningCount)
	}
	Writef(w, "\n")
}
