package mcpserver

import (
	"context"
	"errors"

	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/parser"
	"github.com/erraggy/asynctools/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The AsyncAPI document to validate"`
	NoWarnings *bool     `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Lint       *bool     `json:"lint,omitempty"        jsonschema:"Report component kind mismatches as warnings instead of errors"`
	Offset     int       `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int       `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	Version      string          `json:"version"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	lint := cfg.ValidateLint
	if input.Lint != nil {
		lint = *input.Lint
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	a, err := assembler.New(assembler.WithValidatorOptions(
		validator.WithIncludeWarnings(!noWarnings),
		validator.WithKindMismatchAsWarning(lint),
	))
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	// Validation findings are reported in the output; only a failure to
	// rebuild the document is a tool error.
	_, result, err := a.Run(builder.FromDocument(parseResult.Document)...)
	if result == nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:        result.Valid,
		Version:      parseResult.Version,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
	}

	output.Errors = makeSlice[validateIssue](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, toValidateIssue(e, parseResult.SourceMap))
	}
	output.Warnings = makeSlice[validateIssue](len(result.Warnings))
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, toValidateIssue(w, parseResult.SourceMap))
	}

	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

func toValidateIssue(issue validator.Issue, sm *parser.SourceMap) validateIssue {
	loc := sm.Locate(issue.Path)
	return validateIssue{
		Path:    issue.Path,
		Message: issue.Message,
		Kind:    issueKind(issue),
		Field:   issue.Field,
		Line:    loc.Line,
		Column:  loc.Column,
	}
}

// issueKind names the category of the typed error behind an issue.
func issueKind(issue validator.Issue) string {
	switch {
	case errors.Is(issue, asyncerrors.ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(issue, asyncerrors.ErrReference):
		return "reference"
	case errors.Is(issue, asyncerrors.ErrIntegrity):
		return "integrity"
	case errors.Is(issue, asyncerrors.ErrSchemaDerivation):
		return "schema_derivation"
	case errors.Is(issue, asyncerrors.ErrValidation):
		return "validation"
	default:
		return ""
	}
}
