package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type renderInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The AsyncAPI document to render"`
	Format string    `json:"format,omitempty" jsonschema:"Output format: json or yaml (default: the source format)"`
	Output string    `json:"output,omitempty" jsonschema:"Write the rendered document to this file instead of returning it inline"`
}

type renderOutput struct {
	Format       string `json:"format"`
	SourceFormat string `json:"source_format"`
	Size         int    `json:"size"`
	WrittenTo    string `json:"written_to,omitempty"`
	Document     string `json:"document,omitempty"`
}

func handleRender(_ context.Context, _ *mcp.CallToolRequest, input renderInput) (*mcp.CallToolResult, renderOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}

	format := result.SourceFormat
	if input.Format != "" {
		format = parser.ParseSourceFormat(input.Format)
		if format == parser.SourceFormatUnknown {
			return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), renderOutput{}, nil
		}
	}
	if format == parser.SourceFormatUnknown {
		format = parser.SourceFormatYAML
	}

	b := builder.New()
	if err := b.Apply(builder.FromDocument(result.Document)...); err != nil {
		return errResult(err), renderOutput{}, nil
	}
	data, err := parser.Render(b.Build(), format)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}

	output := renderOutput{
		Format:       string(format),
		SourceFormat: string(result.SourceFormat),
		Size:         len(data),
	}
	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0o600); err != nil {
			return errResult(fmt.Errorf("failed to write output: %w", err)), renderOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
