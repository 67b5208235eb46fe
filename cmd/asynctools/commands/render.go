package commands

import (
	"fmt"
	"os"

	"github.com/erraggy/asynctools/assembler"
	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/parser"
	"github.com/spf13/cobra"
)

// RenderFlags contains flags for the render command
type RenderFlags struct {
	Format string
	Output string
}

func newRenderCommand(g *globalFlags) *cobra.Command {
	flags := &RenderFlags{}

	cmd := &cobra.Command{
		Use:   "render [flags] <file|->",
		Short: "Validate an AsyncAPI document and render it as JSON or YAML",
		Long: `Validate an AsyncAPI 3.x document and render it with deterministic key order.

The document is only rendered when it is valid; otherwise the validation
failure is reported and nothing is written.

Examples:
  asynctools render asyncapi.yaml
  asynctools render --format json asyncapi.yaml
  asynctools render --format yaml --output asyncapi.out.yaml asyncapi.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.Format, "format", "", "output format: json or yaml (default: the source format)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "write the rendered document to this file instead of stdout")
	return cmd
}

func runRender(cmd *cobra.Command, g *globalFlags, flags *RenderFlags, path string) error {
	format := parser.SourceFormatUnknown
	if flags.Format != "" {
		format = parser.ParseSourceFormat(flags.Format)
		if format == parser.SourceFormatUnknown {
			return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.Format, FormatJSON, FormatYAML)
		}
	}

	logger, err := g.logger(cmd)
	if err != nil {
		return err
	}
	parsed, err := parseInput(cmd, path, logger)
	if err != nil {
		return err
	}
	if format == parser.SourceFormatUnknown {
		format = parsed.SourceFormat
	}
	if format == parser.SourceFormatUnknown {
		format = parser.SourceFormatYAML
	}

	a, err := assembler.New(assembler.WithLogger(logger))
	if err != nil {
		return err
	}
	doc, err := a.TryAssemble(builder.FromDocument(parsed.Document)...)
	if err != nil {
		return err
	}

	data, err := parser.Render(doc, format)
	if err != nil {
		return err
	}
	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, data, 0o600); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		logger.Info("rendered document", "output", flags.Output, "size", parser.FormatBytes(int64(len(data))))
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
