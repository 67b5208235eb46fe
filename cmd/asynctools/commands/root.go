package commands

import (
	"github.com/erraggy/asynctools/logging"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	logFormat string
	logLevel  string
}

// logger builds the logger selected by the global flags, writing to the
// command's error stream.
func (g *globalFlags) logger(cmd *cobra.Command) (logging.Logger, error) {
	return NewLogger(cmd.ErrOrStderr(), g.logFormat, g.logLevel)
}

// NewRootCommand returns the asynctools command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "asynctools",
		Short: "Assemble, validate, and render AsyncAPI 3.x documents",
		Long: `asynctools decodes AsyncAPI 3.x documents, re-assembles them through the
builder, and validates every reference and operation in a single pass.

Examples:
  asynctools validate asyncapi.yaml
  asynctools validate --lint --format json asyncapi.yaml
  asynctools render --format json asyncapi.yaml
  asynctools mcp`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.logFormat, "log-format", LogFormatText, "log format: text, json, or zerolog")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, or error")

	root.AddCommand(
		newValidateCommand(g),
		newRenderCommand(g),
		newMCPCommand(),
		newVersionCommand(),
	)
	return root
}
