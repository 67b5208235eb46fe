package commands

import (
	"github.com/erraggy/asynctools"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				Writef(cmd.OutOrStdout(), "%s\n", asynctools.Version())
				return nil
			}
			Writef(cmd.OutOrStdout(), "%s\n", asynctools.BuildInfo())
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
