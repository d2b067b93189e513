package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/adminui/pkg/version"
)

// NewVersionCmd creates the "version" command.
func NewVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "adminui %s\n", ver)
			fmt.Fprintf(w, "  commit: %s\n", version.GetCommit())
			_, err := fmt.Fprintf(w, "  built:  %s\n", version.GetBuildDate())
			return err
		},
	}
}
