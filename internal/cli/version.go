package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/simonemmott/datastore"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the datastore version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "datastore v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
