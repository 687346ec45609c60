package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the managed type-names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			names := store.Types()
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// typeInfo is the describe output.
type typeInfo struct {
	Type    string `json:"type"`
	Schema  string `json:"schema"`
	Records int    `json:"records"`
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <type>",
		Short: "Show the descriptor of a managed type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			desc, err := store.Descriptor(args[0])
			if err != nil {
				return err
			}
			coll, err := store.Collection(args[0])
			if err != nil {
				return err
			}
			info := typeInfo{Type: desc.RefType, Schema: desc.Name, Records: coll.Len()}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "type:    %s\nschema:  %s\nrecords: %d\n", info.Type, info.Schema, info.Records)
			return nil
		},
	}
}
