package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonemmott/datastore/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the store",
	}
	cmd.AddCommand(newExportSQLiteCmd(a))
	cmd.AddCommand(newExportJSONLCmd(a))
	return cmd
}

func newExportSQLiteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sqlite <file>",
		Short: "Export every collection into a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			sum, err := export.ToSQLite(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records of %d types to %s\n", sum.Records, sum.Types, args[0])
			return nil
		},
	}
}

func newExportJSONLCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "jsonl <type>",
		Short: "Export one collection as JSON Lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := a.collection(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				_, err = export.WriteJSONL(cmd.OutOrStdout(), coll)
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if _, err := export.WriteJSONL(f, coll); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
