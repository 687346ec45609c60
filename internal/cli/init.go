package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonemmott/datastore/internal/paths"
	"github.com/simonemmott/datastore/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and the store root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return err
			}
			root, err := a.resolveRoot()
			if err != nil {
				return err
			}

			configPath := filepath.Join(configDir, configFileExt)
			if _, err := writeConfigIfMissing(configPath, a.root); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if err := os.MkdirAll(root, 0o755); err != nil {
				return fmt.Errorf("create root: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Datastore initialized successfully")
			fmt.Fprintln(out, "  config:", configPath)
			fmt.Fprintln(out, "  root:  ", root)
			return nil
		},
	}
}

func newDefineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "define <type> <schema>",
		Short: "Create a managed collection directory",
		Long: `Define creates <root>/<type>/ with a __meta__.json descriptor naming
the schema. The type-name is recorded as ref_type when it differs from the
last dot-separated segment of the schema name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, schemaName := args[0], args[1]

			desc := types.Descriptor{Name: schemaName, RefType: typeName}
			if err := desc.Validate(); err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			derived := types.Descriptor{Name: schemaName}
			derived.Normalize()
			if derived.RefType == typeName {
				desc.RefType = ""
			}

			root, err := a.resolveRoot()
			if err != nil {
				return err
			}
			dir := filepath.Join(root, typeName)
			metaPath := filepath.Join(dir, types.DescriptorFile)
			if _, err := os.Stat(metaPath); err == nil {
				return fmt.Errorf("%w: %s is already defined", errUsage, typeName)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			data, err := json.MarshalIndent(desc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal descriptor: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create collection: %w", err)
			}
			if err := os.WriteFile(metaPath, data, 0o644); err != nil {
				return fmt.Errorf("write descriptor: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Defined %s (%s)\n", typeName, schemaName)
			return nil
		},
	}
}
