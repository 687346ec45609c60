// Package cli implements the datastore command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/simonemmott/datastore/internal/paths"
	"github.com/simonemmott/datastore/pkg/types"
)

// Version is the datastore CLI version.
const Version = "0.1.0"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and per-invocation state shared by all
// subcommands.
type app struct {
	configDir string
	root      string
	jsonMode  bool
	verbose   bool

	cfg *viper.Viper
	log *zap.Logger
}

// NewRootCmd creates the top-level "datastore" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "datastore",
		Short: "Inspect and edit a file-backed datastore",
		Long: `datastore manages a directory tree of typed collections. Each
sub-directory declares its schema in __meta__.json and holds one JSON file
per record.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/datastore)")
	root.PersistentFlags().StringVar(&a.root, "root", "", "store root directory (default: $(CWD)/data)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newDefineCmd(a))
	root.AddCommand(newTypesCmd(a))
	root.AddCommand(newDescribeCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	os.Exit(reportError(os.Stderr, err))
}

// reportError prints err and returns the exit code for it. Errors a user
// can correct exit with 1; environment and I/O failures exit with 2.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(w, "datastore:", err)
	return exitCode(err)
}

// errUsage marks malformed command arguments.
var errUsage = errors.New("usage")

// userErrors lists the failures caused by the request rather than the
// environment.
var userErrors = []error{
	types.ErrDoesNotExist,
	types.ErrDuplicateReference,
	types.ErrNotAManagedType,
	types.ErrMissingReference,
	types.ErrInvalidReference,
	types.ErrInvalidRecord,
	types.ErrEmptyCriteria,
	types.ErrRootNotFound,
	errUsage,
}

func exitCode(err error) int {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// setup resolves the configuration directory, loads config.yaml and builds
// the logger.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.log = log
	}
	return nil
}
