package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/simonemmott/datastore/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <ref>",
		Short: "Get a record by reference",
		Example: `  datastore get Type1 1
  datastore get Type2 A`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := a.collection(args[0])
			if err != nil {
				return err
			}
			doc, err := coll.Document(args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), doc)
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <type> <key=value>...",
		Short: "Get the first record matching every key=value pair",
		Long: `Find returns the first record, in collection order, whose fields equal
every given value. Values are parsed as JSON when valid, otherwise taken as
strings.`,
		Example: `  datastore find Type1 name=Item_1`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseCriteria(args[1:])
			if err != nil {
				return err
			}
			coll, err := a.collection(args[0])
			if err != nil {
				return err
			}
			record, err := coll.Find(criteria)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <type> [key=value...]",
		Short: "List records with optional filter",
		Long: `List returns every record whose fields equal every given value.
Multiple filters are ANDed together. No filter returns every record.`,
		Example: `  datastore list Type1
  datastore list Type1 description="Item 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseCriteria(args[1:])
			if err != nil {
				return err
			}
			coll, err := a.collection(args[0])
			if err != nil {
				return err
			}
			records, err := coll.Filter(criteria)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), records)
		},
	}
}

// mutation runs one write operation against a collection.
type mutation func(coll types.Collection, record any, criteria types.Criteria) (string, error)

// runMutation parses the record argument, applies op and reports the
// reference it used.
func (a *app) runMutation(cmd *cobra.Command, verb string, args []string, criteria types.Criteria, op mutation) error {
	doc, err := parseDocument(args[1])
	if err != nil {
		return err
	}
	coll, err := a.collection(args[0])
	if err != nil {
		return err
	}
	ref, err := op(coll, doc, criteria)
	if err != nil {
		return err
	}
	return a.reportMutation(cmd, verb, coll.Type(), ref)
}

// reportMutation prints the type and reference a write operation used.
func (a *app) reportMutation(cmd *cobra.Command, verb, typeName, ref string) error {
	if a.jsonMode {
		return printJSON(cmd.OutOrStdout(), map[string]string{"type": typeName, "ref": ref})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s\n", verb, typeName, ref)
	return nil
}

// refCriteria returns criteria overriding the record's reference, or nil.
func refCriteria(ref string) types.Criteria {
	if ref == "" {
		return nil
	}
	return types.Criteria{types.RefKey: ref}
}

func newAddCmd(a *app) *cobra.Command {
	var ref string
	var generate bool

	cmd := &cobra.Command{
		Use:   "add <type> <json>",
		Short: "Add a new record",
		Long: `Add writes a new record file. The reference comes from --ref, from
--generate-ref (a UUID v7), or from the record's reference field.`,
		Example: `  datastore add Type1 '{"ref":"X","name":"Type_X"}'
  datastore add Type1 '{"name":"Unnamed"}' --generate-ref`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if generate {
				if ref != "" {
					return fmt.Errorf("%w: --ref and --generate-ref are exclusive", errUsage)
				}
				ref = uuid.Must(uuid.NewV7()).String()
			}
			return a.runMutation(cmd, "Added", args, refCriteria(ref), types.Collection.Add)
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "reference to store the record under")
	cmd.Flags().BoolVar(&generate, "generate-ref", false, "store the record under a new UUID v7")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:     "update <type> <json>",
		Short:   "Replace an existing record",
		Example: `  datastore update Type1 '{"ref":"X","name":"UPDATED"}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMutation(cmd, "Updated", args, refCriteria(ref), types.Collection.Update)
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "", "reference of the record to replace")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <type> <ref>",
		Short: "Remove a record by reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := a.collection(args[0])
			if err != nil {
				return err
			}
			ref, err := coll.Delete(types.Document{}, refCriteria(args[1]))
			if err != nil {
				return err
			}
			return a.reportMutation(cmd, "Deleted", coll.Type(), ref)
		},
	}
}
