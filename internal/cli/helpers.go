package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/simonemmott/datastore/internal/paths"
	"github.com/simonemmott/datastore/pkg/datastore"
	"github.com/simonemmott/datastore/pkg/schema"
	"github.com/simonemmott/datastore/pkg/types"
)

// resolveRoot returns the store root following the precedence
// --root flag > config.yaml root > DATASTORE_ROOT env > $(CWD)/data.
func (a *app) resolveRoot() (string, error) {
	return paths.ResolveRoot(a.root, a.cfg.GetString(cfgKeyRoot))
}

// openStore opens the store at the resolved root. The CLI has no compiled-in
// schemas, so every descriptor is served as raw documents referenced by the
// configured ref_field.
func (a *app) openStore() (types.Store, error) {
	root, err := a.resolveRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	reg := schema.NewRegistry()
	reg.SetFallback(schema.DocumentsFallback(a.cfg.GetString(cfgKeyRefField)))

	cfg := types.Config{
		Root:      root,
		OnInvalid: a.cfg.GetString(cfgKeyOnInvalid),
	}
	return datastore.Open(cfg, reg, datastore.WithLogger(a.log))
}

// collection opens the store and returns the collection for typeName.
func (a *app) collection(typeName string) (types.Collection, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return store.Collection(typeName)
}

// parseCriteria parses key=value arguments. Values that are valid JSON are
// decoded; anything else is taken as a raw string.
func parseCriteria(args []string) (types.Criteria, error) {
	criteria := types.Criteria{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid filter %q (expected key=value)", errUsage, arg)
		}
		var parsed any
		if err := types.UnmarshalJSON([]byte(value), &parsed); err != nil {
			parsed = value
		}
		criteria[key] = parsed
	}
	return criteria, nil
}

// parseDocument parses a JSON object argument.
func parseDocument(arg string) (types.Document, error) {
	var doc types.Document
	if err := types.UnmarshalJSON([]byte(arg), &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: record must be a JSON object", errUsage)
	}
	return doc, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
