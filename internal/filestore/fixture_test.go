package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simonemmott/datastore/pkg/schema"
	"github.com/simonemmott/datastore/pkg/types"
)

// item is the record type used by the fixture collections.
type item struct {
	Ref         string `json:"ref"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

const (
	type1Schema = "testing.reference_types.Type1"
	type2Schema = "testing.reference_types.Type2"
)

// testRegistry registers the fixture schemas.
func testRegistry() *schema.Registry {
	return schema.NewRegistry().MustRegister(
		schema.NewStruct[item](type1Schema, "ref", "ref", "name"),
		schema.NewStruct[item](type2Schema, "ref", "ref", "name"),
	)
}

// writeJSON writes v as JSON to root/rel, creating parent directories.
func writeJSON(t *testing.T, root, rel string, v any) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// setupRoot builds the reference_types tree: Type1 and Type2 collections,
// an excluded _archive directory, a directory without a descriptor and a
// stray file at the root.
func setupRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeJSON(t, root, "Type1/__meta__.json", map[string]string{"name": type1Schema})
	writeJSON(t, root, "Type1/1.json", item{Ref: "1", Name: "Item_1", Description: "Item 1"})
	writeJSON(t, root, "Type1/2.json", item{Ref: "2", Name: "Item_2", Description: "Item 2"})
	writeJSON(t, root, "Type1/3.json", item{Ref: "3", Name: "Item_3", Description: "Item 2"})

	writeJSON(t, root, "Type2/__meta__.json", map[string]string{"name": type2Schema, "ref_type": "Type2"})
	writeJSON(t, root, "Type2/A.json", item{Ref: "A", Name: "Item_A", Description: "Item A"})

	writeJSON(t, root, "_archive/__meta__.json", map[string]string{"name": type1Schema})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scratch"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("not a collection"), 0o644))
	return root
}

// openStore opens root with the fixture registry or fails the test.
func openStore(t *testing.T, root string) *Store {
	t.Helper()
	s, err := Open(types.Config{Root: root}, testRegistry())
	require.NoError(t, err)
	return s
}

// mustRecords returns the concrete collection for typeName.
func mustRecords(t *testing.T, s *Store, typeName string) *Collection {
	t.Helper()
	c, err := s.Records(typeName)
	require.NoError(t, err)
	return c
}
