package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/simonemmott/datastore/internal/export"
	"github.com/simonemmott/datastore/pkg/datastore"
	"github.com/simonemmott/datastore/pkg/schema"
	"github.com/simonemmott/datastore/pkg/types"
)

// widget is a record type with an integer field so matching crosses the
// JSON number boundary.
type widget struct {
	Ref   string `json:"ref"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

const widgetSchema = "inventory.parts.Widget"

func widgetRegistry() *schema.Registry {
	return schema.NewRegistry().MustRegister(
		schema.NewStruct[widget](widgetSchema, "ref", "ref", "name"),
	)
}

// newWidgetRoot creates a root holding an empty Widget collection.
func newWidgetRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "Widget")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	meta, err := json.Marshal(types.Descriptor{Name: widgetSchema})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, types.DescriptorFile), meta, 0o644))
	return root
}

func openWidgets(t *testing.T, root string) types.Collection {
	t.Helper()
	store, err := datastore.Open(types.Config{Root: root}, widgetRegistry())
	require.NoError(t, err)
	coll, err := store.Collection("Widget")
	require.NoError(t, err)
	return coll
}

func TestStoreLifecycleSurvivesReopen(t *testing.T) {
	root := newWidgetRoot(t)

	widgets := openWidgets(t, root)
	for _, w := range []*widget{
		{Ref: "bolt", Name: "Bolt", Count: 10},
		{Ref: "nut", Name: "Nut", Count: 10},
		{Ref: "gear", Name: "Gear", Count: 2},
	} {
		_, err := widgets.Add(w, nil)
		require.NoError(t, err)
	}
	_, err := widgets.Update(&widget{Ref: "gear", Name: "Gear", Count: 3}, nil)
	require.NoError(t, err)
	_, err = widgets.Delete(nil, types.Criteria{types.RefKey: "nut"})
	require.NoError(t, err)

	reopened := openWidgets(t, root)
	assert.Equal(t, []string{"bolt", "gear"}, reopened.Refs())

	got, err := reopened.Get("gear")
	require.NoError(t, err)
	assert.Equal(t, &widget{Ref: "gear", Name: "Gear", Count: 3}, got)

	tens, err := reopened.Filter(types.Criteria{"count": 10})
	require.NoError(t, err)
	assert.Equal(t, []any{&widget{Ref: "bolt", Name: "Bolt", Count: 10}}, tens)

	_, err = reopened.Get("nut")
	assert.ErrorIs(t, err, types.ErrDoesNotExist)
}

func TestStoreExportToSQLite(t *testing.T) {
	root := newWidgetRoot(t)
	widgets := openWidgets(t, root)
	_, err := widgets.Add(&widget{Ref: "bolt", Name: "Bolt", Count: 10}, nil)
	require.NoError(t, err)

	store, err := datastore.Open(types.Config{Root: root}, widgetRegistry())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.db")
	sum, err := export.ToSQLite(context.Background(), store, path)
	require.NoError(t, err)
	assert.Equal(t, export.Summary{Types: 1, Records: 1}, sum)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var schemaName string
	require.NoError(t, db.QueryRow("SELECT schema_name FROM types WHERE type_name = ?", "Widget").Scan(&schemaName))
	assert.Equal(t, widgetSchema, schemaName)

	var document string
	require.NoError(t, db.QueryRow("SELECT document FROM records WHERE type_name = ? AND ref = ?", "Widget", "bolt").Scan(&document))
	assert.JSONEq(t, `{"ref":"bolt","name":"Bolt","count":10}`, document)
}
