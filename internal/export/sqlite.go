package export

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/simonemmott/datastore/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Summary counts what an export wrote.
type Summary struct {
	Types   int `json:"types"`
	Records int `json:"records"`
}

// ToSQLite writes every collection of store into a new SQLite database at
// path, replacing any existing file. Record documents are stored as JSON
// text, so they can be queried with SQLite's json functions. The export
// runs in a single transaction.
func ToSQLite(ctx context.Context, store types.Store, path string) (Summary, error) {
	var sum Summary
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return sum, fmt.Errorf("removing %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return sum, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return sum, fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return sum, fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	typeStmt, err := tx.PrepareContext(ctx, "INSERT INTO types (type_name, schema_name) VALUES (?, ?)")
	if err != nil {
		return sum, fmt.Errorf("preparing types insert: %w", err)
	}
	defer typeStmt.Close()

	recStmt, err := tx.PrepareContext(ctx, "INSERT INTO records (type_name, ref, document) VALUES (?, ?, ?)")
	if err != nil {
		return sum, fmt.Errorf("preparing records insert: %w", err)
	}
	defer recStmt.Close()

	for _, name := range store.Types() {
		desc, err := store.Descriptor(name)
		if err != nil {
			return sum, err
		}
		coll, err := store.Collection(name)
		if err != nil {
			return sum, err
		}
		if _, err := typeStmt.ExecContext(ctx, desc.RefType, desc.Name); err != nil {
			return sum, fmt.Errorf("inserting type %s: %w", name, err)
		}
		sum.Types++

		for _, ref := range coll.Refs() {
			doc, err := coll.Document(ref)
			if err != nil {
				return sum, err
			}
			data, err := json.Marshal(doc)
			if err != nil {
				return sum, fmt.Errorf("encoding %s/%s: %w", name, ref, err)
			}
			if _, err := recStmt.ExecContext(ctx, name, ref, string(data)); err != nil {
				return sum, fmt.Errorf("inserting %s/%s: %w", name, ref, err)
			}
			sum.Records++
		}
	}

	if err := tx.Commit(); err != nil {
		return sum, fmt.Errorf("committing export transaction: %w", err)
	}
	return sum, nil
}
