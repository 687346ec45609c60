package schema

import (
	"fmt"

	"github.com/simonemmott/datastore/pkg/types"
)

// Documents is a schema whose records are plain documents. It performs no
// validation beyond the record being a document.
type Documents struct {
	name     string
	refField string
}

// NewDocuments returns a document schema. refField names the document field
// holding a record's reference ("" for none).
func NewDocuments(name, refField string) *Documents {
	return &Documents{name: name, refField: refField}
}

func (d *Documents) Name() string           { return d.name }
func (d *Documents) ReferenceField() string { return d.refField }

func (d *Documents) Encode(record any) (types.Document, error) {
	doc, ok := record.(types.Document)
	if !ok || doc == nil {
		return nil, fmt.Errorf("%w: %s expects a document, got %T", types.ErrInvalidRecord, d.name, record)
	}
	return doc, nil
}

func (d *Documents) Decode(doc types.Document) (any, error) {
	return doc, nil
}

// DocumentsFallback returns a Registry fallback serving every unregistered
// schema name as raw documents referenced by refField.
func DocumentsFallback(refField string) func(name string) types.Schema {
	return func(name string) types.Schema {
		return NewDocuments(name, refField)
	}
}
