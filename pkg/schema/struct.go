package schema

import (
	"encoding/json"
	"fmt"

	"github.com/simonemmott/datastore/pkg/types"
)

// Struct is a schema for records of Go struct type T. Documents are the
// struct's JSON encoding, so field names follow its json tags. Records are
// decoded as *T; Encode accepts *T or T.
type Struct[T any] struct {
	name     string
	refField string
	required []string
}

// NewStruct returns a schema named name whose records carry their reference
// in the document field refField ("" for none). Required names document
// fields that must be present and non-empty on both encode and decode.
func NewStruct[T any](name, refField string, required ...string) *Struct[T] {
	return &Struct[T]{name: name, refField: refField, required: required}
}

func (s *Struct[T]) Name() string           { return s.name }
func (s *Struct[T]) ReferenceField() string { return s.refField }

// Encode converts a *T or T into its document form.
func (s *Struct[T]) Encode(record any) (types.Document, error) {
	var v *T
	switch r := record.(type) {
	case *T:
		v = r
	case T:
		v = &r
	default:
		return nil, fmt.Errorf("%w: %s expects %T, got %T", types.ErrInvalidRecord, s.name, v, record)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s record is nil", types.ErrInvalidRecord, s.name)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", s.name, err)
	}
	var doc types.Document
	if err := types.UnmarshalJSON(data, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: %s does not encode to a JSON object", types.ErrInvalidRecord, s.name)
	}
	if err := checkRequired(s.name, doc, s.required); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode builds a *T from a document.
func (s *Struct[T]) Decode(doc types.Document) (any, error) {
	if err := checkRequired(s.name, doc, s.required); err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.name, err)
	}
	v := new(T)
	if err := types.UnmarshalJSON(data, v); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", types.ErrInvalidRecord, s.name, err)
	}
	return v, nil
}

// checkRequired verifies that each required field is present, non-null and,
// for strings, non-empty.
func checkRequired(name string, doc types.Document, required []string) error {
	for _, field := range required {
		v, ok := doc[field]
		if !ok || v == nil || v == "" {
			return fmt.Errorf("%w: %s requires field %q", types.ErrInvalidRecord, name, field)
		}
	}
	return nil
}
