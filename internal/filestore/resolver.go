package filestore

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/simonemmott/datastore/pkg/types"
)

// resolveRef derives the reference naming record. An explicit RefKey entry
// in criteria wins; otherwise the schema's reference field is read from the
// record's document form.
func resolveRef(schema types.Schema, record any, criteria types.Criteria) (string, error) {
	if v, ok := criteria[types.RefKey]; ok {
		return toRef(v)
	}

	field := schema.ReferenceField()
	if field == "" {
		return "", fmt.Errorf("%w: %s declares no reference field and none was given", types.ErrMissingReference, schema.Name())
	}
	doc, err := schema.Encode(record)
	if err != nil {
		return "", err
	}
	v, ok := doc[field]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s record has no %q", types.ErrMissingReference, schema.Name(), field)
	}
	return toRef(v)
}

// toRef coerces a reference value to its string form.
func toRef(v any) (string, error) {
	ref, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidReference, err)
	}
	if err := validateRef(ref); err != nil {
		return "", err
	}
	return ref, nil
}

// validateRef rejects references that cannot name a record file in the
// collection directory. References are otherwise used verbatim.
func validateRef(ref string) error {
	switch {
	case ref == "", ref == ".", ref == "..":
		return fmt.Errorf("%w: %q", types.ErrInvalidReference, ref)
	case strings.ContainsAny(ref, `/\`), strings.ContainsRune(ref, 0):
		return fmt.Errorf("%w: %q contains a path separator", types.ErrInvalidReference, ref)
	case strings.HasPrefix(ref, types.ReservedPrefix):
		return fmt.Errorf("%w: %q uses the reserved prefix %q", types.ErrInvalidReference, ref, types.ReservedPrefix)
	}
	return nil
}
