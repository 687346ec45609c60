package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Store errors.
var (
	ErrRootNotFound      = errors.New("root not found")
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	ErrNotAManagedType   = errors.New("not a managed type")
	ErrSchemaNotFound    = errors.New("schema not found")
)

// Collection errors.
var (
	ErrDoesNotExist       = errors.New("does not exist")
	ErrDuplicateReference = errors.New("duplicate reference")
	ErrMissingReference   = errors.New("missing reference")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrEmptyCriteria      = errors.New("criteria must not be empty")
	ErrInvalidRecord      = errors.New("invalid record")
)

// RecordError reports a collection failure for one record kind. Kind is one
// of the collection sentinels above; exactly one of Ref or Criteria is set
// depending on how the caller addressed the record.
type RecordError struct {
	Kind     error
	Type     string
	Ref      string
	Criteria Criteria
}

// NotFound returns a DoesNotExist error for a reference lookup.
func NotFound(typeName, ref string) *RecordError {
	return &RecordError{Kind: ErrDoesNotExist, Type: typeName, Ref: ref}
}

// NotMatched returns a DoesNotExist error for a criteria lookup.
func NotMatched(typeName string, criteria Criteria) *RecordError {
	return &RecordError{Kind: ErrDoesNotExist, Type: typeName, Criteria: criteria}
}

// Duplicate returns a DuplicateReference error.
func Duplicate(typeName, ref string) *RecordError {
	return &RecordError{Kind: ErrDuplicateReference, Type: typeName, Ref: ref}
}

func (e *RecordError) Error() string {
	if e.Criteria != nil {
		return fmt.Sprintf("%s %s: criteria %s", e.Type, e.Kind, e.Criteria)
	}
	return fmt.Sprintf("%s %s: ref %q", e.Type, e.Kind, e.Ref)
}

func (e *RecordError) Unwrap() error { return e.Kind }

// TypeError reports a request for a type-name the Store does not manage.
type TypeError struct {
	Type string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s is %s", e.Type, ErrNotAManagedType)
}

func (e *TypeError) Unwrap() error { return ErrNotAManagedType }

// String renders criteria with sorted keys so messages are stable.
func (c Criteria) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, c[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
