package types

import (
	"fmt"
	"strings"
)

// Names reserved inside a managed directory.
const (
	DescriptorFile = "__meta__.json"
	RecordExt      = ".json"
	ReservedPrefix = "_"
)

// Descriptor declares which schema governs a managed sub-directory. It is
// read from the directory's __meta__.json file.
type Descriptor struct {
	Name    string `json:"name"`
	RefType string `json:"ref_type,omitempty"`
}

// Normalize fills RefType from the last dot-separated segment of Name when
// the descriptor file leaves it out.
func (d *Descriptor) Normalize() {
	if d.RefType == "" {
		d.RefType = d.Name[strings.LastIndex(d.Name, ".")+1:]
	}
}

// Validate checks that the descriptor names a schema and resolves to a
// usable type-name.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDescriptor)
	}
	if d.RefType == "" || strings.HasPrefix(d.RefType, ReservedPrefix) || strings.ContainsAny(d.RefType, `/\`) {
		return fmt.Errorf("%w: type-name %q", ErrInvalidDescriptor, d.RefType)
	}
	return nil
}
