package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Descriptor
		want string
	}{
		{
			name: "derives type-name from last segment",
			in:   Descriptor{Name: "testing.reference_types.Type1"},
			want: "Type1",
		},
		{
			name: "undotted name is its own type-name",
			in:   Descriptor{Name: "Widget"},
			want: "Widget",
		},
		{
			name: "explicit ref_type wins",
			in:   Descriptor{Name: "testing.reference_types.Type1", RefType: "Items"},
			want: "Items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.in
			d.Normalize()
			assert.Equal(t, tt.want, d.RefType)
			assert.NoError(t, d.Validate())
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name string
		in   Descriptor
	}{
		{name: "missing name", in: Descriptor{}},
		{name: "trailing dot leaves no type-name", in: Descriptor{Name: "pkg."}},
		{name: "reserved type-name", in: Descriptor{Name: "pkg._Hidden"}},
		{name: "type-name with a path separator", in: Descriptor{Name: "pkg.Type", RefType: "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.in
			d.Normalize()
			assert.ErrorIs(t, d.Validate(), ErrInvalidDescriptor)
		})
	}
}
