package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonemmott/datastore/pkg/types"
)

type item struct {
	Ref         string `json:"ref"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	s := NewStruct[item]("testing.reference_types.Type1", "ref")
	require.NoError(t, r.Register(s))

	t.Run("resolves registered name", func(t *testing.T) {
		got, err := r.Resolve("testing.reference_types.Type1")
		require.NoError(t, err)
		assert.Same(t, s, got)
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		err := r.Register(NewStruct[item]("testing.reference_types.Type1", "ref"))
		assert.ErrorIs(t, err, ErrDuplicateSchema)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := r.Resolve("testing.reference_types.Missing")
		assert.ErrorIs(t, err, types.ErrSchemaNotFound)
	})

	t.Run("fallback serves unknown names", func(t *testing.T) {
		r.SetFallback(DocumentsFallback("id"))
		got, err := r.Resolve("anything.Else")
		require.NoError(t, err)
		assert.Equal(t, "anything.Else", got.Name())
		assert.Equal(t, "id", got.ReferenceField())
	})

	assert.Equal(t, []string{"testing.reference_types.Type1"}, r.Names())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry().MustRegister(NewDocuments("a", ""), NewDocuments("a", ""))
	})
}

func TestStructRoundTrip(t *testing.T) {
	s := NewStruct[item]("Type1", "ref", "ref", "name")

	doc, err := s.Encode(&item{Ref: "1", Name: "Item_1", Description: "Item 1"})
	require.NoError(t, err)
	assert.Equal(t, types.Document{"ref": "1", "name": "Item_1", "description": "Item 1"}, doc)

	rec, err := s.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, &item{Ref: "1", Name: "Item_1", Description: "Item 1"}, rec)

	byValue, err := s.Encode(item{Ref: "2", Name: "Item_2"})
	require.NoError(t, err)
	assert.Equal(t, types.Document{"ref": "2", "name": "Item_2"}, byValue)
}

func TestStructRejects(t *testing.T) {
	s := NewStruct[item]("Type1", "ref", "ref", "name")

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "wrong record type",
			run: func() error {
				_, err := s.Encode(types.Document{"ref": "1"})
				return err
			},
		},
		{
			name: "nil pointer",
			run: func() error {
				_, err := s.Encode((*item)(nil))
				return err
			},
		},
		{
			name: "missing required field on encode",
			run: func() error {
				_, err := s.Encode(&item{Ref: "1"})
				return err
			},
		},
		{
			name: "missing required field on decode",
			run: func() error {
				_, err := s.Decode(types.Document{"name": "x"})
				return err
			},
		},
		{
			name: "mistyped field on decode",
			run: func() error {
				_, err := s.Decode(types.Document{"ref": "1", "name": 5})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), types.ErrInvalidRecord)
		})
	}
}

func TestDocuments(t *testing.T) {
	d := NewDocuments("Raw", "id")

	doc := types.Document{"id": "a", "n": 1.0}
	got, err := d.Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	rec, err := d.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, rec)

	_, err = d.Encode("not a document")
	assert.ErrorIs(t, err, types.ErrInvalidRecord)
}
