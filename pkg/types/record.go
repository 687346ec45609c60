package types

// Document is the structured form of a record as stored in its JSON file.
type Document = map[string]any

// Criteria is a set of key/value pairs a document must contain to match.
// For Add, Update and Delete the RefKey entry, when present, names the
// record explicitly instead of its schema's reference field.
type Criteria map[string]any

// RefKey is the criteria key that overrides a record's own reference.
const RefKey = "ref"

// Schema is the capability a record kind provides to the store. It converts
// records to and from their stored document form and names the document
// field, if any, that carries a record's reference.
type Schema interface {
	// Name returns the fully-qualified schema name that descriptors refer to.
	Name() string

	// ReferenceField returns the document field holding the record's
	// reference, or "" when records do not carry their own reference.
	ReferenceField() string

	// Encode converts a record into its document form.
	Encode(record any) (Document, error)

	// Decode builds a record from its document form.
	Decode(doc Document) (any, error)
}

// Resolver maps a schema name from a descriptor to its Schema.
type Resolver interface {
	Resolve(name string) (Schema, error)
}
