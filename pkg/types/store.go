package types

// Store is the root aggregate over a directory tree of typed collections.
// The set of types is fixed when the Store is opened; open a new Store to
// observe changes made to the tree by other processes.
type Store interface {
	// Root returns the directory the Store was opened on.
	Root() string

	// Types returns the managed type-names in sorted order.
	Types() []string

	// Descriptor returns the descriptor for a type-name.
	// Returns a TypeError wrapping ErrNotAManagedType if the type is unknown.
	Descriptor(typeName string) (Descriptor, error)

	// Collection returns the collection for a type-name.
	// Returns a TypeError wrapping ErrNotAManagedType if the type is unknown.
	Collection(typeName string) (Collection, error)
}

// Collection manages the records of one type. Every mutation is persisted to
// the record's own file before the in-memory cache reflects it.
// Collections are not safe for concurrent use.
type Collection interface {
	// Type returns the collection's type-name.
	Type() string

	// Get returns the record with the given reference.
	// Returns a RecordError wrapping ErrDoesNotExist if there is none.
	Get(ref string) (any, error)

	// Document returns a copy of the stored document for ref.
	// Returns a RecordError wrapping ErrDoesNotExist if there is none.
	Document(ref string) (Document, error)

	// Find returns the first record whose document matches criteria.
	// Returns ErrEmptyCriteria for empty criteria and a RecordError
	// wrapping ErrDoesNotExist if nothing matches.
	Find(criteria Criteria) (any, error)

	// Add writes a new record. Returns a RecordError wrapping
	// ErrDuplicateReference if the reference is already in use.
	Add(record any, criteria Criteria) (string, error)

	// Update overwrites an existing record. Returns a RecordError wrapping
	// ErrDoesNotExist if the reference is unknown.
	Update(record any, criteria Criteria) (string, error)

	// Delete removes a record and its file. Returns a RecordError wrapping
	// ErrDoesNotExist if the reference is unknown.
	Delete(record any, criteria Criteria) (string, error)

	// Filter returns every record whose document matches criteria. Empty
	// criteria returns every record.
	Filter(criteria Criteria) ([]any, error)

	// Refs returns the cached references in cache order.
	Refs() []string

	// Len returns the number of cached records.
	Len() int
}
