package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/simonemmott/datastore/pkg/types"
)

// entry is a cached record together with the document its file holds.
type entry struct {
	record any
	doc    types.Document
}

// Collection implements types.Collection over one managed sub-directory,
// one JSON file per record. The cache always mirrors the last successful
// file operation: writes and removals happen before the cache changes.
type Collection struct {
	desc   types.Descriptor
	schema types.Schema
	dir    string
	log    *zap.Logger

	records map[string]*entry
	order   []string // Cache order: scan order, then additions.
}

// newCollection builds a collection for dir and loads every record file.
func newCollection(dir string, desc types.Descriptor, schema types.Schema, log *zap.Logger) (*Collection, error) {
	c := &Collection{
		desc:    desc,
		schema:  schema,
		dir:     dir,
		log:     log.With(zap.String("type", desc.RefType)),
		records: make(map[string]*entry),
	}
	if err := c.scan(); err != nil {
		return nil, err
	}
	return c, nil
}

// scan indexes each record file under its filename stem.
func (c *Collection) scan() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", c.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ref, ok := refFromFilename(e.Name())
		if !ok {
			if e.Name() != types.DescriptorFile {
				c.log.Debug("ignoring file", zap.String("file", e.Name()))
			}
			continue
		}
		doc, err := readDocument(filepath.Join(c.dir, e.Name()))
		if err != nil {
			return err
		}
		record, err := c.schema.Decode(doc)
		if err != nil {
			return fmt.Errorf("loading %s/%s: %w", c.desc.RefType, ref, err)
		}
		c.insert(ref, &entry{record: record, doc: doc})
	}
	c.log.Debug("collection loaded", zap.Int("records", len(c.order)))
	return nil
}

func (c *Collection) insert(ref string, e *entry) {
	if _, ok := c.records[ref]; !ok {
		c.order = append(c.order, ref)
	}
	c.records[ref] = e
}

func (c *Collection) remove(ref string) {
	delete(c.records, ref)
	if i := slices.Index(c.order, ref); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// Type returns the collection's type-name.
func (c *Collection) Type() string { return c.desc.RefType }

// Descriptor returns the descriptor governing the collection.
func (c *Collection) Descriptor() types.Descriptor { return c.desc }

// Dir returns the collection's directory.
func (c *Collection) Dir() string { return c.dir }

// Len returns the number of cached records.
func (c *Collection) Len() int { return len(c.order) }

// Refs returns the cached references in cache order.
func (c *Collection) Refs() []string { return slices.Clone(c.order) }

// Get returns the record cached under ref.
func (c *Collection) Get(ref string) (any, error) {
	e, ok := c.records[ref]
	if !ok {
		return nil, types.NotFound(c.desc.RefType, ref)
	}
	return e.record, nil
}

// Document returns a copy of the stored document for ref.
func (c *Collection) Document(ref string) (types.Document, error) {
	e, ok := c.records[ref]
	if !ok {
		return nil, types.NotFound(c.desc.RefType, ref)
	}
	return maps.Clone(e.doc), nil
}

// Find returns the first record in cache order whose document matches
// criteria. Unlike Filter, empty criteria is a caller error.
func (c *Collection) Find(criteria types.Criteria) (any, error) {
	if len(criteria) == 0 {
		return nil, types.ErrEmptyCriteria
	}
	want, err := canonicalCriteria(criteria)
	if err != nil {
		return nil, err
	}
	for _, ref := range c.order {
		if e := c.records[ref]; matches(e.doc, want) {
			return e.record, nil
		}
	}
	return nil, types.NotMatched(c.desc.RefType, criteria)
}

// Filter returns every record whose document matches criteria, in cache
// order. Empty criteria returns every record.
func (c *Collection) Filter(criteria types.Criteria) ([]any, error) {
	want, err := canonicalCriteria(criteria)
	if err != nil {
		return nil, err
	}
	result := []any{}
	for _, ref := range c.order {
		if e := c.records[ref]; matches(e.doc, want) {
			result = append(result, e.record)
		}
	}
	return result, nil
}

// Add writes record to a new file and caches it. It returns the reference
// used.
func (c *Collection) Add(record any, criteria types.Criteria) (string, error) {
	ref, err := resolveRef(c.schema, record, criteria)
	if err != nil {
		return "", err
	}
	if _, ok := c.records[ref]; ok {
		return "", types.Duplicate(c.desc.RefType, ref)
	}
	e, err := c.write(ref, record)
	if err != nil {
		return "", err
	}
	c.insert(ref, e)
	c.log.Debug("record added", zap.String("ref", ref))
	return ref, nil
}

// Update overwrites the file of an existing record and replaces its cache
// entry. It returns the reference used.
func (c *Collection) Update(record any, criteria types.Criteria) (string, error) {
	ref, err := resolveRef(c.schema, record, criteria)
	if err != nil {
		return "", err
	}
	if _, ok := c.records[ref]; !ok {
		return "", types.NotFound(c.desc.RefType, ref)
	}
	e, err := c.write(ref, record)
	if err != nil {
		return "", err
	}
	c.insert(ref, e)
	c.log.Debug("record updated", zap.String("ref", ref))
	return ref, nil
}

// Delete removes the file of an existing record, then its cache entry. It
// returns the reference used.
func (c *Collection) Delete(record any, criteria types.Criteria) (string, error) {
	ref, err := resolveRef(c.schema, record, criteria)
	if err != nil {
		return "", err
	}
	if _, ok := c.records[ref]; !ok {
		return "", types.NotFound(c.desc.RefType, ref)
	}
	if err := os.Remove(recordPath(c.dir, ref)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("removing %s/%s: %w", c.desc.RefType, ref, err)
	}
	c.remove(ref)
	c.log.Debug("record deleted", zap.String("ref", ref))
	return ref, nil
}

// write encodes record and persists it as ref's file. The returned entry
// holds the document as it will decode from disk.
func (c *Collection) write(ref string, record any) (*entry, error) {
	doc, err := c.schema.Encode(record)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s/%s: %v", types.ErrInvalidRecord, c.desc.RefType, ref, err)
	}
	stored, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", types.ErrInvalidRecord, c.desc.RefType, ref, err)
	}
	if err := writeDocument(recordPath(c.dir, ref), data); err != nil {
		return nil, fmt.Errorf("writing %s/%s: %w", c.desc.RefType, ref, err)
	}
	return &entry{record: record, doc: stored}, nil
}
