// Package filestore implements the datastore on a directory tree: one
// sub-directory per record type, declared by its __meta__.json descriptor,
// holding one JSON file per record.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/simonemmott/datastore/pkg/types"
)

// Store implements types.Store. Every collection is loaded into memory when
// the store is opened; there is no reload.
type Store struct {
	config   types.Config
	resolver types.Resolver
	log      *zap.Logger

	descriptors map[string]types.Descriptor
	collections map[string]*Collection
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for scan and mutation events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open scans config.Root and loads every managed sub-directory, resolving
// descriptor schema names through resolver.
// Returns an error wrapping ErrRootNotFound if the root is missing or is not
// a directory.
func Open(config types.Config, resolver types.Resolver, opts ...Option) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Store{
		config:      config,
		resolver:    resolver,
		log:         zap.NewNop(),
		descriptors: make(map[string]types.Descriptor),
		collections: make(map[string]*Collection),
	}
	for _, opt := range opts {
		opt(s)
	}

	info, err := os.Stat(config.Root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", types.ErrRootNotFound, config.Root)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRootNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrRootNotFound, config.Root)
	}

	if err := s.scan(); err != nil {
		return nil, err
	}
	s.log.Debug("store opened", zap.String("root", config.Root), zap.Strings("types", s.Types()))
	return s, nil
}

// scan loads each immediate sub-directory that carries a descriptor.
// Directories with the reserved prefix are skipped.
func (s *Store) scan() error {
	entries, err := os.ReadDir(s.config.Root)
	if err != nil {
		return fmt.Errorf("listing %s: %w", s.config.Root, err)
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, types.ReservedPrefix) {
			continue
		}
		dir := filepath.Join(s.config.Root, name)
		if !isDir(dir, e) {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, types.DescriptorFile)); errors.Is(err, os.ErrNotExist) {
			s.log.Debug("directory has no descriptor", zap.String("dir", name))
			continue
		}
		if err := s.load(dir); err != nil {
			if s.config.SkipInvalid() {
				s.log.Warn("skipping collection", zap.String("dir", name), zap.Error(err))
				continue
			}
			return err
		}
	}
	return nil
}

// isDir reports whether e is a directory, following a symlink to its target.
func isDir(path string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// load reads dir's descriptor, resolves its schema and builds the collection.
func (s *Store) load(dir string) error {
	desc, err := readDescriptor(filepath.Join(dir, types.DescriptorFile))
	if err != nil {
		return err
	}
	if _, ok := s.descriptors[desc.RefType]; ok {
		return fmt.Errorf("%w: %s: type-name %q is already managed", types.ErrInvalidDescriptor, dir, desc.RefType)
	}
	schema, err := s.resolver.Resolve(desc.Name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", types.ErrInvalidDescriptor, dir, err)
	}
	coll, err := newCollection(dir, desc, schema, s.log)
	if err != nil {
		return err
	}
	s.descriptors[desc.RefType] = desc
	s.collections[desc.RefType] = coll
	return nil
}

// readDescriptor parses and validates a __meta__.json file.
func readDescriptor(path string) (types.Descriptor, error) {
	var desc types.Descriptor
	data, err := os.ReadFile(path)
	if err != nil {
		return desc, fmt.Errorf("%w: %v", types.ErrInvalidDescriptor, err)
	}
	if err := json.Unmarshal(data, &desc); err != nil {
		return desc, fmt.Errorf("%w: %s: %v", types.ErrInvalidDescriptor, path, err)
	}
	desc.Normalize()
	if err := desc.Validate(); err != nil {
		return desc, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Root returns the directory the store was opened on.
func (s *Store) Root() string { return s.config.Root }

// Types returns the managed type-names in sorted order.
func (s *Store) Types() []string {
	names := make([]string, 0, len(s.descriptors))
	for name := range s.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptor returns the descriptor for typeName.
func (s *Store) Descriptor(typeName string) (types.Descriptor, error) {
	desc, ok := s.descriptors[typeName]
	if !ok {
		return types.Descriptor{}, &types.TypeError{Type: typeName}
	}
	return desc, nil
}

// Collection returns the collection for typeName.
func (s *Store) Collection(typeName string) (types.Collection, error) {
	coll, err := s.Records(typeName)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

// Records returns the concrete collection for typeName.
func (s *Store) Records(typeName string) (*Collection, error) {
	coll, ok := s.collections[typeName]
	if !ok {
		return nil, &types.TypeError{Type: typeName}
	}
	return coll, nil
}
