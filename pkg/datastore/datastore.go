// Package datastore is the public entry point for opening a file-backed
// store. It exposes the constructor while keeping the implementation
// internal.
//
// Example:
//
//	reg := schema.NewRegistry().MustRegister(
//	    schema.NewStruct[Widget]("inventory.Widget", "ref", "ref", "name"),
//	)
//	store, err := datastore.Open(types.Config{Root: "data"}, reg)
//	if err != nil {
//	    return err
//	}
//	widgets, err := store.Collection("Widget")
package datastore

import (
	"go.uber.org/zap"

	"github.com/simonemmott/datastore/internal/filestore"
	"github.com/simonemmott/datastore/pkg/types"
)

// Option configures Open.
type Option = filestore.Option

// WithLogger sets the logger used by the store. The default discards logs.
func WithLogger(log *zap.Logger) Option {
	return filestore.WithLogger(log)
}

// Open scans config.Root and returns a fully loaded store. Schema names in
// descriptor files are resolved through resolver, typically a
// *schema.Registry populated before the call.
func Open(config types.Config, resolver types.Resolver, opts ...Option) (types.Store, error) {
	s, err := filestore.Open(config, resolver, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}
