// Package types defines the Store and Collection interfaces, the record
// Schema capability, the directory Descriptor, and the standard errors for
// the datastore.
package types
