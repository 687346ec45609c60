// Package export writes snapshots of an opened store to other formats: a
// SQLite database for ad hoc querying and JSON Lines streams.
package export
