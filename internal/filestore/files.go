package filestore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonemmott/datastore/pkg/types"
)

// recordPath returns the file backing ref inside dir.
func recordPath(dir, ref string) string {
	return filepath.Join(dir, ref+types.RecordExt)
}

// refFromFilename returns the reference named by a record file, or false for
// reserved names and non-record files.
func refFromFilename(name string) (string, bool) {
	if strings.HasPrefix(name, types.ReservedPrefix) || !strings.HasSuffix(name, types.RecordExt) {
		return "", false
	}
	ref := strings.TrimSuffix(name, types.RecordExt)
	if validateRef(ref) != nil {
		return "", false
	}
	return ref, true
}

// readDocument reads a file holding a single JSON object.
func readDocument(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// decodeDocument parses a JSON object. A null or non-object value is an error.
func decodeDocument(data []byte) (types.Document, error) {
	var doc types.Document
	if err := types.UnmarshalJSON(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document is null")
	}
	return doc, nil
}

// writeDocument atomically replaces path with data using the temp-file,
// fsync, rename pattern. The temp file carries the reserved prefix so a
// leftover is never scanned as a record.
func writeDocument(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, types.ReservedPrefix+"write-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing record: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
