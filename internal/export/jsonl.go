package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"

	"github.com/simonemmott/datastore/pkg/types"
)

// RefField is the key under which a JSONL line carries its record's
// reference. The reserved prefix keeps it clear of schema fields.
const RefField = "_ref"

// WriteJSONL writes one JSON object per line for every record in coll, in
// cache order. It returns the number of lines written.
func WriteJSONL(w io.Writer, coll types.Collection) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, ref := range coll.Refs() {
		doc, err := coll.Document(ref)
		if err != nil {
			return n, err
		}
		line := maps.Clone(doc)
		line[RefField] = ref
		data, err := json.Marshal(line)
		if err != nil {
			return n, fmt.Errorf("encoding %s/%s: %w", coll.Type(), ref, err)
		}
		if _, err := bw.Write(data); err != nil {
			return n, fmt.Errorf("writing record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, fmt.Errorf("writing newline: %w", err)
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flushing buffer: %w", err)
	}
	return n, nil
}
