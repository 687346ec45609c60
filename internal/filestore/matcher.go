package filestore

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/google/go-cmp/cmp"

	"github.com/simonemmott/datastore/pkg/types"
)

// matches reports whether doc holds every criteria key with an equal value.
// Empty criteria matches every document.
func matches(doc types.Document, criteria types.Criteria) bool {
	for key, want := range criteria {
		got, ok := doc[key]
		if !ok || !cmp.Equal(got, want, numberComparer) {
			return false
		}
	}
	return true
}

// numberComparer treats JSON numbers as equal when their values are, so a
// stored 3.0 matches a criteria 3.
var numberComparer = cmp.Comparer(func(a, b json.Number) bool {
	if a == b {
		return true
	}
	x, okA := new(big.Rat).SetString(a.String())
	y, okB := new(big.Rat).SetString(b.String())
	return okA && okB && x.Cmp(y) == 0
})

// canonicalCriteria passes criteria values through the JSON codec used for
// record files so they compare equal to decoded documents (an int 1 becomes
// the json.Number "1" a stored document holds).
func canonicalCriteria(criteria types.Criteria) (types.Criteria, error) {
	if len(criteria) == 0 {
		return criteria, nil
	}
	data, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("encoding criteria: %w", err)
	}
	var out types.Criteria
	if err := types.UnmarshalJSON(data, &out); err != nil {
		return nil, fmt.Errorf("decoding criteria: %w", err)
	}
	return out, nil
}
