package syncengine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Fingerprint condenses a snapshot into a hex digest that is stable
// under reordering: the portal paginates differently from day to day
// but the same content must always hash the same. The digest is only
// recorded for auditing; a matching hash never skips reconciliation.
func Fingerprint[T Keyed](items []T) string {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].NaturalKey() < sorted[j].NaturalKey()
	})

	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, item := range sorted {
		// Encode only fails on unmarshalable values, which these flat
		// structs never are
		_ = enc.Encode(item)
	}
	return hex.EncodeToString(h.Sum(nil))
}
