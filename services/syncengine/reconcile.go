package syncengine

import (
	"sort"
)

// Keyed is anything the portal lists that can be identified across
// runs: menu items and staff by name, coupons and reservations by the
// portal's own id.
type Keyed interface {
	NaturalKey() string
}

// Changes is the plan produced by diffing a portal snapshot against
// the local store. The three sets partition the input: every remote
// item lands in exactly one of Inserts or Updates, and DeactivateKeys
// only ever names local items absent from the remote snapshot.
type Changes[T Keyed] struct {
	Inserts        []T
	Updates        []T
	DeactivateKeys []string
}

func (c Changes[T]) Empty() bool {
	return len(c.Inserts) == 0 && len(c.Updates) == 0 && len(c.DeactivateKeys) == 0
}

// DiffSnapshot compares the full remote snapshot against the active
// local rows. Every remote key already present locally is an update
// even when the fields are identical; each run refreshes updated_at
// on every row the portal still lists. local must only contain active
// items; an item that was deactivated earlier and reappears on the
// portal comes back as an insert, which revives it.
func DiffSnapshot[T Keyed](remote []T, local map[string]T) Changes[T] {
	var out Changes[T]
	seen := make(map[string]bool, len(remote))

	for _, item := range remote {
		key := item.NaturalKey()
		if seen[key] {
			// the portal sometimes renders a row twice across page
			// boundaries; first occurrence wins
			continue
		}
		seen[key] = true

		if _, ok := local[key]; ok {
			out.Updates = append(out.Updates, item)
		} else {
			out.Inserts = append(out.Inserts, item)
		}
	}

	for key := range local {
		if !seen[key] {
			out.DeactivateKeys = append(out.DeactivateKeys, key)
		}
	}
	sort.Strings(out.DeactivateKeys)

	return out
}
