package reports

import (
	"strings"

	"github.com/reuniteapp/reunite/internal/client/models"
)

// GroupKey selects how raw records are grouped for reconciliation.
type GroupKey int

const (
	// KeyByID groups by the record's own identifier.
	KeyByID GroupKey = iota
	// KeyByPersonName groups by subject, yielding one record per person.
	// Records without a name fall into the "unknown" group.
	KeyByPersonName
)

// unknownSubject is the sentinel group for records with no person name.
const unknownSubject = "unknown"

// Reconcile collapses logically-equivalent records into one canonical record
// per group key. Records are scanned in fetch order; the first record of a
// group survives unless a later record has higher status precedence
// (MATCHED beats PENDING; a matched record is never displaced by a pending
// one). Records sharing key and status keep the earlier one. The output
// preserves first-seen order of surviving keys, so reconciling an
// already-reconciled list yields the same list.
func Reconcile(in []models.Report, key GroupKey) []models.Report {
	index := make(map[string]int, len(in))
	out := make([]models.Report, 0, len(in))

	for _, r := range in {
		k := groupKey(r, key)
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, r)
			continue
		}
		if out[i].Status == models.StatusPending && r.Status == models.StatusMatched {
			out[i] = r
		}
	}
	return out
}

func groupKey(r models.Report, key GroupKey) string {
	switch key {
	case KeyByPersonName:
		name := strings.TrimSpace(r.PersonName)
		if name == "" {
			return unknownSubject
		}
		return strings.ToLower(name)
	default:
		return strings.ToLower(r.ID)
	}
}
