package reports

import (
	"strings"

	"github.com/reuniteapp/reunite/internal/client/models"
)

// Category maps the UI tabs onto status constraints.
type Category string

const (
	CategoryAll     Category = "all"
	CategoryMissing Category = "missing" // PENDING reports
	CategoryFound   Category = "found"   // MATCHED reports
)

// Query is the set of filters applied to a reconciled collection.
type Query struct {
	// Text is matched case-insensitively as a substring of the person name.
	// Empty matches everything.
	Text string
	// Category constrains the report status; CategoryAll (or "") does not.
	Category Category
	// MinAge and MaxAge bound the age inclusively. Records without an age
	// are excluded.
	MinAge int
	MaxAge int
}

// Filter derives the view a caller should render. It is a pure function of
// its inputs: no hidden state, identical inputs yield value-equal outputs,
// and the input slice is never mutated.
func Filter(in []models.Report, q Query) []models.Report {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]models.Report, 0, len(in))
	for _, r := range in {
		if text != "" && !strings.Contains(strings.ToLower(r.PersonName), text) {
			continue
		}
		if !matchesCategory(r.Status, q.Category) {
			continue
		}
		if r.Age == nil || *r.Age < q.MinAge || *r.Age > q.MaxAge {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesCategory(status models.ReportStatus, c Category) bool {
	switch c {
	case CategoryMissing:
		return status == models.StatusPending
	case CategoryFound:
		return status == models.StatusMatched
	default:
		return true
	}
}
