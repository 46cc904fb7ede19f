// Package reports synchronizes the report collections with the remote
// service: fetch lifecycle, local mutation bookkeeping, reconciliation of
// duplicate records, and derived filtered views.
package reports

import (
	"sync"

	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
)

// Store is the in-memory report state: the shared collection, the caller's
// own submissions, and the currently selected report. The synchronization
// layer is the only writer; every mutation happens under one lock so readers
// never observe a half-applied update.
type Store struct {
	mu          sync.Mutex
	reports     []models.Report
	userReports []models.Report
	selected    *models.Report
	track       *state.Tracker
}

func NewStore(opts ...state.Option) *Store {
	return &Store{track: state.NewTracker(opts...)}
}

// ReplaceAll swaps the shared collection for the fetched one. A fetch result
// replaces; it never merges.
func (s *Store) ReplaceAll(items []models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append([]models.Report(nil), items...)
}

// ReplaceUserReports swaps the caller's own submissions.
func (s *Store) ReplaceUserReports(items []models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userReports = append([]models.Report(nil), items...)
}

// Upsert inserts r if its id is unseen, otherwise replaces the existing
// record in place, keeping its position. The user-reports list is updated the
// same way when it already holds the id.
func (s *Store) Upsert(r models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = upsert(s.reports, r)
	if indexOf(s.userReports, r.ID) >= 0 {
		s.userReports = upsert(s.userReports, r)
	}
	if s.selected != nil && s.selected.ID == r.ID {
		cp := r
		s.selected = &cp
	}
}

// Remove drops the id from every list. Removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = remove(s.reports, id)
	s.userReports = remove(s.userReports, id)
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
}

// Patch applies a partial update to exactly one record; no-op if the id is
// absent.
func (s *Store) Patch(id string, p models.ReportPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.reports, id); i >= 0 {
		p.Apply(&s.reports[i])
	}
	if i := indexOf(s.userReports, id); i >= 0 {
		p.Apply(&s.userReports[i])
	}
	if s.selected != nil && s.selected.ID == id {
		p.Apply(s.selected)
	}
}

func (s *Store) setSelected(r *models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil {
		s.selected = nil
		return
	}
	cp := *r
	s.selected = &cp
}

// Reports returns a copy of the shared collection.
func (s *Store) Reports() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Report(nil), s.reports...)
}

// UserReports returns a copy of the caller's own submissions.
func (s *Store) UserReports() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Report(nil), s.userReports...)
}

// Selected returns a copy of the selected report, or nil.
func (s *Store) Selected() *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

func (s *Store) Status() state.Status { return s.track.Status() }

func (s *Store) Err() string { return s.track.Err() }

func (s *Store) Loading() bool { return s.track.Loading() }

func upsert(list []models.Report, r models.Report) []models.Report {
	if i := indexOf(list, r.ID); i >= 0 {
		list[i] = r
		return list
	}
	return append(list, r)
}

func remove(list []models.Report, id string) []models.Report {
	if i := indexOf(list, id); i >= 0 {
		return append(list[:i], list[i+1:]...)
	}
	return list
}

func indexOf(list []models.Report, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
