// Package notifications tracks per-user notifications with optimistic
// read-state: marking read is applied locally before the server confirms,
// and a later fetch is the correction mechanism for any drift.
package notifications

import (
	"sync"

	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
)

// Store is the notification collection plus its unread counter. The counter
// always equals the number of items with IsRead == false: every code path
// that flips IsRead adjusts the counter in the same critical section, so a
// reader can never observe the two out of sync.
type Store struct {
	mu     sync.Mutex
	items  []models.Notification
	unread int
	track  *state.Tracker
}

func NewStore(opts ...state.Option) *Store {
	return &Store{track: state.NewTracker(opts...)}
}

// ReplaceAll swaps the collection for a fetched one and recomputes the
// unread counter from the server-supplied read flags. Fetch results are
// authoritative over any locally-optimistic state.
func (s *Store) ReplaceAll(items []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Notification(nil), items...)
	s.unread = models.CountUnread(s.items)
}

// MarkRead flips one notification to read and decrements the counter,
// clamped at zero. Flipping an already-read or unknown id leaves the counter
// alone, keeping it consistent with the collection.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if !s.items[i].IsRead {
			s.items[i].IsRead = true
			if s.unread > 0 {
				s.unread--
			}
		}
		return
	}
}

// MarkAllRead flips every notification to read and zeroes the counter in one
// step.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].IsRead = true
	}
	s.unread = 0
}

// Notifications returns a copy of the collection.
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.items...)
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

func (s *Store) Status() state.Status { return s.track.Status() }

func (s *Store) Err() string { return s.track.Err() }
