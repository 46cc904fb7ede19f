// Package admin synchronizes the user collection for administrators:
// listing accounts, removing them, and applying server-confirmed role
// changes.
package admin

import (
	"sync"

	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
)

// Store is the in-memory user collection. Mutations happen under one lock;
// readers get copies.
type Store struct {
	mu    sync.Mutex
	users []models.User
	track *state.Tracker
}

func NewStore(opts ...state.Option) *Store {
	return &Store{track: state.NewTracker(opts...)}
}

// ReplaceAll swaps the collection for a fetched one.
func (s *Store) ReplaceAll(items []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User(nil), items...)
}

// Remove drops the id; removing an absent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// SetRole updates one user's role in place; no-op if the id is absent.
func (s *Store) SetRole(id string, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Role = role
			return
		}
	}
}

// Users returns a copy of the collection.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

func (s *Store) Status() state.Status { return s.track.Status() }

func (s *Store) Err() string { return s.track.Err() }
