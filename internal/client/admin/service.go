package admin

import (
	"context"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/logging"
)

// adminClient is the subset of the API surface the admin service needs.
type adminClient interface {
	FetchUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
	PromoteUser(ctx context.Context, id string) error
	DemoteUser(ctx context.Context, id string) (api.RoleChange, error)
}

// Service drives the user store. Role transitions are applied only after the
// server acknowledges them; the client never flips a role on its own.
type Service struct {
	client adminClient
	store  *Store
	log    logging.Logger
}

func NewService(client adminClient, store *Store, log logging.Logger) *Service {
	return &Service{client: client, store: store, log: log.With("component", "admin")}
}

func (s *Service) Store() *Store { return s.store }

func (s *Service) FetchAll(ctx context.Context) error {
	seq := s.store.track.Begin()
	items, err := s.client.FetchUsers(ctx)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.ReplaceAll(items)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	seq := s.store.track.Begin()
	if err := s.client.DeleteUser(ctx, id); err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.Remove(id)
	}
	s.log.Info(ctx, "user deleted", "id", id)
	return nil
}

// Promote raises a user to admin after the server confirms.
func (s *Service) Promote(ctx context.Context, id string) error {
	seq := s.store.track.Begin()
	if err := s.client.PromoteUser(ctx, id); err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.SetRole(id, models.RoleAdmin)
	}
	return nil
}

// Demote applies whatever role the server acknowledges, not an assumed one.
func (s *Service) Demote(ctx context.Context, id string) error {
	seq := s.store.track.Begin()
	change, err := s.client.DemoteUser(ctx, id)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.SetRole(change.ID, change.Role)
	}
	return nil
}
