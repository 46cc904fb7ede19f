package notifications

import (
	"context"
	"encoding/json"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/storage"
	"github.com/reuniteapp/reunite/internal/logging"
)

// persistKey is the storage slot for the cached notification list, so the
// bell state survives restarts until the first fetch refreshes it.
const persistKey = "notifications"

// notificationClient is the subset of the API surface this service needs.
type notificationClient interface {
	FetchNotifications(ctx context.Context) (api.NotificationsPage, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Service drives the notification store. Read-state mutations are optimistic:
// the local flip happens before the server call, and a failure surfaces an
// error without reverting the flip. A subsequent fetch corrects any drift.
type Service struct {
	client notificationClient
	store  *Store
	repo   storage.Repository
	log    logging.Logger
}

func NewService(client notificationClient, store *Store, repo storage.Repository, log logging.Logger) *Service {
	return &Service{client: client, store: store, repo: repo, log: log.With("component", "notifications")}
}

func (s *Service) Store() *Store { return s.store }

// Fetch replaces the collection with the server's and persists the result.
// The unread counter is recomputed from the fetched read flags; the server's
// own counter field is advisory only.
func (s *Service) Fetch(ctx context.Context) error {
	seq := s.store.track.Begin()
	page, err := s.client.FetchNotifications(ctx)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.ReplaceAll(page.Notifications)
		s.persist(ctx)
	}
	return nil
}

// MarkRead optimistically flips the notification, then tells the server.
// On failure the flip stays; the error is stored and returned.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	s.store.MarkRead(id)
	s.persist(ctx)

	seq := s.store.track.Begin()
	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		s.store.track.Fail(seq, err.Error())
		s.log.Warn(ctx, "mark-read not confirmed", "id", id, "error", err)
		return err
	}
	s.store.track.Succeed(seq)
	return nil
}

// MarkAllRead optimistically clears the counter, then tells the server.
func (s *Service) MarkAllRead(ctx context.Context) error {
	s.store.MarkAllRead()
	s.persist(ctx)

	seq := s.store.track.Begin()
	if err := s.client.MarkAllNotificationsRead(ctx); err != nil {
		s.store.track.Fail(seq, err.Error())
		s.log.Warn(ctx, "mark-all-read not confirmed", "error", err)
		return err
	}
	s.store.track.Succeed(seq)
	return nil
}

// Restore loads the cached notifications at startup. Missing or corrupt data falls
// back to an empty collection without surfacing an error; the first fetch
// replaces whatever was restored.
func (s *Service) Restore(ctx context.Context) {
	raw, err := s.repo.Get(ctx, persistKey)
	if err != nil || raw == nil {
		return
	}
	var cached []models.Notification
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn(ctx, "discarding corrupt notification cache", "error", err)
		_ = s.repo.Delete(ctx, persistKey)
		return
	}
	s.store.ReplaceAll(cached)
}

func (s *Service) persist(ctx context.Context) {
	raw, err := json.Marshal(s.store.Notifications())
	if err != nil {
		s.log.Error(ctx, "failed to encode notification cache", "error", err)
		return
	}
	if err := s.repo.Set(ctx, persistKey, raw); err != nil {
		s.log.Warn(ctx, "failed to persist notifications", "error", err)
	}
}
