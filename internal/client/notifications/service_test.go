package notifications

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
	"github.com/reuniteapp/reunite/internal/logging"
)

type fakeClient struct {
	FetchRet    api.NotificationsPage
	FetchErr    error
	MarkErr     error
	MarkAllErr  error
	MarkedIDs   []string
	MarkAllHits int
}

func (f *fakeClient) FetchNotifications(context.Context) (api.NotificationsPage, error) {
	return f.FetchRet, f.FetchErr
}

func (f *fakeClient) MarkNotificationRead(_ context.Context, id string) error {
	f.MarkedIDs = append(f.MarkedIDs, id)
	return f.MarkErr
}

func (f *fakeClient) MarkAllNotificationsRead(context.Context) error {
	f.MarkAllHits++
	return f.MarkAllErr
}

type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memRepo) Clear(_ context.Context) error {
	m.data = map[string][]byte{}
	return nil
}
func (m *memRepo) List(_ context.Context) (map[string][]byte, error) { return m.data, nil }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetch_RecountsFromServerFlags(t *testing.T) {
	fc := &fakeClient{FetchRet: api.NotificationsPage{
		Notifications: []models.Notification{unreadN("1", "a"), readN("2", "b")},
		// a lying counter from the server is ignored in favor of a recount
		UnreadCount: 7,
	}}
	svc := NewService(fc, NewStore(), newMemRepo(), testLogger())

	require.NoError(t, svc.Fetch(context.Background()))
	assert.Equal(t, 1, svc.Store().UnreadCount())
	assert.Equal(t, state.StatusSucceeded, svc.Store().Status())
}

func TestMarkRead_OptimisticWithoutRollback(t *testing.T) {
	fc := &fakeClient{MarkErr: api.Errorf(api.KindNetwork, "connection reset")}
	svc := NewService(fc, NewStore(), newMemRepo(), testLogger())
	svc.Store().ReplaceAll([]models.Notification{unreadN("1", "a")})

	err := svc.MarkRead(context.Background(), "1")
	require.Error(t, err)

	// the optimistic flip stays; the failure is surfaced, not reverted
	assert.True(t, svc.Store().Notifications()[0].IsRead)
	assert.Zero(t, svc.Store().UnreadCount())
	assert.Equal(t, "connection reset", svc.Store().Err())
}

func TestMarkAllRead_AppliesBeforeConfirmation(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc, NewStore(), newMemRepo(), testLogger())
	svc.Store().ReplaceAll([]models.Notification{unreadN("1", "a"), unreadN("2", "b"), unreadN("3", "c")})

	require.NoError(t, svc.MarkAllRead(context.Background()))

	assert.Zero(t, svc.Store().UnreadCount())
	for _, n := range svc.Store().Notifications() {
		assert.True(t, n.IsRead)
	}
	assert.Equal(t, 1, fc.MarkAllHits)
}

func TestRestore_RoundTripAndCorruptFallback(t *testing.T) {
	fc := &fakeClient{FetchRet: api.NotificationsPage{
		Notifications: []models.Notification{unreadN("1", "a"), readN("2", "b")},
	}}
	repo := newMemRepo()
	svc := NewService(fc, NewStore(), repo, testLogger())
	require.NoError(t, svc.Fetch(context.Background()))

	fresh := NewService(fc, NewStore(), repo, testLogger())
	fresh.Restore(context.Background())
	assert.Len(t, fresh.Store().Notifications(), 2)
	assert.Equal(t, 1, fresh.Store().UnreadCount())

	repo.data["notifications"] = []byte("{corrupt")
	broken := NewService(fc, NewStore(), repo, testLogger())
	broken.Restore(context.Background())
	assert.Empty(t, broken.Store().Notifications())
}

func TestFetchFailure_KeepsStaleNotifications(t *testing.T) {
	fc := &fakeClient{FetchRet: api.NotificationsPage{
		Notifications: []models.Notification{unreadN("1", "a")},
	}}
	svc := NewService(fc, NewStore(), newMemRepo(), testLogger())
	require.NoError(t, svc.Fetch(context.Background()))

	fc.FetchErr = api.Errorf(api.KindNetwork, "timeout")
	require.Error(t, svc.Fetch(context.Background()))

	assert.Len(t, svc.Store().Notifications(), 1)
	assert.Equal(t, state.StatusFailed, svc.Store().Status())
}
