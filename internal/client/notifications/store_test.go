package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reuniteapp/reunite/internal/client/models"
)

func unreadN(id, msg string) models.Notification {
	return models.Notification{ID: id, Message: msg}
}

func readN(id, msg string) models.Notification {
	return models.Notification{ID: id, Message: msg, IsRead: true}
}

// counter must always equal the number of unread items
func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	assert.Equal(t, models.CountUnread(s.Notifications()), s.UnreadCount())
}

func TestReplaceAll_RecomputesCounter(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Notification{unreadN("1", "a"), readN("2", "b"), unreadN("3", "c")})

	assert.Equal(t, 2, s.UnreadCount())
	checkInvariant(t, s)
}

func TestMarkRead_DecrementsOnce(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Notification{unreadN("1", "a"), unreadN("2", "b")})

	s.MarkRead("1")
	assert.Equal(t, 1, s.UnreadCount())
	assert.True(t, s.Notifications()[0].IsRead)

	// flipping the same id again must not drift the counter
	s.MarkRead("1")
	assert.Equal(t, 1, s.UnreadCount())

	// unknown id is a no-op
	s.MarkRead("404")
	assert.Equal(t, 1, s.UnreadCount())
	checkInvariant(t, s)
}

func TestMarkAllRead_ZeroesImmediately(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Notification{unreadN("1", "a"), unreadN("2", "b"), unreadN("3", "c")})

	s.MarkAllRead()

	assert.Zero(t, s.UnreadCount())
	for _, n := range s.Notifications() {
		assert.True(t, n.IsRead)
	}
	checkInvariant(t, s)
}

func TestFetchIsAuthoritativeOverOptimisticState(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Notification{unreadN("1", "a")})
	s.MarkAllRead()
	require.Zero(t, s.UnreadCount())

	// the optimistic flip never reached the server; a re-fetch corrects it
	s.ReplaceAll([]models.Notification{unreadN("1", "a"), unreadN("2", "b")})

	assert.Equal(t, 2, s.UnreadCount())
	checkInvariant(t, s)
}

func TestCounterClampedAtZero(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Notification{unreadN("1", "a")})

	s.MarkRead("1")
	s.MarkRead("1")
	assert.Zero(t, s.UnreadCount())
}
