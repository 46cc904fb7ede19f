package models

import "time"

// Notification is a per-user message, typically produced when a report of the
// user is matched.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}

// CountUnread returns the number of notifications with IsRead == false.
func CountUnread(items []Notification) int {
	n := 0
	for _, item := range items {
		if !item.IsRead {
			n++
		}
	}
	return n
}
