package cli

import (
	"context"
	"fmt"
	"os"
)

// Notifications fetches and lists the user's notifications. Unread entries
// are marked with an asterisk.
func (a *App) Notifications(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}
	if err := a.notifs.Fetch(ctx); err != nil {
		printlnFn("Fetch failed:", err)
		return err
	}

	items := a.notifs.Store().Notifications()
	if len(items) == 0 {
		printlnFn("No notifications.")
		return nil
	}
	for _, n := range items {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %s  %s", marker, n.ID, n.Message))
	}
	printlnFn(fmt.Sprintf("%d unread", a.notifs.Store().UnreadCount()))
	return nil
}

// Read marks a single notification as read. The list updates immediately;
// the server call happens in the background of the same command.
func (a *App) Read(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}
	id, err := GetSimpleText(a.reader, "Enter notification id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.notifs.MarkRead(ctx, id); err != nil {
		printlnFn("Server not updated:", err)
		return err
	}
	printlnFn("Marked as read")
	return nil
}

func (a *App) ReadAll(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}
	if err := a.notifs.MarkAllRead(ctx); err != nil {
		printlnFn("Server not updated:", err)
		return err
	}
	printlnFn("All notifications marked as read")
	return nil
}
