package cli

import (
	"context"
	"fmt"
	"os"
)

// Users lists all registered users. Admin only.
func (a *App) Users(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn("Admin access required.")
		return nil
	}
	if err := a.admin.FetchAll(ctx); err != nil {
		printlnFn("Fetch failed:", err)
		return err
	}
	for _, u := range a.admin.Store().Users() {
		printlnFn(fmt.Sprintf("%s  %-20s  %-30s  %s", u.ID, u.Name, u.Email, u.Role))
	}
	return nil
}

func (a *App) RemoveUser(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn("Admin access required.")
		return nil
	}
	id, err := GetSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.admin.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err)
		return err
	}
	printlnFn("User", id, "removed")
	return nil
}

func (a *App) Promote(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn("Admin access required.")
		return nil
	}
	id, err := GetSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.admin.Promote(ctx, id); err != nil {
		printlnFn("Promote failed:", err)
		return err
	}
	printlnFn("User", id, "is now an admin")
	return nil
}

func (a *App) Demote(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn("Admin access required.")
		return nil
	}
	id, err := GetSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.admin.Demote(ctx, id); err != nil {
		printlnFn("Demote failed:", err)
		return err
	}
	printlnFn("User", id, "is now a regular user")
	return nil
}
