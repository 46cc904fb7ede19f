package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/reports"
)

// Reports fetches every report and shows one entry per subject, with a
// confirmed match taking precedence over an open one for the same person.
func (a *App) Reports(ctx context.Context) error {
	if err := a.reports.FetchAll(ctx); err != nil {
		printlnFn("Fetch failed:", err)
		return err
	}
	items := reports.Reconcile(a.reports.Store().Reports(), reports.KeyByPersonName)
	printReports(items)
	return nil
}

// Mine lists the current user's own reports.
func (a *App) Mine(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}
	if err := a.reports.FetchMine(ctx); err != nil {
		printlnFn("Fetch failed:", err)
		return err
	}
	printReports(a.reports.Store().UserReports())
	return nil
}

// Search fetches all reports and filters them by name, category, and age
// range. All criteria are optional; an empty answer leaves one unconstrained.
func (a *App) Search(ctx context.Context) error {
	text, err := GetSimpleText(a.reader, "Name contains (empty for any)", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category: all, missing or found", os.Stdout)
	if err != nil {
		return err
	}
	minAge, err := GetIntOrDefault(a.reader, "Minimum age", 0, os.Stdout)
	if err != nil {
		printlnFn(err)
		return err
	}
	maxAge, err := GetIntOrDefault(a.reader, "Maximum age", 130, os.Stdout)
	if err != nil {
		printlnFn(err)
		return err
	}

	if err := a.reports.FetchAll(ctx); err != nil {
		printlnFn("Fetch failed:", err)
		return err
	}

	items := reports.Reconcile(a.reports.Store().Reports(), reports.KeyByID)
	items = reports.Filter(items, reports.Query{
		Text:     text,
		Category: reports.Category(strings.ToLower(category)),
		MinAge:   minAge,
		MaxAge:   maxAge,
	})
	printReports(items)
	return nil
}

// Show fetches a single report by id and prints its full detail.
func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter report id", os.Stdout)
	if err != nil {
		return err
	}

	r, err := a.reports.FetchByID(ctx, id)
	if err != nil {
		printlnFn("Fetch failed:", err)
		return err
	}
	printReportDetail(r)
	return nil
}

// Submit collects a new report interactively and creates it on the server.
func (a *App) Submit(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}

	draft, err := a.promptDraft()
	if err != nil {
		printlnFn(err)
		return err
	}

	r, err := a.reports.Create(ctx, draft)
	if err != nil {
		printlnFn("Submit failed:", err)
		return err
	}
	printlnFn("Report created with id", r.ID)
	return nil
}

// Edit re-collects every field of an existing report and submits the update.
func (a *App) Edit(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Enter report id", os.Stdout)
	if err != nil {
		return err
	}
	draft, err := a.promptDraft()
	if err != nil {
		printlnFn(err)
		return err
	}

	r, err := a.reports.Update(ctx, id, draft)
	if err != nil {
		printlnFn("Update failed:", err)
		return err
	}
	printlnFn("Report", r.ID, "updated")
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first.")
		return nil
	}

	id, err := GetSimpleText(a.reader, "Enter report id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.reports.Delete(ctx, id); err != nil {
		printlnFn("Delete failed:", err)
		return err
	}
	printlnFn("Report", id, "deleted")
	return nil
}

func (a *App) promptDraft() (api.ReportDraft, error) {
	var d api.ReportDraft
	var err error

	if d.PersonName, err = GetSimpleText(a.reader, "Person name", os.Stdout); err != nil {
		return d, err
	}
	if d.Age, err = GetOptionalInt(a.reader, "Age (empty if unknown)", os.Stdout); err != nil {
		return d, err
	}
	if d.Gender, err = GetSimpleText(a.reader, "Gender", os.Stdout); err != nil {
		return d, err
	}
	if d.Description, err = GetSimpleText(a.reader, "Description", os.Stdout); err != nil {
		return d, err
	}
	if d.ContactNumber, err = GetSimpleText(a.reader, "Contact number", os.Stdout); err != nil {
		return d, err
	}
	if d.Location, err = GetSimpleText(a.reader, "Last known location", os.Stdout); err != nil {
		return d, err
	}

	path, err := GetSimpleText(a.reader, "Photo file (empty to skip)", os.Stdout)
	if err != nil {
		return d, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return d, fmt.Errorf("cannot read photo: %w", err)
		}
		d.Image = data
		d.ImageName = path
	}
	return d, nil
}

func printReports(items []models.Report) {
	if len(items) == 0 {
		printlnFn("No reports found.")
		return
	}
	for _, r := range items {
		age := "?"
		if r.Age != nil {
			age = fmt.Sprintf("%d", *r.Age)
		}
		printlnFn(fmt.Sprintf("%s  %-20s  age %-3s  %-7s  %s",
			r.ID, r.PersonName, age, r.Status, r.Location))
	}
}

func printReportDetail(r *models.Report) {
	printlnFn("Id:         ", r.ID)
	printlnFn("Person:     ", r.PersonName)
	if r.Age != nil {
		printlnFn("Age:        ", *r.Age)
	}
	printlnFn("Gender:     ", r.Gender)
	printlnFn("Status:     ", string(r.Status))
	printlnFn("Location:   ", r.Location)
	printlnFn("Contact:    ", r.ContactNumber)
	printlnFn("Description:", r.Description)
	if r.MatchedWith != "" {
		printlnFn("Matched with:", r.MatchedWith)
	}
}
