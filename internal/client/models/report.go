// Package models defines the entity types synchronized from the Reunite API:
// reports, users, notifications, and the authenticated session.
package models

import "time"

// ReportStatus is the server-assigned match state of a report. The transition
// PENDING -> MATCHED is one-directional and authoritative from the server;
// the client never invents a match.
type ReportStatus string

const (
	StatusPending ReportStatus = "PENDING"
	StatusMatched ReportStatus = "MATCHED"
)

// Report is a single missing/found-person report. Records are owned by their
// submitter for mutation purposes; ownership is enforced server-side.
type Report struct {
	ID            string       `json:"id"`
	PersonName    string       `json:"personName,omitempty"`
	Age           *int         `json:"age,omitempty"`
	Gender        string       `json:"gender,omitempty"`
	Description   string       `json:"description"`
	ContactNumber string       `json:"contact_number,omitempty"`
	ImageURL      string       `json:"imageUrl,omitempty"`
	Status        ReportStatus `json:"status"`
	Location      string       `json:"location,omitempty"`
	SubmittedAt   time.Time    `json:"submittedAt"`
	SubmittedByID string       `json:"submittedById"`
	MatchedWith   string       `json:"matchedWith,omitempty"`
}

// ReportPatch is a partial update; nil fields are left untouched.
type ReportPatch struct {
	PersonName    *string
	Age           *int
	Gender        *string
	Description   *string
	ContactNumber *string
	ImageURL      *string
	Status        *ReportStatus
	Location      *string
	MatchedWith   *string
}

// Apply copies the non-nil fields of p onto r.
func (p ReportPatch) Apply(r *Report) {
	if p.PersonName != nil {
		r.PersonName = *p.PersonName
	}
	if p.Age != nil {
		r.Age = p.Age
	}
	if p.Gender != nil {
		r.Gender = *p.Gender
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ContactNumber != nil {
		r.ContactNumber = *p.ContactNumber
	}
	if p.ImageURL != nil {
		r.ImageURL = *p.ImageURL
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.MatchedWith != nil {
		r.MatchedWith = *p.MatchedWith
	}
}
