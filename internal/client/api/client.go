// Package api implements the REST boundary of the Reunite client: request
// shaping, bearer authentication, and normalization of the service's JSON
// envelopes and error bodies.
package api

import (
	"context"
	"strings"

	"github.com/reuniteapp/reunite/internal/client/models"
)

// TokenSource supplies the bearer credential attached to authenticated calls.
// An empty token means the call is issued unauthenticated.
type TokenSource interface {
	Token() string
}

// Credentials is a login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects malformed credentials before they reach the network.
func (c Credentials) Validate() error {
	if !strings.Contains(c.Email, "@") {
		return Errorf(KindValidation, "invalid email address")
	}
	if len(c.Password) < 6 {
		return Errorf(KindValidation, "password must be at least 6 characters")
	}
	return nil
}

// Profile is a registration form.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Errorf(KindValidation, "name is required")
	}
	return Credentials{Email: p.Email, Password: p.Password}.Validate()
}

// AuthResult is the outcome of login or registration. Some deployments return
// only a token from registration, in which case User is nil and the session
// store synthesizes a minimal default-role user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ReportDraft is the submission form for creating or editing a report.
// Image is optional; when present it is sent as a multipart file part.
type ReportDraft struct {
	PersonName    string
	Age           *int
	Gender        string
	Description   string
	ContactNumber string
	Location      string
	Image         []byte
	ImageName     string
}

func (d ReportDraft) Validate() error {
	if strings.TrimSpace(d.PersonName) == "" {
		return Errorf(KindValidation, "person name is required")
	}
	if d.Age != nil && (*d.Age < 0 || *d.Age > 130) {
		return Errorf(KindValidation, "age must be between 0 and 130")
	}
	if strings.TrimSpace(d.ContactNumber) == "" {
		return Errorf(KindValidation, "contact number is required")
	}
	return nil
}

// RoleChange is the server's acknowledgment of a promote/demote operation.
type RoleChange struct {
	ID   string      `json:"id"`
	Role models.Role `json:"role"`
}

// NotificationsPage is a full notifications fetch.
type NotificationsPage struct {
	Notifications []models.Notification
	UnreadCount   int
}

// Client is the remote operation surface consumed by the synchronization
// layer. HTTPClient is the production implementation; store packages declare
// the narrow subset they need.
type Client interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, profile Profile) (AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error

	FetchReports(ctx context.Context) ([]models.Report, error)
	FetchUserReports(ctx context.Context) ([]models.Report, error)
	FetchReport(ctx context.Context, id string) (models.Report, error)
	CreateReport(ctx context.Context, draft ReportDraft) (models.Report, error)
	UpdateReport(ctx context.Context, id string, draft ReportDraft) (models.Report, error)
	DeleteReport(ctx context.Context, id string) error

	FetchUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
	PromoteUser(ctx context.Context, id string) error
	DemoteUser(ctx context.Context, id string) (RoleChange, error)

	FetchNotifications(ctx context.Context) (NotificationsPage, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}
