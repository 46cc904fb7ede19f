package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/logging"
)

// HTTPClient talks to the Reunite REST API.
//
// Every call carries an X-Request-Id correlation header and, when a token
// source is attached and yields a token, a bearer Authorization header.
// Outgoing calls pass through a client-side rate limiter; idempotent GETs are
// retried with exponential backoff on transport failures. All failures are
// normalized into *Error before they are returned.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	retries uint64
	timeout time.Duration
	tokens  TokenSource
	log     logging.Logger
}

type ClientOption func(*HTTPClient)

// WithTimeout sets the per-call timeout. Zero disables it: calls then settle
// only when the transport does.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRateLimit caps outgoing calls at rps requests per second.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *HTTPClient) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithRetries sets how many times idempotent GETs are retried on transport
// failure.
func WithRetries(n uint64) ClientOption {
	return func(c *HTTPClient) { c.retries = n }
}

func WithLogger(log logging.Logger) ClientOption {
	return func(c *HTTPClient) { c.log = log }
}

func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *HTTPClient) { c.httpc = httpc }
}

func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		httpc:   &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 1),
		retries: 0,
		log:     logging.NewSlogLogger(noopSlog()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource attaches the session store as the bearer credential source.
// It is called once during wiring, after the session store is constructed.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

var _ Client = (*HTTPClient)(nil)

// noopSlog is the default log sink when no logger is wired in.
func noopSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// errorBody is the error envelope of the service: non-2xx responses carry a
// human-readable message.
type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return Errorf(KindNetwork, "rate limiter: %v", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Errorf(KindNetwork, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Errorf(KindNetwork, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Errorf(KindServer, "%s %s: malformed response: %v", method, path, err)
	}
	return nil
}

func (c *HTTPClient) errorFromResponse(resp *http.Response, method, path string) error {
	kind := KindServer
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}

	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &eb); err != nil || eb.Message == "" {
		// Error bodies are not always JSON; fall back to the status line.
		eb.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	c.log.Warn(resp.Request.Context(), "request failed",
		"method", method, "path", path, "status", resp.StatusCode)
	return &Error{Kind: kind, Message: eb.Message}
}

// getJSON issues an idempotent GET, retrying transport failures with bounded
// exponential backoff. Server and auth failures are never retried.
func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.roundTrip(ctx, http.MethodGet, path, nil, "", out)
		if IsNetwork(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return Errorf(KindValidation, "encode request: %v", err)
		}
		body = bytes.NewReader(b)
	}
	return c.roundTrip(ctx, method, path, body, "application/json", out)
}

// sendMultipart submits a report draft as a multipart form, attaching the
// image part only when an image was captured.
func (c *HTTPClient) sendMultipart(ctx context.Context, method, path string, draft ReportDraft, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"personName":     draft.PersonName,
		"gender":         draft.Gender,
		"description":    draft.Description,
		"contact_number": draft.ContactNumber,
		"location":       draft.Location,
	}
	if draft.Age != nil {
		fields["age"] = strconv.Itoa(*draft.Age)
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return Errorf(KindValidation, "encode form: %v", err)
		}
	}

	if len(draft.Image) > 0 {
		name := draft.ImageName
		if name == "" {
			name = "photo.jpg"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return Errorf(KindValidation, "encode form: %v", err)
		}
		if _, err := part.Write(draft.Image); err != nil {
			return Errorf(KindValidation, "encode form: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		return Errorf(KindValidation, "encode form: %v", err)
	}
	return c.roundTrip(ctx, method, path, &buf, w.FormDataContentType(), out)
}

// ---- auth ----

func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	var env struct {
		Data AuthResult `json:"data"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", creds, &env); err != nil {
		// Bad credentials come back as a server-kind 4xx from some
		// deployments; login failures are auth failures either way.
		if IsServer(err) {
			return AuthResult{}, &Error{Kind: KindAuth, Message: err.Error()}
		}
		return AuthResult{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) Register(ctx context.Context, profile Profile) (AuthResult, error) {
	var env struct {
		Data AuthResult `json:"data"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", profile, &env); err != nil {
		return AuthResult{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	in := map[string]string{"email": email}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/forget-password", in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	in := map[string]string{"token": token, "newPassword": newPassword}
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/reset-password", in, nil)
}

// ---- reports ----

func (c *HTTPClient) FetchReports(ctx context.Context) ([]models.Report, error) {
	var env struct {
		Data struct {
			Reports []models.Report `json:"reports"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/report", &env); err != nil {
		return nil, err
	}
	return env.Data.Reports, nil
}

func (c *HTTPClient) FetchUserReports(ctx context.Context) ([]models.Report, error) {
	var env struct {
		Data struct {
			Reports []models.Report `json:"reports"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/report/user", &env); err != nil {
		return nil, err
	}
	return env.Data.Reports, nil
}

func (c *HTTPClient) FetchReport(ctx context.Context, id string) (models.Report, error) {
	var env struct {
		Data struct {
			Report models.Report `json:"report"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/report/"+id, &env); err != nil {
		return models.Report{}, err
	}
	return env.Data.Report, nil
}

func (c *HTTPClient) CreateReport(ctx context.Context, draft ReportDraft) (models.Report, error) {
	var env struct {
		Data models.Report `json:"data"`
	}
	if err := c.sendMultipart(ctx, http.MethodPost, "/api/report", draft, &env); err != nil {
		return models.Report{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) UpdateReport(ctx context.Context, id string, draft ReportDraft) (models.Report, error) {
	var env struct {
		Data models.Report `json:"data"`
	}
	if err := c.sendMultipart(ctx, http.MethodPatch, "/api/report/"+id+"/update", draft, &env); err != nil {
		return models.Report{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) DeleteReport(ctx context.Context, id string) error {
	return c.roundTrip(ctx, http.MethodDelete, "/api/report/"+id, nil, "", nil)
}

// ---- admin ----

func (c *HTTPClient) FetchUsers(ctx context.Context) ([]models.User, error) {
	var env struct {
		Data struct {
			Users []models.User `json:"users"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/admin/users", &env); err != nil {
		return nil, err
	}
	return env.Data.Users, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.roundTrip(ctx, http.MethodDelete, "/api/admin/users/"+id, nil, "", nil)
}

func (c *HTTPClient) PromoteUser(ctx context.Context, id string) error {
	in := map[string]models.Role{"role": models.RoleAdmin}
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/users/"+id, in, nil)
}

func (c *HTTPClient) DemoteUser(ctx context.Context, id string) (RoleChange, error) {
	var env struct {
		Data RoleChange `json:"data"`
	}
	in := map[string]models.Role{"role": models.RoleUser}
	if err := c.sendJSON(ctx, http.MethodPut, "/api/admin/users/"+id+"/demote", in, &env); err != nil {
		return RoleChange{}, err
	}
	return env.Data, nil
}

// ---- notifications ----

func (c *HTTPClient) FetchNotifications(ctx context.Context) (NotificationsPage, error) {
	var env struct {
		Data        []models.Notification `json:"data"`
		UnreadCount int                   `json:"unreadCount"`
	}
	if err := c.getJSON(ctx, "/api/notifications", &env); err != nil {
		return NotificationsPage{}, err
	}
	return NotificationsPage{Notifications: env.Data, UnreadCount: env.UnreadCount}, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodPut, "/api/notifications/"+id+"/read", nil, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}
