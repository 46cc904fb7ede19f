// Package session holds the authenticated identity and bearer credential,
// persists them across restarts, and gates authenticated operations.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
	"github.com/reuniteapp/reunite/internal/client/storage"
	"github.com/reuniteapp/reunite/internal/logging"
)

// persistKey is the storage slot for the persisted session. Only the
// token and user are persisted, never the lifecycle status or error.
const persistKey = "session"

// authClient is the subset of the API surface the session store needs.
type authClient interface {
	Login(ctx context.Context, creds api.Credentials) (api.AuthResult, error)
	Register(ctx context.Context, profile api.Profile) (api.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Store holds the authenticated session. Token and user are both present or both
// absent; set and clear are the only mutation paths, so a reader can never
// observe one without the other.
type Store struct {
	client authClient
	repo   storage.Repository
	log    logging.Logger
	track  *state.Tracker

	mu    sync.Mutex // guards user+token as one unit
	user  *models.User
	token string
}

func NewStore(client authClient, repo storage.Repository, log logging.Logger) *Store {
	s := &Store{
		client: client,
		repo:   repo,
		log:    log.With("component", "session"),
		track:  state.NewTracker(),
	}
	return s
}

func (s *Store) set(user *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.user = &u
	s.token = token
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// Login authenticates against the service and persists the session.
// The stored error is readable via Err after a failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	creds := api.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return err
	}

	seq := s.track.Begin()
	res, err := s.client.Login(ctx, creds)
	if err != nil {
		s.track.Fail(seq, err.Error())
		return err
	}
	if res.Token == "" || res.User == nil {
		err := api.Errorf(api.KindServer, "login response missing token or user")
		s.track.Fail(seq, err.Error())
		return err
	}

	s.set(res.User, res.Token)
	s.track.Succeed(seq)
	s.persist(ctx)
	s.log.Info(ctx, "logged in", "user", res.User.ID)
	return nil
}

// Register creates an account. Deployments that return only a token get a
// synthesized minimal default-role user so the pairing invariant holds.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	profile := api.Profile{Name: name, Email: email, Password: password}
	if err := profile.Validate(); err != nil {
		return err
	}

	seq := s.track.Begin()
	res, err := s.client.Register(ctx, profile)
	if err != nil {
		s.track.Fail(seq, err.Error())
		return err
	}
	if res.Token == "" {
		err := api.Errorf(api.KindServer, "registration response missing token")
		s.track.Fail(seq, err.Error())
		return err
	}

	user := res.User
	if user == nil {
		user = &models.User{Name: name, Email: email, Role: models.RoleUser}
	}
	s.set(user, res.Token)
	s.track.Succeed(seq)
	s.persist(ctx)
	s.log.Info(ctx, "registered", "email", email)
	return nil
}

// ForgotPassword asks the service to send a reset token. The returned string
// is the service's confirmation message.
func (s *Store) ForgotPassword(ctx context.Context, email string) (string, error) {
	seq := s.track.Begin()
	msg, err := s.client.ForgotPassword(ctx, email)
	if err != nil {
		s.track.Fail(seq, err.Error())
		return "", err
	}
	s.track.Succeed(seq)
	return msg, nil
}

func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) error {
	seq := s.track.Begin()
	if err := s.client.ResetPassword(ctx, token, newPassword); err != nil {
		s.track.Fail(seq, err.Error())
		return err
	}
	s.track.Succeed(seq)
	return nil
}

// Logout clears the session. The in-memory state is cleared before the call
// returns; wiping the persisted copy is best-effort and never fails the
// caller.
func (s *Store) Logout(ctx context.Context) {
	s.clear()
	s.track.Reset()
	if err := s.repo.Delete(ctx, persistKey); err != nil {
		s.log.Warn(ctx, "failed to wipe persisted session", "error", err)
	}
	s.log.Info(ctx, "logged out")
}

// Restore rehydrates the persisted session at startup. Missing or corrupt
// data falls back to an empty session without surfacing an error. Tokens
// whose exp claim is already past are discarded.
func (s *Store) Restore(ctx context.Context) {
	raw, err := s.repo.Get(ctx, persistKey)
	if err != nil || raw == nil {
		return
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn(ctx, "discarding corrupt persisted session", "error", err)
		_ = s.repo.Delete(ctx, persistKey)
		return
	}
	if sess.Token == "" || sess.User == nil {
		return
	}
	if tokenExpired(sess.Token) {
		s.log.Info(ctx, "persisted credential expired")
		_ = s.repo.Delete(ctx, persistKey)
		return
	}

	s.set(sess.User, sess.Token)
	seq := s.track.Begin()
	s.track.Succeed(seq)
	s.log.Info(ctx, "session restored", "user", sess.User.ID)
}

// tokenExpired inspects the bearer token's exp claim without verifying the
// signature; verification is the server's job, this only avoids presenting a
// credential that is already dead.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) credentials pass through; the server decides.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	sess := models.Session{Token: s.token, User: s.user}
	s.mu.Unlock()

	raw, err := json.Marshal(sess)
	if err != nil {
		s.log.Error(ctx, "failed to encode session", "error", err)
		return
	}
	if err := s.repo.Set(ctx, persistKey, raw); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated derives the authenticated state from all three fields;
// no single field is trusted alone, so partial or corrupt state never
// presents as authenticated.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	token, user := s.token, s.user
	s.mu.Unlock()
	return token != "" && user != nil && s.track.Status() == state.StatusSucceeded
}

func (s *Store) Status() state.Status { return s.track.Status() }

func (s *Store) Err() string { return s.track.Err() }

// Reset returns the lifecycle to idle and clears the stored error without
// touching the credential.
func (s *Store) Reset() { s.track.Reset() }
