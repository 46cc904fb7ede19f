package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
	"github.com/reuniteapp/reunite/internal/logging"
)

// ---- fakes ----

type fakeClient struct {
	LoginRet    api.AuthResult
	LoginErr    error
	RegisterRet api.AuthResult
	RegisterErr error
	ForgotRet   string
	ForgotErr   error
	ResetErr    error

	LastLogin api.Credentials
}

func (f *fakeClient) Login(_ context.Context, creds api.Credentials) (api.AuthResult, error) {
	f.LastLogin = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, _ api.Profile) (api.AuthResult, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ForgotPassword(_ context.Context, _ string) (string, error) {
	return f.ForgotRet, f.ForgotErr
}

func (f *fakeClient) ResetPassword(_ context.Context, _, _ string) error {
	return f.ResetErr
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

func user1() *models.User {
	return &models.User{ID: "u1", Name: "Jane", Email: "jane@example.com", Role: models.RoleUser}
}

// ---- tests ----

func TestLogin_SetsAndPersistsPairedState(t *testing.T) {
	fc := &fakeClient{LoginRet: api.AuthResult{Token: "tok", User: user1()}}
	repo := newMemRepo()
	s := NewStore(fc, repo, testLogger())

	require.NoError(t, s.Login(context.Background(), "jane@example.com", "secret1"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, state.StatusSucceeded, s.Status())
	assert.NotNil(t, repo.data["session"])
}

func TestLogin_FailureStoresErrorAndStaysUnpaired(t *testing.T) {
	fc := &fakeClient{LoginErr: api.Errorf(api.KindAuth, "invalid credentials")}
	s := NewStore(fc, newMemRepo(), testLogger())

	err := s.Login(context.Background(), "jane@example.com", "wrong12")
	require.Error(t, err)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, state.StatusFailed, s.Status())
	assert.Equal(t, "invalid credentials", s.Err())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestLogin_ValidationNeverReachesClient(t *testing.T) {
	fc := &fakeClient{}
	s := NewStore(fc, newMemRepo(), testLogger())

	err := s.Login(context.Background(), "no-at-sign", "secret1")
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.Empty(t, fc.LastLogin.Email)
	assert.Equal(t, state.StatusIdle, s.Status())
}

func TestRegister_TokenOnlySynthesizesDefaultRoleUser(t *testing.T) {
	fc := &fakeClient{RegisterRet: api.AuthResult{Token: "tok"}}
	s := NewStore(fc, newMemRepo(), testLogger())

	require.NoError(t, s.Register(context.Background(), "Jane", "jane@example.com", "secret1"))

	u := s.User()
	require.NotNil(t, u)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.True(t, s.IsAuthenticated())
}

func TestLogout_ClearsSynchronously(t *testing.T) {
	fc := &fakeClient{LoginRet: api.AuthResult{Token: "tok", User: user1()}}
	repo := newMemRepo()
	s := NewStore(fc, repo, testLogger())
	require.NoError(t, s.Login(context.Background(), "jane@example.com", "secret1"))

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.Nil(t, repo.data["session"])
}

func TestRestore_RoundTrip(t *testing.T) {
	fc := &fakeClient{LoginRet: api.AuthResult{Token: "tok", User: user1()}}
	repo := newMemRepo()
	s := NewStore(fc, repo, testLogger())
	require.NoError(t, s.Login(context.Background(), "jane@example.com", "secret1"))

	fresh := NewStore(fc, repo, testLogger())
	fresh.Restore(context.Background())

	assert.True(t, fresh.IsAuthenticated())
	assert.Equal(t, "tok", fresh.Token())
	require.NotNil(t, fresh.User())
	assert.Equal(t, "u1", fresh.User().ID)
}

func TestRestore_CorruptDataFailsSilently(t *testing.T) {
	repo := newMemRepo()
	repo.data["session"] = []byte("{not json")

	s := NewStore(&fakeClient{}, repo, testLogger())
	s.Restore(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Err())
}

func TestRestore_PartialSliceIsIgnored(t *testing.T) {
	repo := newMemRepo()
	repo.data["session"] = []byte(`{"token":"tok"}`) // user missing

	s := NewStore(&fakeClient{}, repo, testLogger())
	s.Restore(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestRestore_ExpiredJWTIsDiscarded(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-key"))
	require.NoError(t, err)

	repo := newMemRepo()
	repo.data["session"] = []byte(`{"token":"` + token + `","user":{"id":"u1","role":"USER"}}`)

	s := NewStore(&fakeClient{}, repo, testLogger())
	s.Restore(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, repo.data["session"])
}

func TestForgotAndResetPassword(t *testing.T) {
	fc := &fakeClient{ForgotRet: "reset token sent"}
	s := NewStore(fc, newMemRepo(), testLogger())

	msg, err := s.ForgotPassword(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "reset token sent", msg)

	require.NoError(t, s.ResetPassword(context.Background(), "reset-tok", "newsecret"))
	assert.Equal(t, state.StatusSucceeded, s.Status())

	fc.ResetErr = api.Errorf(api.KindServer, "token invalid")
	require.Error(t, s.ResetPassword(context.Background(), "bad", "newsecret"))
	assert.Equal(t, "token invalid", s.Err())
}
