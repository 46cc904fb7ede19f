package reports

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/state"
	"github.com/reuniteapp/reunite/internal/logging"
)

type fakeClient struct {
	FetchRet     []models.Report
	FetchErr     error
	FetchMineRet []models.Report
	FetchMineErr error
	FetchOneRet  models.Report
	FetchOneErr  error
	CreateRet    models.Report
	CreateErr    error
	UpdateRet    models.Report
	UpdateErr    error
	DeleteErr    error

	CreateCalls int
}

func (f *fakeClient) FetchReports(context.Context) ([]models.Report, error) {
	return f.FetchRet, f.FetchErr
}

func (f *fakeClient) FetchUserReports(context.Context) ([]models.Report, error) {
	return f.FetchMineRet, f.FetchMineErr
}

func (f *fakeClient) FetchReport(context.Context, string) (models.Report, error) {
	return f.FetchOneRet, f.FetchOneErr
}

func (f *fakeClient) CreateReport(context.Context, api.ReportDraft) (models.Report, error) {
	f.CreateCalls++
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdateReport(context.Context, string, api.ReportDraft) (models.Report, error) {
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteReport(context.Context, string) error {
	return f.DeleteErr
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchAll_PopulatesStore(t *testing.T) {
	fc := &fakeClient{FetchRet: []models.Report{pending("1", "John")}}
	svc := NewService(fc, NewStore(), testLogger())

	require.NoError(t, svc.FetchAll(context.Background()))

	assert.Equal(t, state.StatusSucceeded, svc.Store().Status())
	assert.Len(t, svc.Store().Reports(), 1)
}

func TestFetchAll_FailureKeepsStaleData(t *testing.T) {
	fc := &fakeClient{FetchRet: []models.Report{pending("1", "John")}}
	svc := NewService(fc, NewStore(), testLogger())
	require.NoError(t, svc.FetchAll(context.Background()))

	fc.FetchErr = api.Errorf(api.KindNetwork, "connection refused")
	err := svc.FetchAll(context.Background())
	require.Error(t, err)

	// prior data untouched, error stored
	assert.Len(t, svc.Store().Reports(), 1)
	assert.Equal(t, state.StatusFailed, svc.Store().Status())
	assert.Equal(t, "connection refused", svc.Store().Err())
}

func TestCreate_AppendsAfterServerConfirms(t *testing.T) {
	fc := &fakeClient{CreateRet: pending("9", "New Person")}
	svc := NewService(fc, NewStore(), testLogger())

	r, err := svc.Create(context.Background(), api.ReportDraft{
		PersonName:    "New Person",
		ContactNumber: "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "9", r.ID)
	assert.Len(t, svc.Store().Reports(), 1)
}

func TestCreate_ValidationSkipsNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc, NewStore(), testLogger())

	_, err := svc.Create(context.Background(), api.ReportDraft{})
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.Zero(t, fc.CreateCalls)
	// validation failures never touch the lifecycle
	assert.Equal(t, state.StatusIdle, svc.Store().Status())
}

func TestUpdate_ReplacesEverywhere(t *testing.T) {
	fc := &fakeClient{UpdateRet: matched("1", "John")}
	svc := NewService(fc, NewStore(), testLogger())
	svc.Store().ReplaceAll([]models.Report{pending("1", "John")})
	svc.Store().ReplaceUserReports([]models.Report{pending("1", "John")})

	_, err := svc.Update(context.Background(), "1", api.ReportDraft{
		PersonName:    "John",
		ContactNumber: "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusMatched, svc.Store().Reports()[0].Status)
	assert.Equal(t, models.StatusMatched, svc.Store().UserReports()[0].Status)
}

func TestDelete_RemovesAfterConfirmation(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc, NewStore(), testLogger())
	svc.Store().ReplaceAll([]models.Report{pending("1", "John"), pending("2", "Mary")})

	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.Len(t, svc.Store().Reports(), 1)

	fc.DeleteErr = api.Errorf(api.KindServer, "not yours")
	require.Error(t, svc.Delete(context.Background(), "2"))
	assert.Len(t, svc.Store().Reports(), 1) // still there
}

func TestFetchByID_SelectsRecord(t *testing.T) {
	fc := &fakeClient{FetchOneRet: matched("7", "Jane")}
	svc := NewService(fc, NewStore(), testLogger())

	r, err := svc.FetchByID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", r.ID)
	require.NotNil(t, svc.Store().Selected())
	assert.Equal(t, "7", svc.Store().Selected().ID)

	fc.FetchOneErr = api.Errorf(api.KindServer, "not found")
	_, err = svc.FetchByID(context.Background(), "404")
	require.Error(t, err)
	assert.Nil(t, svc.Store().Selected())
}
