package reports

import (
	"context"

	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/logging"
)

// reportClient is the subset of the API surface the report service needs.
type reportClient interface {
	FetchReports(ctx context.Context) ([]models.Report, error)
	FetchUserReports(ctx context.Context) ([]models.Report, error)
	FetchReport(ctx context.Context, id string) (models.Report, error)
	CreateReport(ctx context.Context, draft api.ReportDraft) (models.Report, error)
	UpdateReport(ctx context.Context, id string, draft api.ReportDraft) (models.Report, error)
	DeleteReport(ctx context.Context, id string) error
}

// Service drives the report store against the remote API. Reports are not
// created optimistically: the server confirms first, then the record is
// appended. On a failed fetch the previously loaded collection stays visible.
type Service struct {
	client reportClient
	store  *Store
	log    logging.Logger
}

func NewService(client reportClient, store *Store, log logging.Logger) *Service {
	return &Service{client: client, store: store, log: log.With("component", "reports")}
}

func (s *Service) Store() *Store { return s.store }

// FetchAll replaces the shared collection with the server's.
func (s *Service) FetchAll(ctx context.Context) error {
	seq := s.store.track.Begin()
	items, err := s.client.FetchReports(ctx)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.ReplaceAll(items)
		s.log.Debug(ctx, "reports fetched", "count", len(items))
	}
	return nil
}

// FetchMine replaces the caller's own submissions.
func (s *Service) FetchMine(ctx context.Context) error {
	seq := s.store.track.Begin()
	items, err := s.client.FetchUserReports(ctx)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.ReplaceUserReports(items)
	}
	return nil
}

// FetchByID loads one report into the selected slot. The slot is cleared
// while loading and on failure, mirroring how detail views consume it.
func (s *Service) FetchByID(ctx context.Context, id string) (*models.Report, error) {
	seq := s.store.track.Begin()
	s.store.setSelected(nil)
	r, err := s.client.FetchReport(ctx, id)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return nil, err
	}
	if s.store.track.Succeed(seq) {
		s.store.setSelected(&r)
	}
	return &r, nil
}

// Create validates and submits a draft; the confirmed record is appended to
// the collection.
func (s *Service) Create(ctx context.Context, draft api.ReportDraft) (*models.Report, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	seq := s.store.track.Begin()
	r, err := s.client.CreateReport(ctx, draft)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return nil, err
	}
	if s.store.track.Succeed(seq) {
		s.store.Upsert(r)
	}
	s.log.Info(ctx, "report submitted", "id", r.ID)
	return &r, nil
}

// Update edits an owned report; the server's view of the record replaces the
// local one in every list holding it.
func (s *Service) Update(ctx context.Context, id string, draft api.ReportDraft) (*models.Report, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	seq := s.store.track.Begin()
	r, err := s.client.UpdateReport(ctx, id, draft)
	if err != nil {
		s.store.track.Fail(seq, err.Error())
		return nil, err
	}
	if s.store.track.Succeed(seq) {
		s.store.Upsert(r)
	}
	return &r, nil
}

// Delete removes a report after the server confirms. Deleting an id the
// collection no longer holds is a no-op locally.
func (s *Service) Delete(ctx context.Context, id string) error {
	seq := s.store.track.Begin()
	if err := s.client.DeleteReport(ctx, id); err != nil {
		s.store.track.Fail(seq, err.Error())
		return err
	}
	if s.store.track.Succeed(seq) {
		s.store.Remove(id)
	}
	s.log.Info(ctx, "report deleted", "id", id)
	return nil
}
