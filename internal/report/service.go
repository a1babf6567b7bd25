package report

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"store-monitor-backend/internal/artifact"
	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/store"
)

// Service owns the report job lifecycle: it issues ids, runs computations in
// the background and resolves status queries.
type Service struct {
	store     store.Store
	artifacts *artifact.Store
	workers   int
}

// NewService creates a report service backed by the given store and artifact
// directory.
func NewService(s store.Store, artifacts *artifact.Store, workers int) *Service {
	return &Service{
		store:     s,
		artifacts: artifacts,
		workers:   workers,
	}
}

// JobStatus is the boundary view of one report job.
type JobStatus struct {
	Status string
	CSV    string
	Error  string
}

// Trigger registers a new Running job and returns its id immediately; the
// computation proceeds in the background against the current dataset
// snapshot. Triggering never waits for the computation.
func (s *Service) Trigger(ctx context.Context) (string, error) {
	reportID := uuid.NewString()
	if err := s.store.CreateReport(ctx, reportID); err != nil {
		return "", fmt.Errorf("failed to register report job: %w", err)
	}

	go s.generate(context.Background(), reportID)
	return reportID, nil
}

// generate runs one report computation to its terminal state. The job record
// is written exactly once, to Complete or Failed.
func (s *Service) generate(ctx context.Context, reportID string) {
	log.Printf("report %s: computation started", reportID)

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		s.fail(ctx, reportID, err)
		return
	}

	rows, err := Build(ctx, snap, s.workers)
	if err != nil {
		s.fail(ctx, reportID, err)
		return
	}

	path, err := s.artifacts.Put(reportID, Table(rows))
	if err != nil {
		s.fail(ctx, reportID, err)
		return
	}

	if err := s.store.CompleteReport(ctx, reportID, path); err != nil {
		log.Printf("report %s: failed to mark complete: %v", reportID, err)
		return
	}
	log.Printf("report %s: complete, %d rows at %s", reportID, len(rows), path)
}

func (s *Service) fail(ctx context.Context, reportID string, cause error) {
	log.Printf("report %s: failed: %v", reportID, cause)
	if err := s.store.FailReport(ctx, reportID, cause.Error()); err != nil {
		log.Printf("report %s: failed to record failure: %v", reportID, err)
	}
}

// Get resolves a job id to its current status. Unknown ids surface
// store.ErrReportNotFound, which the API layer maps to a NotFound status
// distinct from Failed.
func (s *Service) Get(ctx context.Context, reportID string) (JobStatus, error) {
	rec, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return JobStatus{}, err
	}

	status := JobStatus{Status: rec.Status, Error: rec.Error}
	if rec.Status == model.ReportStatusComplete {
		csvText, err := s.artifacts.Read(rec.FilePath)
		if err != nil {
			return JobStatus{}, fmt.Errorf("report %s: %w", reportID, err)
		}
		status.CSV = csvText
	}
	return status, nil
}
