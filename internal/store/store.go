package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"store-monitor-backend/internal/model"
)

// ErrReportNotFound is returned when a report id was never issued.
var ErrReportNotFound = errors.New("report not found")

// Snapshot is an immutable view of the dataset used by one report
// computation. Stores are ordered by id; a store appears here if it occurs
// in any of the three source tables, with an empty Timezone when it has no
// timezone row (the resolver applies the documented default).
type Snapshot struct {
	Stores        []model.StoreTimezone
	BusinessHours []model.BusinessHours
	Observations  map[string][]model.Observation
	MaxTimestamp  time.Time // zero when the dataset holds no observations
}

// Store defines the interface for all database operations.
type Store interface {
	ReplaceDataset(ctx context.Context, tzs []model.StoreTimezone, hours []model.BusinessHours, obs []model.Observation, batchSize int) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	ListStores(ctx context.Context) ([]model.StoreTimezone, error)

	CreateReport(ctx context.Context, reportID string) error
	CompleteReport(ctx context.Context, reportID, filePath string) error
	FailReport(ctx context.Context, reportID, reason string) error
	GetReport(ctx context.Context, reportID string) (model.Report, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// ReplaceDataset wipes the three dataset tables and inserts the given rows
// in one transaction. Observation slice order becomes ingestion order.
func (s *gormStore) ReplaceDataset(ctx context.Context, tzs []model.StoreTimezone, hours []model.BusinessHours, obs []model.Observation, batchSize int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Observation{}, &model.BusinessHours{}, &model.StoreTimezone{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}
		if len(tzs) > 0 {
			if err := tx.CreateInBatches(tzs, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert store timezones: %w", err)
			}
		}
		if len(hours) > 0 {
			if err := tx.CreateInBatches(hours, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert business hours: %w", err)
			}
		}
		if len(obs) > 0 {
			if err := tx.CreateInBatches(obs, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert observations: %w", err)
			}
		}
		return nil
	})
}

// LoadSnapshot reads the whole dataset into memory for one report
// computation. Observations come back ordered by (timestamp, ingestion seq)
// per store.
func (s *gormStore) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var tzs []model.StoreTimezone
	if err := s.db.WithContext(ctx).Order("store_id").Find(&tzs).Error; err != nil {
		return nil, fmt.Errorf("failed to load store timezones: %w", err)
	}

	var hours []model.BusinessHours
	if err := s.db.WithContext(ctx).Find(&hours).Error; err != nil {
		return nil, fmt.Errorf("failed to load business hours: %w", err)
	}

	var obs []model.Observation
	if err := s.db.WithContext(ctx).Order("timestamp").Order("seq").Find(&obs).Error; err != nil {
		return nil, fmt.Errorf("failed to load observations: %w", err)
	}

	snap := &Snapshot{
		BusinessHours: hours,
		Observations:  make(map[string][]model.Observation),
	}

	tzByStore := make(map[string]string, len(tzs))
	for _, tz := range tzs {
		tzByStore[tz.StoreID] = tz.Timezone
	}

	seen := make(map[string]bool, len(tzs))
	for _, tz := range tzs {
		seen[tz.StoreID] = true
	}
	for _, h := range hours {
		seen[h.StoreID] = true
	}
	for _, o := range obs {
		seen[o.StoreID] = true
		snap.Observations[o.StoreID] = append(snap.Observations[o.StoreID], o)
		if o.Timestamp.After(snap.MaxTimestamp) {
			snap.MaxTimestamp = o.Timestamp
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		snap.Stores = append(snap.Stores, model.StoreTimezone{StoreID: id, Timezone: tzByStore[id]})
	}

	return snap, nil
}

// ListStores returns the known stores ordered by id.
func (s *gormStore) ListStores(ctx context.Context) ([]model.StoreTimezone, error) {
	var tzs []model.StoreTimezone
	if err := s.db.WithContext(ctx).Order("store_id").Find(&tzs).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return tzs, nil
}

// CreateReport registers a new job in the Running state.
func (s *gormStore) CreateReport(ctx context.Context, reportID string) error {
	rec := model.Report{ReportID: reportID, Status: model.ReportStatusRunning}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create report %s: %w", reportID, err)
	}
	return nil
}

// CompleteReport transitions a Running job to Complete. The status guard in
// the WHERE clause keeps terminal states write-once.
func (s *gormStore) CompleteReport(ctx context.Context, reportID, filePath string) error {
	return s.transition(ctx, reportID, map[string]any{
		"status":    model.ReportStatusComplete,
		"file_path": filePath,
	})
}

// FailReport transitions a Running job to Failed with the recorded reason.
func (s *gormStore) FailReport(ctx context.Context, reportID, reason string) error {
	return s.transition(ctx, reportID, map[string]any{
		"status": model.ReportStatusFailed,
		"error":  reason,
	})
}

func (s *gormStore) transition(ctx context.Context, reportID string, updates map[string]any) error {
	res := s.db.WithContext(ctx).Model(&model.Report{}).
		Where("report_id = ? AND status = ?", reportID, model.ReportStatusRunning).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update report %s: %w", reportID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("report %s is not in a running state", reportID)
	}
	return nil
}

// GetReport looks up a job by id.
func (s *gormStore) GetReport(ctx context.Context, reportID string) (model.Report, error) {
	var rec model.Report
	err := s.db.WithContext(ctx).First(&rec, "report_id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Report{}, ErrReportNotFound
	}
	if err != nil {
		return model.Report{}, fmt.Errorf("failed to fetch report %s: %w", reportID, err)
	}
	return rec, nil
}
