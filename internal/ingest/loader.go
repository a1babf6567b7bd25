// Package ingest bulk-loads the monitoring dataset from CSV files into the
// database before any report can be computed.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"

	"store-monitor-backend/config"
	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/parse"
	"store-monitor-backend/internal/store"
)

// ErrScheduleOverlap marks overlapping business-hours entries for the same
// store and weekday. Bad schedules are rejected at load time, never at
// report time.
var ErrScheduleOverlap = errors.New("overlapping business hours")

// Loader reads the three dataset CSVs and replaces the database contents.
type Loader struct {
	cfg   *config.IngestConfig
	store store.Store
}

// NewLoader creates a loader for the configured CSV paths.
func NewLoader(cfg *config.IngestConfig, s store.Store) *Loader {
	return &Loader{cfg: cfg, store: s}
}

// Run ingests all three files and swaps the dataset in one transaction.
// Existing rows are replaced, so re-running ingestion never duplicates data.
func (l *Loader) Run(ctx context.Context) error {
	tzs, err := readFile(l.cfg.StoreTimezoneCSV, parseTimezones)
	if err != nil {
		return fmt.Errorf("store timezones: %w", err)
	}

	hours, err := readFile(l.cfg.BusinessHoursCSV, parseBusinessHours)
	if err != nil {
		return fmt.Errorf("business hours: %w", err)
	}
	if err := validateSchedule(hours); err != nil {
		return fmt.Errorf("business hours: %w", err)
	}

	obs, err := readFile(l.cfg.ObservationsCSV, parseObservations)
	if err != nil {
		return fmt.Errorf("observations: %w", err)
	}

	log.Printf("Ingesting %d timezones, %d business-hours entries, %d observations",
		len(tzs), len(hours), len(obs))

	if err := l.store.ReplaceDataset(ctx, tzs, hours, obs, l.cfg.BatchSize); err != nil {
		return fmt.Errorf("failed to persist dataset: %w", err)
	}
	return nil
}

func readFile[T any](path string, parseAll func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseAll(f)
}

// parseTimezones reads store_id,timezone_str rows. Stores absent from this
// file default to schedule.DefaultTimezone at snapshot time.
func parseTimezones(r io.Reader) ([]model.StoreTimezone, error) {
	records, err := readRecords(r, 2)
	if err != nil {
		return nil, err
	}
	out := make([]model.StoreTimezone, 0, len(records))
	for _, rec := range records {
		out = append(out, model.StoreTimezone{StoreID: rec[0], Timezone: rec[1]})
	}
	return out, nil
}

// parseBusinessHours reads store_id,day_of_week,start_time_local,end_time_local
// rows. Days are 0=Monday..6=Sunday; times are local wall-clock HH:MM:SS.
func parseBusinessHours(r io.Reader) ([]model.BusinessHours, error) {
	records, err := readRecords(r, 4)
	if err != nil {
		return nil, err
	}

	out := make([]model.BusinessHours, 0, len(records))
	for i, rec := range records {
		day, err := strconv.Atoi(rec[1])
		if err != nil || day < 0 || day > 6 {
			return nil, fmt.Errorf("row %d: invalid day_of_week %q", i+1, rec[1])
		}
		startSec, err := parse.LocalTime(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		endSec, err := parse.LocalTime(rec[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if startSec >= endSec {
			return nil, fmt.Errorf("row %d: start %s is not before end %s", i+1, rec[2], rec[3])
		}
		out = append(out, model.BusinessHours{
			StoreID:   rec[0],
			DayOfWeek: day,
			StartSec:  startSec,
			EndSec:    endSec,
		})
	}
	return out, nil
}

// parseObservations reads store_id,timestamp_utc,status rows. Slice order is
// file order, which the store persists as ingestion order for stable
// duplicate-timestamp tie-breaks.
func parseObservations(r io.Reader) ([]model.Observation, error) {
	records, err := readRecords(r, 3)
	if err != nil {
		return nil, err
	}

	out := make([]model.Observation, 0, len(records))
	for i, rec := range records {
		ts, err := parse.UTCTimestamp(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		status := rec[2]
		if status != model.StatusActive && status != model.StatusInactive {
			return nil, fmt.Errorf("row %d: invalid status %q", i+1, status)
		}
		out = append(out, model.Observation{StoreID: rec[0], Timestamp: ts, Status: status})
	}
	return out, nil
}

// readRecords consumes a CSV stream, skipping the header row.
func readRecords(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// validateSchedule rejects overlapping entries per store/day before anything
// is written.
func validateSchedule(entries []model.BusinessHours) error {
	type key struct {
		storeID string
		day     int
	}
	byDay := make(map[key][]model.BusinessHours)
	for _, e := range entries {
		k := key{e.StoreID, e.DayOfWeek}
		byDay[k] = append(byDay[k], e)
	}

	for k, day := range byDay {
		sort.Slice(day, func(i, j int) bool { return day[i].StartSec < day[j].StartSec })
		for i := 1; i < len(day); i++ {
			if day[i].StartSec < day[i-1].EndSec {
				return fmt.Errorf("%w: store %s day %d", ErrScheduleOverlap, k.storeID, k.day)
			}
		}
	}
	return nil
}
