package report

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/schedule"
	"store-monitor-backend/internal/store"
	"store-monitor-backend/internal/timeline"
)

// ErrNoObservations means the dataset holds no observations anywhere, so no
// reference instant exists and the whole job must fail.
var ErrNoObservations = errors.New("no observations in dataset")

// Row is one store's report line: uptime/downtime within business hours for
// the trailing hour, day and week windows.
type Row struct {
	StoreID          string
	UptimeLastHour   time.Duration
	UptimeLastDay    time.Duration
	UptimeLastWeek   time.Duration
	DowntimeLastHour time.Duration
	DowntimeLastDay  time.Duration
	DowntimeLastWeek time.Duration
}

var windowSpans = [3]time.Duration{time.Hour, 24 * time.Hour, 7 * 24 * time.Hour}

// Build computes a report row per store in the snapshot. The reference
// instant is the dataset's max observation timestamp, so reports anchor to
// when data actually exists rather than wall-clock time.
//
// Stores are fanned out across the given number of workers. Each worker
// reads only its store's share of the immutable snapshot and writes into a
// pre-assigned slot, so row order matches snapshot store order no matter
// which worker finishes first.
func Build(ctx context.Context, snap *store.Snapshot, workers int) ([]Row, error) {
	if snap.MaxTimestamp.IsZero() {
		return nil, ErrNoObservations
	}
	if workers < 1 {
		workers = 1
	}

	ix := schedule.NewIndex(snap.BusinessHours)
	rows := make([]Row, len(snap.Stores))
	jobs := make(chan int, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				st := snap.Stores[i]
				rows[i] = buildRow(st, ix, snap.Observations[st.StoreID], snap.MaxTimestamp)
			}
		}()
	}

	var dispatchErr error
dispatch:
	for i := range snap.Stores {
		select {
		case jobs <- i:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if dispatchErr != nil {
		return nil, dispatchErr
	}
	return rows, nil
}

// buildRow computes the three windows for one store. An unresolvable
// timezone degrades this row to zeros instead of aborting the report; a
// store with no observations falls out the same way because its whole window
// is unknown status.
func buildRow(st model.StoreTimezone, ix *schedule.Index, obs []model.Observation, ref time.Time) Row {
	row := Row{StoreID: st.StoreID}

	loc, err := schedule.Resolve(st.Timezone)
	if err != nil {
		log.Printf("store %s: %v; emitting empty row", st.StoreID, err)
		return row
	}

	for i, span := range windowSpans {
		win := Window{Start: ref.Add(-span), End: ref}
		intervals := timeline.StatusIntervals(obs, win.Start, win.End)
		up, down := computeWindow(win, loc, ix, st.StoreID, intervals)
		switch i {
		case 0:
			row.UptimeLastHour, row.DowntimeLastHour = up, down
		case 1:
			row.UptimeLastDay, row.DowntimeLastDay = up, down
		case 2:
			row.UptimeLastWeek, row.DowntimeLastWeek = up, down
		}
	}
	return row
}
