// Package timeline turns a store's sparse observation sequence into
// contiguous status intervals with carry-forward semantics.
package timeline

import (
	"time"

	"store-monitor-backend/internal/model"
)

// StatusInterval is a half-open span [Start, End) during which the store is
// assumed to hold a single status. Known is false for the stretch before a
// store's first observation ever; such spans count toward neither uptime nor
// downtime.
type StatusInterval struct {
	Start  time.Time
	End    time.Time
	Status string
	Known  bool
}

// StatusIntervals slices a store's chronological observations into status
// intervals covering [wStart, wEnd).
//
// The status at wStart is carried forward from the latest observation at or
// before wStart. With no such anchor, the lead-in up to the first in-window
// observation is of unknown status. The last observed status persists to
// wEnd. Observations must be ordered by (timestamp, ingestion order); on
// duplicate timestamps the later row wins, the earlier one collapsing to a
// zero-length span that is never emitted.
func StatusIntervals(obs []model.Observation, wStart, wEnd time.Time) []StatusInterval {
	if !wStart.Before(wEnd) {
		return nil
	}

	var (
		out      []StatusInterval
		boundary = wStart
		status   string
		known    bool
	)

	for _, o := range obs {
		if !o.Timestamp.After(wStart) {
			// Anchor candidate; the latest one wins.
			status = o.Status
			known = true
			continue
		}
		if o.Timestamp.After(wEnd) {
			break
		}
		if o.Timestamp.After(boundary) {
			out = append(out, StatusInterval{Start: boundary, End: o.Timestamp, Status: status, Known: known})
		}
		boundary = o.Timestamp
		status = o.Status
		known = true
	}

	if boundary.Before(wEnd) {
		out = append(out, StatusInterval{Start: boundary, End: wEnd, Status: status, Known: known})
	}
	return out
}
