package report

import (
	"time"

	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/schedule"
	"store-monitor-backend/internal/timeline"
)

// Window is a half-open UTC range [Start, End) anchored at the dataset's
// reference instant.
type Window struct {
	Start time.Time
	End   time.Time
}

// computeWindow integrates uptime and downtime for one store over one
// window. Each known status interval is clipped to the window and then
// intersected with the store's business hours in its local timezone; the
// surviving duration is summed by status. Unknown spans contribute nothing.
func computeWindow(win Window, loc *time.Location, ix *schedule.Index, storeID string, intervals []timeline.StatusInterval) (uptime, downtime time.Duration) {
	for _, si := range intervals {
		if !si.Known {
			continue
		}
		start := maxTime(si.Start, win.Start)
		end := minTime(si.End, win.End)
		if !start.Before(end) {
			continue
		}
		d := openOverlap(start, end, loc, ix, storeID)
		if si.Status == model.StatusActive {
			uptime += d
		} else {
			downtime += d
		}
	}
	return uptime, downtime
}

// openOverlap measures how much of [start, end) falls within the store's
// declared business hours. The span is walked one local calendar day at a
// time, since business hours are defined per weekday; a span crossing local
// midnight is split there before clipping. Local instants are built with
// time.Date in the store's zone, which keeps wall-clock times correct across
// DST shifts.
func openOverlap(start, end time.Time, loc *time.Location, ix *schedule.Index, storeID string) time.Duration {
	var total time.Duration
	cur := start
	for cur.Before(end) {
		lt := cur.In(loc)
		y, m, d := lt.Date()
		dayEnd := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
		segEnd := minTime(end, dayEnd)

		for _, iv := range ix.IntervalsFor(storeID, schedule.Weekday(lt)) {
			openStart := time.Date(y, m, d, 0, 0, iv.StartSec, 0, loc)
			openEnd := time.Date(y, m, d, 0, 0, iv.EndSec, 0, loc)
			oStart := maxTime(cur, openStart)
			oEnd := minTime(segEnd, openEnd)
			if oStart.Before(oEnd) {
				total += oEnd.Sub(oStart)
			}
		}
		cur = segEnd
	}
	return total
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
