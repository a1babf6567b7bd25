package schedule

import (
	"sort"
	"time"

	"store-monitor-backend/internal/model"
)

const daySeconds = 24 * 3600

// Interval is a half-open local-time range [StartSec, EndSec) in seconds
// since local midnight.
type Interval struct {
	StartSec int
	EndSec   int
}

// fullDay covers the whole local day.
var fullDay = []Interval{{StartSec: 0, EndSec: daySeconds}}

// Index maps (store, weekday) to that store's declared open intervals.
// Weekdays are 0=Monday..6=Sunday. Built once per report computation so
// lookups never scan the raw entry list.
type Index struct {
	byStore map[string][7][]Interval
}

// NewIndex builds an index from validated business-hours rows. Entries for
// the same store and day are sorted by start time; overlap validation is the
// loader's job and assumed done here.
func NewIndex(entries []model.BusinessHours) *Index {
	byStore := make(map[string][7][]Interval)
	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			continue
		}
		days := byStore[e.StoreID]
		days[e.DayOfWeek] = append(days[e.DayOfWeek], Interval{StartSec: e.StartSec, EndSec: e.EndSec})
		byStore[e.StoreID] = days
	}

	for id, days := range byStore {
		for d := range days {
			sort.Slice(days[d], func(i, j int) bool {
				return days[d][i].StartSec < days[d][j].StartSec
			})
		}
		byStore[id] = days
	}

	return &Index{byStore: byStore}
}

// IntervalsFor returns the open intervals for a store on a weekday
// (0=Monday..6=Sunday).
//
// A store with no declared hours at all is treated as open 24/7. A store
// that declared hours for any day is closed on days it left out: opting into
// a schedule switches off the always-open default.
func (ix *Index) IntervalsFor(storeID string, weekday int) []Interval {
	days, declared := ix.byStore[storeID]
	if !declared {
		return fullDay
	}
	if weekday < 0 || weekday > 6 {
		return nil
	}
	return days[weekday]
}

// Weekday converts a local instant's weekday to the 0=Monday..6=Sunday
// convention used by business-hours rows.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
