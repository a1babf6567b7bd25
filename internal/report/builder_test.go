package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/store"
)

func testSnapshot() *store.Snapshot {
	ref := utc(2023, 1, 25, 12, 0)
	snap := &store.Snapshot{
		Stores: []model.StoreTimezone{
			{StoreID: "s1", Timezone: "UTC"},
			{StoreID: "s2", Timezone: "UTC"},
			{StoreID: "s3", Timezone: "UTC"}, // no observations
		},
		Observations: map[string][]model.Observation{
			"s1": {
				{StoreID: "s1", Timestamp: utc(2023, 1, 18, 12, 0), Status: model.StatusActive},
			},
			"s2": {
				{StoreID: "s2", Timestamp: utc(2023, 1, 18, 12, 0), Status: model.StatusInactive},
				{StoreID: "s2", Timestamp: utc(2023, 1, 25, 11, 30), Status: model.StatusActive},
				{StoreID: "s2", Timestamp: ref, Status: model.StatusActive},
			},
		},
		MaxTimestamp: ref,
	}
	return snap
}

func TestBuildRowOrderAndValues(t *testing.T) {
	snap := testSnapshot()
	rows, err := Build(context.Background(), snap, 4)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Row order follows snapshot store order regardless of worker completion.
	assert.Equal(t, "s1", rows[0].StoreID)
	assert.Equal(t, "s2", rows[1].StoreID)
	assert.Equal(t, "s3", rows[2].StoreID)

	// s1: continuously active for the whole week (24/7 hours).
	assert.Equal(t, time.Hour, rows[0].UptimeLastHour)
	assert.Equal(t, 24*time.Hour, rows[0].UptimeLastDay)
	assert.Equal(t, 7*24*time.Hour, rows[0].UptimeLastWeek)
	assert.Equal(t, time.Duration(0), rows[0].DowntimeLastWeek)

	// s2: inactive all week until 30 minutes before the reference instant.
	assert.Equal(t, 30*time.Minute, rows[1].UptimeLastHour)
	assert.Equal(t, 30*time.Minute, rows[1].DowntimeLastHour)
	assert.Equal(t, 30*time.Minute, rows[1].UptimeLastDay)
	assert.Equal(t, 23*time.Hour+30*time.Minute, rows[1].DowntimeLastDay)

	// s3: no observations at all, whole window unknown, zero row.
	assert.Equal(t, Row{StoreID: "s3"}, rows[2])
}

func TestBuildWindowsNest(t *testing.T) {
	snap := testSnapshot()
	rows, err := Build(context.Background(), snap, 2)
	require.NoError(t, err)

	for _, r := range rows {
		assert.GreaterOrEqual(t, r.UptimeLastWeek, r.UptimeLastDay, "store %s", r.StoreID)
		assert.GreaterOrEqual(t, r.UptimeLastDay, r.UptimeLastHour, "store %s", r.StoreID)
		assert.GreaterOrEqual(t, r.DowntimeLastWeek, r.DowntimeLastDay, "store %s", r.StoreID)
		assert.GreaterOrEqual(t, r.DowntimeLastDay, r.DowntimeLastHour, "store %s", r.StoreID)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	snap := testSnapshot()

	first, err := Build(context.Background(), snap, 8)
	require.NoError(t, err)
	second, err := Build(context.Background(), snap, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildFailsWithoutAnyObservations(t *testing.T) {
	snap := &store.Snapshot{
		Stores:       []model.StoreTimezone{{StoreID: "s1", Timezone: "UTC"}},
		Observations: map[string][]model.Observation{},
	}

	_, err := Build(context.Background(), snap, 2)
	assert.ErrorIs(t, err, ErrNoObservations)
}

func TestBuildDegradesUnknownTimezoneRow(t *testing.T) {
	ref := utc(2023, 1, 25, 12, 0)
	snap := &store.Snapshot{
		Stores: []model.StoreTimezone{
			{StoreID: "bad", Timezone: "Not/AZone"},
			{StoreID: "good", Timezone: "UTC"},
		},
		Observations: map[string][]model.Observation{
			"bad":  {{StoreID: "bad", Timestamp: ref, Status: model.StatusActive}},
			"good": {{StoreID: "good", Timestamp: ref.Add(-time.Hour), Status: model.StatusActive}},
		},
		MaxTimestamp: ref,
	}

	rows, err := Build(context.Background(), snap, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The bad zone degrades its own row only.
	assert.Equal(t, Row{StoreID: "bad"}, rows[0])
	assert.Equal(t, time.Hour, rows[1].UptimeLastHour)
}

func TestTableUnitsAndHeader(t *testing.T) {
	rows := []Row{{
		StoreID:          "s1",
		UptimeLastHour:   30 * time.Minute,
		UptimeLastDay:    12 * time.Hour,
		UptimeLastWeek:   100 * time.Hour,
		DowntimeLastHour: 15 * time.Minute,
		DowntimeLastDay:  6 * time.Hour,
		DowntimeLastWeek: 68 * time.Hour,
	}}

	records := Table(rows)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"store_id",
		"uptime_last_hour(minutes)",
		"uptime_last_day(hours)",
		"uptime_last_week(hours)",
		"downtime_last_hour(minutes)",
		"downtime_last_day(hours)",
		"downtime_last_week(hours)",
	}, records[0])
	assert.Equal(t, []string{"s1", "30.00", "12.00", "100.00", "15.00", "6.00", "68.00"}, records[1])
}
