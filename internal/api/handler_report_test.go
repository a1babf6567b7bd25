package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"store-monitor-backend/config"
	"store-monitor-backend/internal/artifact"
	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/report"
	"store-monitor-backend/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: would get its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.StoreTimezone{},
		&model.BusinessHours{},
		&model.Observation{},
		&model.Report{},
	))

	s := store.NewGormStore(db)
	artifacts, err := artifact.NewStore(t.TempDir())
	require.NoError(t, err)

	svc := report.NewService(s, artifacts, 2)
	cfg := &config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTLSeconds: 1}
	return NewRouter(svc, s, cfg), s
}

func seedDataset(t *testing.T, s store.Store) {
	t.Helper()
	ref := time.Date(2023, 1, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.ReplaceDataset(context.Background(),
		[]model.StoreTimezone{{StoreID: "s1", Timezone: "UTC"}},
		nil,
		[]model.Observation{
			{StoreID: "s1", Timestamp: ref.Add(-2 * time.Hour), Status: model.StatusActive},
			{StoreID: "s1", Timestamp: ref, Status: model.StatusActive},
		},
		100,
	))
}

func doJSON(t *testing.T, r *gin.Engine, method, target string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func triggerAndWait(t *testing.T, r *gin.Engine) (string, map[string]any) {
	t.Helper()
	code, body := doJSON(t, r, http.MethodPost, "/api/trigger_report")
	require.Equal(t, http.StatusAccepted, code)
	reportID, ok := body["report_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, reportID)

	var last map[string]any
	require.Eventually(t, func() bool {
		_, last = doJSON(t, r, http.MethodGet, "/api/get_report?report_id="+reportID)
		return last["status"] != model.ReportStatusRunning
	}, 5*time.Second, 10*time.Millisecond)
	return reportID, last
}

func TestTriggerAndGetReport(t *testing.T) {
	r, s := newTestRouter(t)
	seedDataset(t, s)

	reportID, result := triggerAndWait(t, r)
	assert.NotEmpty(t, reportID)
	require.Equal(t, model.ReportStatusComplete, result["status"])

	csvText, ok := result["report_csv"].(string)
	require.True(t, ok)
	assert.Contains(t, csvText, "store_id,uptime_last_hour(minutes),uptime_last_day(hours),uptime_last_week(hours),downtime_last_hour(minutes),downtime_last_day(hours),downtime_last_week(hours)")
	// s1 was active for the whole trailing hour of a 24/7 store.
	assert.Contains(t, csvText, "s1,60.00")
}

func TestRepeatedTriggersAreDeterministic(t *testing.T) {
	r, s := newTestRouter(t)
	seedDataset(t, s)

	id1, res1 := triggerAndWait(t, r)
	id2, res2 := triggerAndWait(t, r)

	assert.NotEqual(t, id1, id2)
	require.Equal(t, model.ReportStatusComplete, res1["status"])
	require.Equal(t, model.ReportStatusComplete, res2["status"])
	assert.Equal(t, res1["report_csv"], res2["report_csv"])
}

func TestGetReportNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodGet, "/api/get_report?report_id=never-issued")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", body["status"])
}

func TestGetReportRequiresID(t *testing.T) {
	r, _ := newTestRouter(t)

	code, _ := doJSON(t, r, http.MethodGet, "/api/get_report")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReportFailsOnEmptyDataset(t *testing.T) {
	r, _ := newTestRouter(t)

	_, result := triggerAndWait(t, r)
	require.Equal(t, model.ReportStatusFailed, result["status"])
	assert.Contains(t, result["error"], "no observations")
}

func TestGetStores(t *testing.T) {
	r, s := newTestRouter(t)
	require.NoError(t, s.ReplaceDataset(context.Background(),
		[]model.StoreTimezone{
			{StoreID: "s1", Timezone: "America/Denver"},
			{StoreID: "s2", Timezone: ""},
		},
		nil, nil, 100,
	))

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body []StoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "America/Denver", body[0].Timezone)
	// Stores without a timezone row surface the documented default.
	assert.Equal(t, "America/Chicago", body[1].Timezone)
}
