package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"store-monitor-backend/internal/model"
	"store-monitor-backend/internal/store"
)

// TriggerReport handles POST /api/trigger_report. It registers a job and
// returns its id without waiting for the computation.
func (h *Handler) TriggerReport(c *gin.Context) {
	reportID, err := h.reports.Trigger(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger report"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"report_id": reportID})
}

// GetReport handles GET /api/get_report?report_id=X. An id that was never
// issued returns NotFound, which is distinct from a job that Failed.
func (h *Handler) GetReport(c *gin.Context) {
	reportID := c.Query("report_id")
	if reportID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "report_id is required"})
		return
	}

	job, err := h.reports.Get(c.Request.Context(), reportID)
	if errors.Is(err, store.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "NotFound"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up report"})
		return
	}

	switch job.Status {
	case model.ReportStatusComplete:
		c.JSON(http.StatusOK, gin.H{"status": job.Status, "report_csv": job.CSV})
	case model.ReportStatusFailed:
		c.JSON(http.StatusOK, gin.H{"status": job.Status, "error": job.Error})
	default:
		c.JSON(http.StatusOK, gin.H{"status": job.Status})
	}
}
