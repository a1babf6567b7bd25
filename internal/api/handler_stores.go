package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store-monitor-backend/internal/schedule"
)

// StoreResponse represents one monitored store in the listing.
type StoreResponse struct {
	StoreID  string `json:"store_id"`
	Timezone string `json:"timezone"`
}

// GetStores handles the GET /api/stores request.
func (h *Handler) GetStores(c *gin.Context) {
	stores, err := h.store.ListStores(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stores"})
		return
	}

	responses := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		tz := s.Timezone
		if tz == "" {
			tz = schedule.DefaultTimezone
		}
		responses = append(responses, StoreResponse{StoreID: s.StoreID, Timezone: tz})
	}
	c.JSON(http.StatusOK, responses)
}
