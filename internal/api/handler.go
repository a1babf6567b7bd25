package api

import (
	"store-monitor-backend/internal/report"
	"store-monitor-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	reports *report.Service
	store   store.Store
}

// NewHandler creates a new API handler.
func NewHandler(reports *report.Service, s store.Store) *Handler {
	return &Handler{
		reports: reports,
		store:   s,
	}
}
