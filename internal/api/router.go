package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"store-monitor-backend/config"
	"store-monitor-backend/internal/mw"
	"store-monitor-backend/internal/report"
	"store-monitor-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(reports *report.Service, s store.Store, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(reports, s)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// The stores listing only changes on re-ingestion, so it is cached.
		api.GET("/stores", caching, handler.GetStores)

		// Report endpoints are never cached: polling must observe the
		// Running -> terminal transition.
		api.POST("/trigger_report", handler.TriggerReport)
		api.GET("/get_report", handler.GetReport)
	}

	return r
}
