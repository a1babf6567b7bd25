package model

import "time"

// Observation statuses as they appear in the polling data.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Observation is a single polled status sample for a store.
// Seq preserves ingestion order so duplicate timestamps break ties stably.
type Observation struct {
	Seq       int64     `gorm:"autoIncrement;primaryKey"`
	StoreID   string    `gorm:"size:64;not null;index:idx_observation_store_ts,priority:1"`
	Timestamp time.Time `gorm:"not null;index:idx_observation_store_ts,priority:2"`
	Status    string    `gorm:"size:10;not null"`
}
