package model

// BusinessHours is one declared open interval for a store on one weekday.
// DayOfWeek uses 0=Monday..6=Sunday. Times are local wall-clock seconds
// since midnight, half-open [StartSec, EndSec).
type BusinessHours struct {
	ID        int64  `gorm:"autoIncrement;primaryKey"`
	StoreID   string `gorm:"size:64;not null;index:idx_business_hours_store_day,priority:1"`
	DayOfWeek int    `gorm:"not null;index:idx_business_hours_store_day,priority:2"`
	StartSec  int    `gorm:"not null"`
	EndSec    int    `gorm:"not null"`
}
