package model

// StoreTimezone maps a monitored store to its IANA timezone.
// Stores without a row default to schedule.DefaultTimezone at snapshot time.
type StoreTimezone struct {
	StoreID  string `gorm:"primaryKey;size:64"`
	Timezone string `gorm:"size:100;not null"`
}
