package models

import "time"

// RateCalendarEntry is one calendar day of pricing metadata for a room type.
// Written by host pricing tools; read-only to the booking engine. A date with
// no row has no nightly rate available — it is never defaulted to base price.
type RateCalendarEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomTypeID  uint      `gorm:"not null;uniqueIndex:idx_rate_calendar_day" json:"room_type_id"`
	Day         time.Time `gorm:"type:date;not null;uniqueIndex:idx_rate_calendar_day" json:"day"`
	NightlyRate float64   `gorm:"not null" json:"nightly_rate"`
	MinStay     int       `gorm:"not null;default:1" json:"min_stay"`
	IsBlocked   bool      `gorm:"not null;default:false" json:"is_blocked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
