package models

import "time"

// RoomType is a bookable category of accommodation with a pricing policy.
// Rates are per night; weekly/monthly rates are optional period prices used
// by the longer-stay pricing regimes.
type RoomType struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	PropertyID  uint     `gorm:"not null;index" json:"property_id"`
	Name        string   `gorm:"not null" json:"name"`
	BasePrice   float64  `gorm:"not null" json:"base_price"`
	WeeklyRate  *float64 `json:"weekly_rate,omitempty"`
	MonthlyRate *float64 `json:"monthly_rate,omitempty"`
	Currency    string   `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
