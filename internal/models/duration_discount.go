package models

import "time"

type StayType string

const (
	StayWeekly  StayType = "weekly"
	StayMonthly StayType = "monthly"
)

// DurationDiscount is a percentage off the period subtotal for weekly or
// monthly stays. At most one row per (room type, stay type); absence means
// zero discount.
type DurationDiscount struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	RoomTypeID      uint     `gorm:"not null;uniqueIndex:idx_discount_stay_type" json:"room_type_id"`
	StayType        StayType `gorm:"type:varchar(10);not null;uniqueIndex:idx_discount_stay_type" json:"stay_type"`
	DiscountPercent float64  `gorm:"not null" json:"discount_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
