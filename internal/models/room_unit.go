package models

import "time"

type UnitStatus string

const (
	UnitActive   UnitStatus = "active"
	UnitInactive UnitStatus = "inactive"
)

// RoomUnit is one physical, individually allocable instance of a room type
// ("Room 204"). Only active units are eligible for allocation.
type RoomUnit struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomTypeID uint       `gorm:"not null;index" json:"room_type_id"`
	Label      string     `json:"label"`
	Status     UnitStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
