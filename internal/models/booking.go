package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking binds one room unit to one guest for [CheckIn, CheckOut).
// CheckOut is exclusive. Invariant: no two confirmed bookings on the same
// unit may have overlapping intervals. Rows are never deleted; cancellation
// is a status transition and availability is derived live from confirmed rows.
type Booking struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Reference     string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	UnitID        uint          `gorm:"not null;index" json:"unit_id"`
	GuestID       string        `gorm:"not null;index" json:"guest_id"`
	CheckIn       time.Time     `gorm:"type:date;not null" json:"check_in"`
	CheckOut      time.Time     `gorm:"type:date;not null" json:"check_out"`
	TotalPrice    float64       `gorm:"not null" json:"total_price"`
	Currency      string        `gorm:"type:varchar(3);not null" json:"currency"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Source        string        `gorm:"type:varchar(40);not null;default:'mobile app'" json:"source"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Unit *RoomUnit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
