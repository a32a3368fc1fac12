package dto

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date (no time component).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

type CreateBookingRequest struct {
	GuestID  string `json:"guest_id" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Source   string `json:"source" validate:"omitempty,max=40"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type CreateRoomTypeRequest struct {
	PropertyID  uint     `json:"property_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	BasePrice   float64  `json:"base_price" validate:"required,gt=0"`
	WeeklyRate  *float64 `json:"weekly_rate" validate:"omitempty,gt=0"`
	MonthlyRate *float64 `json:"monthly_rate" validate:"omitempty,gt=0"`
	Currency    string   `json:"currency" validate:"omitempty,len=3,uppercase"`
}

type CalendarDayRequest struct {
	Day         string  `json:"day" validate:"required,datetime=2006-01-02"`
	NightlyRate float64 `json:"nightly_rate" validate:"gte=0"`
	MinStay     int     `json:"min_stay" validate:"omitempty,gte=1"`
	IsBlocked   bool    `json:"is_blocked"`
}

type UpsertCalendarRequest struct {
	Entries []CalendarDayRequest `json:"entries" validate:"required,min=1,dive"`
}

type SetDiscountRequest struct {
	StayType        string  `json:"stay_type" validate:"required,oneof=weekly monthly"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

type CreateUnitRequest struct {
	Label string `json:"label" validate:"required"`
}

type UpdateUnitRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}
