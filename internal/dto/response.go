package dto

import (
	"time"

	"github.com/wanderstay/booking-engine/internal/models"
)

type BookingResponse struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	UnitID        uint                 `json:"unit_id"`
	GuestID       string               `json:"guest_id"`
	CheckIn       string               `json:"check_in"`
	CheckOut      string               `json:"check_out"`
	TotalPrice    float64              `json:"total_price"`
	Currency      string               `json:"currency"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Source        string               `json:"source"`
	CreatedAt     time.Time            `json:"created_at"`
}

// BookingResult is the structured outcome for booking mutations. Business-rule
// rejections come back as Success=false with a message the caller can render
// directly; only infrastructure failures surface as plain HTTP errors.
type BookingResult struct {
	Success bool             `json:"success"`
	Booking *BookingResponse `json:"booking,omitempty"`
	Message string           `json:"message,omitempty"`
	Errors  []string         `json:"errors,omitempty"`
}

type AvailabilityResponse struct {
	RoomTypeID     uint   `json:"room_type_id"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	UnitsAvailable int64  `json:"units_available"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		UnitID:        b.UnitID,
		GuestID:       b.GuestID,
		CheckIn:       FormatDate(b.CheckIn),
		CheckOut:      FormatDate(b.CheckOut),
		TotalPrice:    b.TotalPrice,
		Currency:      b.Currency,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Source:        b.Source,
		CreatedAt:     b.CreatedAt,
	}
}

func ResultOK(b *models.Booking) BookingResult {
	return BookingResult{Success: true, Booking: ToBookingResponse(b)}
}

func ResultFail(message string, b *models.Booking) BookingResult {
	res := BookingResult{Success: false, Message: message, Errors: []string{message}}
	if b != nil {
		res.Booking = ToBookingResponse(b)
	}
	return res
}
