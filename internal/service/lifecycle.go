package service

import (
	"context"
	"errors"
	"log"

	"github.com/wanderstay/booking-engine/internal/models"
	"gorm.io/gorm"
)

// CancelBooking sets the booking to cancelled. Inventory is not released
// explicitly: availability is always derived from confirmed rows, so the
// status flip alone frees the unit for future allocations. An ownership
// mismatch is reported as not found. Cancelling twice fails with the
// already-cancelled row attached and no write performed.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint, guestID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, ErrBookingNotFound
	}
	if booking.Status == models.StatusCancelled {
		return booking, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, s.bookingRepo.GetDB(), bookingID, models.StatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCancelled
	return booking, nil
}

// UpdateBookingStatus is the administrative override. No business-rule checks
// beyond existence; authorization is enforced by the transport layer.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, s.bookingRepo.GetDB(), bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status
	return booking, nil
}

// ApplyPaymentResult records the payment collaborator's verdict for a booking.
func (s *bookingService) ApplyPaymentResult(ctx context.Context, bookingID uint, status models.PaymentStatus) error {
	if _, err := s.bookingRepo.FindByID(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, status); err != nil {
		return err
	}
	log.Printf("booking %d payment_status -> %s", bookingID, status)
	return nil
}
