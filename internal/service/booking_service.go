package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wanderstay/booking-engine/internal/models"
	"github.com/wanderstay/booking-engine/internal/pricing"
	"github.com/wanderstay/booking-engine/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrRoomTypeNotFound  = errors.New("room type not found")
	ErrMinimumStayNotMet = errors.New("minimum stay not met")
	ErrDatesBlocked      = errors.New("selected dates contain blocked periods")
	ErrNoAvailability    = errors.New("no units available for selected dates")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
)

const DefaultSource = "mobile app"

type BookingService interface {
	CreateBooking(ctx context.Context, guestID string, roomTypeID uint, checkIn, checkOut time.Time, source string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint, guestID string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID uint, status models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error)
	ApplyPaymentResult(ctx context.Context, bookingID uint, status models.PaymentStatus) error
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	roomTypeRepo repository.RoomTypeRepository
	unitRepo     repository.UnitRepository
	calendarRepo repository.CalendarRepository
	calculator   *pricing.Calculator
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomTypeRepo repository.RoomTypeRepository,
	unitRepo repository.UnitRepository,
	calendarRepo repository.CalendarRepository,
	calculator *pricing.Calculator,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		roomTypeRepo: roomTypeRepo,
		unitRepo:     unitRepo,
		calendarRepo: calendarRepo,
		calculator:   calculator,
	}
}

// CreateBooking validates the stay, allocates a unit and inserts the booking
// as one transaction. Business-rule rejections come back as sentinel errors
// with nothing written; any other error rolls the transaction back.
func (s *bookingService) CreateBooking(ctx context.Context, guestID string, roomTypeID uint, checkIn, checkOut time.Time, source string) (*models.Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}
	if source == "" {
		source = DefaultSource
	}

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the room type row — serializes concurrent allocation
		// attempts for the same room type.
		_, err := s.roomTypeRepo.FindByIDForUpdate(ctx, tx, roomTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomTypeNotFound
			}
			return err
		}

		// 2. Minimum stay and blocked dates from the rate calendar
		entries, err := s.calendarRepo.EntriesInRange(ctx, roomTypeID, checkIn, checkOut)
		if err != nil {
			return err
		}

		nights := pricing.Nights(checkIn, checkOut)
		minStay := 1
		blocked := 0
		for i, e := range entries {
			if i == 0 || e.MinStay < minStay {
				minStay = e.MinStay
			}
			if e.IsBlocked {
				blocked++
			}
		}
		if nights < minStay {
			return fmt.Errorf("%w: minimum stay of %d nights required", ErrMinimumStayNotMet, minStay)
		}
		if blocked > 0 {
			return ErrDatesBlocked
		}

		// 3. Allocate one free unit
		unit, err := s.unitRepo.FindAvailable(ctx, tx, roomTypeID, checkIn, checkOut)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoAvailability
			}
			return err
		}

		// 4. Price the stay
		quote, err := s.calculator.Quote(ctx, roomTypeID, checkIn, checkOut)
		if err != nil {
			return err
		}

		// 5. Insert. Status is confirmed at creation; the payment collaborator
		// later flips payment_status, never status.
		booking := &models.Booking{
			Reference:     uuid.NewString(),
			UnitID:        unit.ID,
			GuestID:       guestID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			TotalPrice:    quote.Total,
			Currency:      quote.Currency,
			Status:        models.StatusConfirmed,
			PaymentStatus: models.PaymentUnpaid,
			Source:        source,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})

	return result, err
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListGuestBookings(ctx context.Context, guestID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByGuestID(ctx, guestID)
}
