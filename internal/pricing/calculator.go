package pricing

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/wanderstay/booking-engine/internal/models"
	"github.com/wanderstay/booking-engine/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange     = errors.New("check-out must be after check-in")
	ErrRoomTypeNotFound = errors.New("room type not found")
)

// Regime is the pricing rule governing a stay, selected by total nights.
type Regime string

const (
	RegimeNightly Regime = "nightly" // n < 7
	RegimeWeekly  Regime = "weekly"  // 7 <= n < 28
	RegimeMonthly Regime = "monthly" // n >= 28
)

// Breakdown itemizes a quote down to every fee and discount so invoices can
// reproduce the arithmetic.
type Breakdown struct {
	Nights          int     `json:"nights"`
	Regime          Regime  `json:"regime"`
	Subtotal        float64 `json:"subtotal"`
	PeriodRate      float64 `json:"period_rate"`
	PeriodType      string  `json:"period_type"`
	CleaningFee     float64 `json:"cleaning_fee"`
	ServiceFee      float64 `json:"service_fee"`
	Discount        float64 `json:"discount"`
	DiscountPercent float64 `json:"discount_percent"`
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
}

// Calculator computes price breakdowns from the rate calendar and discount
// table. Pure read path: no side effects, safe to call repeatedly.
type Calculator struct {
	roomTypes         repository.RoomTypeRepository
	calendar          repository.CalendarRepository
	cleaningFee       float64
	serviceFeePercent float64
}

func NewCalculator(roomTypes repository.RoomTypeRepository, calendar repository.CalendarRepository, cleaningFee, serviceFeePercent float64) *Calculator {
	return &Calculator{
		roomTypes:         roomTypes,
		calendar:          calendar,
		cleaningFee:       cleaningFee,
		serviceFeePercent: serviceFeePercent,
	}
}

// Nights counts calendar nights in [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func (c *Calculator) Quote(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (*Breakdown, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	rt, err := c.roomTypes.FindByID(ctx, roomTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}

	n := Nights(checkIn, checkOut)
	b := &Breakdown{Nights: n, Currency: rt.Currency}

	switch {
	case n < 7:
		// Nightly regime: sum the calendar rows actually present. Days with
		// no row contribute nothing (rate-gap policy: skip, never default).
		entries, err := c.calendar.EntriesInRange(ctx, roomTypeID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			b.Subtotal += e.NightlyRate
		}
		b.Regime = RegimeNightly
		b.PeriodType = "night"

	case n < 28:
		weeks := n / 7
		rate := rt.BasePrice * 7
		if rt.WeeklyRate != nil {
			rate = *rt.WeeklyRate
		}
		b.Regime = RegimeWeekly
		b.PeriodType = "week"
		b.PeriodRate = rate
		b.Subtotal = rate * float64(weeks)
		if err := c.applyDiscount(ctx, b, roomTypeID, models.StayWeekly); err != nil {
			return nil, err
		}

	default:
		months := n / 30
		rate := rt.BasePrice * 30
		if rt.MonthlyRate != nil {
			rate = *rt.MonthlyRate
		}
		b.Regime = RegimeMonthly
		b.PeriodType = "month"
		b.PeriodRate = rate
		b.Subtotal = rate * float64(months)
		if err := c.applyDiscount(ctx, b, roomTypeID, models.StayMonthly); err != nil {
			return nil, err
		}
	}

	b.Subtotal = roundCents(b.Subtotal)
	b.CleaningFee = c.cleaningFee
	b.ServiceFee = roundCents(b.Subtotal * c.serviceFeePercent / 100)
	b.Total = roundCents(b.Subtotal + b.CleaningFee + b.ServiceFee)
	return b, nil
}

func (c *Calculator) applyDiscount(ctx context.Context, b *Breakdown, roomTypeID uint, stayType models.StayType) error {
	d, err := c.calendar.DiscountFor(ctx, roomTypeID, stayType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	b.DiscountPercent = d.DiscountPercent
	b.Discount = roundCents(b.Subtotal * d.DiscountPercent / 100)
	b.Subtotal -= b.Discount
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
