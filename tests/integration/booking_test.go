//go:build integration

package integration

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderstay/booking-engine/internal/models"
	"github.com/wanderstay/booking-engine/internal/service"
)

// Test: 10 guests race for the only unit over the same dates → exactly one wins.
func TestConcurrentSingleUnitAllocation(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Seaside Studio", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	attempts := 10
	var wg sync.WaitGroup
	results := make(chan *models.Booking, attempts)
	errs := make(chan error, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(guestIdx int) {
			defer wg.Done()
			guestID := fmt.Sprintf("guest-%03d", guestIdx)
			booking, err := svc.CreateBooking(t.Context(), guestID, rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
			if err != nil {
				errs <- err
				return
			}
			results <- booking
		}(i)
	}
	wg.Wait()
	close(results)
	close(errs)

	var confirmed int
	for range results {
		confirmed++
	}
	var rejected int
	for err := range errs {
		assert.ErrorIs(t, err, service.ErrNoAvailability)
		rejected++
	}

	assert.Equal(t, 1, confirmed, "exactly one guest should win the unit")
	assert.Equal(t, attempts-1, rejected)

	var dbConfirmed int64
	testDB.Model(&models.Booking{}).Where("status = ?", models.StatusConfirmed).Count(&dbConfirmed)
	assert.Equal(t, int64(1), dbConfirmed)
}

// Test: two units, five racing guests → exactly two succeed on distinct units.
func TestConcurrentAllocationAcrossUnits(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Garden Twin", 100, nil, nil)
	createUnits(t, rt.ID, 2)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	attempts := 5
	var wg sync.WaitGroup
	results := make(chan *models.Booking, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(guestIdx int) {
			defer wg.Done()
			booking, err := svc.CreateBooking(t.Context(), fmt.Sprintf("guest-%03d", guestIdx), rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
			if err == nil {
				results <- booking
			}
		}(i)
	}
	wg.Wait()
	close(results)

	units := map[uint]bool{}
	for b := range results {
		assert.False(t, units[b.UnitID], "unit %d allocated twice", b.UnitID)
		units[b.UnitID] = true
	}
	assert.Len(t, units, 2, "both units should be allocated exactly once")
}

// Property: random overlapping attempts never produce overlapping confirmed
// bookings on the same unit.
func TestNonOverlapInvariantUnderRandomLoad(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Loft 5", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 30, 100, 1)
	svc := newBookingService()

	rng := rand.New(rand.NewSource(42))
	type attempt struct{ start, nights int }
	attempts := make([]attempt, 20)
	for i := range attempts {
		attempts[i] = attempt{start: rng.Intn(25), nights: 1 + rng.Intn(5)}
	}

	var wg sync.WaitGroup
	wg.Add(len(attempts))
	for i, a := range attempts {
		go func(idx int, a attempt) {
			defer wg.Done()
			checkIn := date(2025, 12, 1).AddDate(0, 0, a.start)
			_, _ = svc.CreateBooking(t.Context(), fmt.Sprintf("guest-%03d", idx), rt.ID, checkIn, checkIn.AddDate(0, 0, a.nights), "")
		}(i, a)
	}
	wg.Wait()

	var overlaps int64
	testDB.Raw(`
		SELECT COUNT(*) FROM bookings a
		JOIN bookings b ON a.unit_id = b.unit_id AND a.id < b.id
		WHERE a.status = 'confirmed' AND b.status = 'confirmed'
		  AND NOT (a.check_out <= b.check_in OR a.check_in >= b.check_out)
	`).Scan(&overlaps)
	assert.Zero(t, overlaps, "no pair of confirmed bookings may overlap on a unit")

	var confirmed int64
	testDB.Model(&models.Booking{}).Where("status = ?", models.StatusConfirmed).Count(&confirmed)
	assert.Positive(t, confirmed, "at least one attempt should have landed")
}

// Test: allocation is deterministic — lowest free unit id wins.
func TestAllocationPrefersLowestUnitID(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Courtyard Room", 100, nil, nil)
	units := createUnits(t, rt.ID, 3)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	b1, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)
	assert.Equal(t, units[0].ID, b1.UnitID)

	b2, err := svc.CreateBooking(t.Context(), "guest-2", rt.ID, date(2025, 12, 2), date(2025, 12, 5), "")
	require.NoError(t, err)
	assert.Equal(t, units[1].ID, b2.UnitID)
}

// Test: inactive units are never allocated.
func TestInactiveUnitNotAllocated(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Annex Room", 100, nil, nil)
	units := createUnits(t, rt.ID, 1)
	require.NoError(t, testDB.Model(&units[0]).Update("status", models.UnitInactive).Error)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	_, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	assert.ErrorIs(t, err, service.ErrNoAvailability)
}

// Test: back-to-back stays do not conflict — check-out day is exclusive.
func TestBackToBackStaysShareTurnoverDay(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Harbor View", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	_, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)

	_, err = svc.CreateBooking(t.Context(), "guest-2", rt.ID, date(2025, 12, 4), date(2025, 12, 7), "")
	require.NoError(t, err, "stay starting on the previous check-out day must be allowed")
}

// Test: a blocked day inside the range rejects the booking with zero writes.
func TestBlockedDatesRejected(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Pool Suite", 100, nil, nil)
	createUnits(t, rt.ID, 2)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	blockDay(t, rt.ID, date(2025, 12, 2))
	svc := newBookingService()

	_, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	assert.ErrorIs(t, err, service.ErrDatesBlocked)

	var count int64
	testDB.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count, "rejection must leave no rows behind")
}

// Test: stay shorter than the strictest applicable minimum is rejected, and
// the message names the required minimum.
func TestMinimumStayEnforced(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Chalet", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 3)
	svc := newBookingService()

	_, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 3), "")
	require.ErrorIs(t, err, service.ErrMinimumStayNotMet)
	assert.Contains(t, err.Error(), "minimum stay of 3 nights required")

	// Three nights satisfies it
	_, err = svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)
}

// Test: cancelling a booking frees its unit for the same dates.
func TestCancellationFreesUnit(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Cabin", 100, nil, nil)
	units := createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	b1, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)

	_, err = svc.CreateBooking(t.Context(), "guest-2", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	assert.ErrorIs(t, err, service.ErrNoAvailability)

	_, err = svc.CancelBooking(t.Context(), b1.ID, "guest-1")
	require.NoError(t, err)

	b2, err := svc.CreateBooking(t.Context(), "guest-2", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)
	assert.Equal(t, units[0].ID, b2.UnitID)
}

// Test: the second cancel is a reported failure that changes nothing.
func TestIdempotentCancellation(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Studio 9", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	booking, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)

	_, err = svc.CancelBooking(t.Context(), booking.ID, "guest-1")
	require.NoError(t, err)

	var afterFirst models.Booking
	require.NoError(t, testDB.First(&afterFirst, booking.ID).Error)

	attached, err := svc.CancelBooking(t.Context(), booking.ID, "guest-1")
	assert.ErrorIs(t, err, service.ErrAlreadyCancelled)
	require.NotNil(t, attached)
	assert.Equal(t, models.StatusCancelled, attached.Status)

	var afterSecond models.Booking
	require.NoError(t, testDB.First(&afterSecond, booking.ID).Error)
	assert.True(t, afterFirst.UpdatedAt.Equal(afterSecond.UpdatedAt), "second cancel must not touch the row")
}

// Test: cancelling someone else's booking reads as not found.
func TestCancelOwnershipMismatch(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Bungalow", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	booking, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)

	_, err = svc.CancelBooking(t.Context(), booking.ID, "guest-2")
	assert.ErrorIs(t, err, service.ErrBookingNotFound)

	var fresh models.Booking
	require.NoError(t, testDB.First(&fresh, booking.ID).Error)
	assert.Equal(t, models.StatusConfirmed, fresh.Status)
}

func TestCreateBookingUnknownRoomType(t *testing.T) {
	cleanTables()
	svc := newBookingService()

	_, err := svc.CreateBooking(t.Context(), "guest-1", 99999, date(2025, 12, 1), date(2025, 12, 4), "")
	assert.ErrorIs(t, err, service.ErrRoomTypeNotFound)
}

func TestCreateBookingInvalidRange(t *testing.T) {
	cleanTables()
	svc := newBookingService()

	_, err := svc.CreateBooking(t.Context(), "guest-1", 1, date(2025, 12, 4), date(2025, 12, 1), "")
	assert.ErrorIs(t, err, service.ErrInvalidRange)
}

// Test: source channel defaults and persists; totals come from the calculator.
func TestCreateBookingPersistsPriceAndSource(t *testing.T) {
	cleanTables()
	rt := createRoomType(t, "Deluxe King", 100, nil, nil)
	createUnits(t, rt.ID, 1)
	seedCalendar(t, rt.ID, date(2025, 12, 1), 10, 100, 1)
	svc := newBookingService()

	booking, err := svc.CreateBooking(t.Context(), "guest-1", rt.ID, date(2025, 12, 1), date(2025, 12, 4), "")
	require.NoError(t, err)

	assert.Equal(t, 380.0, booking.TotalPrice, "3 nights x $100 + $50 cleaning + 10% service")
	assert.Equal(t, "USD", booking.Currency)
	assert.Equal(t, "mobile app", booking.Source)
	assert.Equal(t, models.PaymentUnpaid, booking.PaymentStatus)
	assert.NotEmpty(t, booking.Reference)
}
