package repository

import (
	"context"
	"time"

	"github.com/wanderstay/booking-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalendarRepository covers the per-day rate calendar and the duration
// discount table. Both are read-only on the booking path, so no method here
// takes a transaction handle.
type CalendarRepository interface {
	EntriesInRange(ctx context.Context, roomTypeID uint, from, to time.Time) ([]models.RateCalendarEntry, error)
	UpsertEntries(ctx context.Context, entries []models.RateCalendarEntry) error
	DiscountFor(ctx context.Context, roomTypeID uint, stayType models.StayType) (*models.DurationDiscount, error)
	SetDiscount(ctx context.Context, d *models.DurationDiscount) error
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

// EntriesInRange returns calendar rows for days in [from, to), ordered by day.
// Days without a row are simply absent from the result.
func (r *calendarRepository) EntriesInRange(ctx context.Context, roomTypeID uint, from, to time.Time) ([]models.RateCalendarEntry, error) {
	var entries []models.RateCalendarEntry
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND day >= ? AND day < ?", roomTypeID, from, to).
		Order("day ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertEntries inserts or updates one row per (room type, day).
func (r *calendarRepository) UpsertEntries(ctx context.Context, entries []models.RateCalendarEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"nightly_rate", "min_stay", "is_blocked", "updated_at"}),
	}).Create(&entries).Error
}

func (r *calendarRepository) DiscountFor(ctx context.Context, roomTypeID uint, stayType models.StayType) (*models.DurationDiscount, error) {
	var d models.DurationDiscount
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND stay_type = ?", roomTypeID, stayType).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *calendarRepository) SetDiscount(ctx context.Context, d *models.DurationDiscount) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_type_id"}, {Name: "stay_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_percent", "updated_at"}),
	}).Create(d).Error
}
