package repository

import (
	"context"
	"time"

	"github.com/wanderstay/booking-engine/internal/models"
	"gorm.io/gorm"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.RoomUnit) error
	FindByID(ctx context.Context, id uint) (*models.RoomUnit, error)
	UpdateStatus(ctx context.Context, unitID uint, status models.UnitStatus) error
	// FindAvailable returns the lowest-id active unit of the room type with no
	// confirmed booking overlapping [checkIn, checkOut). Must run inside the
	// same transaction as the booking insert; the caller is responsible for
	// holding the room-type row lock that serializes concurrent allocations.
	FindAvailable(ctx context.Context, tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (*models.RoomUnit, error)
	CountAvailable(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (int64, error)
}

type unitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, unit *models.RoomUnit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) FindByID(ctx context.Context, id uint) (*models.RoomUnit, error) {
	var unit models.RoomUnit
	if err := r.db.WithContext(ctx).First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) UpdateStatus(ctx context.Context, unitID uint, status models.UnitStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.RoomUnit{}).
		Where("id = ?", unitID).
		Update("status", status).Error
}

// occupiedUnits is the subquery of unit ids holding a confirmed booking that
// overlaps [checkIn, checkOut). Half-open interval overlap test.
func occupiedUnits(tx *gorm.DB, checkIn, checkOut time.Time) *gorm.DB {
	return tx.Model(&models.Booking{}).
		Select("unit_id").
		Where("status = ?", models.StatusConfirmed).
		Where("NOT (check_out <= ? OR check_in >= ?)", checkIn, checkOut)
}

func (r *unitRepository) FindAvailable(ctx context.Context, tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (*models.RoomUnit, error) {
	var unit models.RoomUnit
	err := tx.WithContext(ctx).
		Where("room_type_id = ? AND status = ?", roomTypeID, models.UnitActive).
		Where("id NOT IN (?)", occupiedUnits(tx, checkIn, checkOut)).
		Order("id ASC").
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) CountAvailable(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RoomUnit{}).
		Where("room_type_id = ? AND status = ?", roomTypeID, models.UnitActive).
		Where("id NOT IN (?)", occupiedUnits(r.db, checkIn, checkOut)).
		Count(&count).Error
	return count, err
}
