package repository

import (
	"context"

	"github.com/wanderstay/booking-engine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomTypeRepository interface {
	Create(ctx context.Context, rt *models.RoomType) error
	FindByID(ctx context.Context, id uint) (*models.RoomType, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RoomType, error)
}

type roomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) RoomTypeRepository {
	return &roomTypeRepository{db: db}
}

func (r *roomTypeRepository) Create(ctx context.Context, rt *models.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *roomTypeRepository) FindByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// FindByIDForUpdate acquires a row-level lock on the room type within the
// given transaction. This serializes concurrent booking attempts against the
// same room type for the duration of the allocation.
func (r *roomTypeRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}
