package database

import (
	"log"

	"github.com/wanderstay/booking-engine/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.RoomUnit{},
		&models.RateCalendarEntry{},
		&models.DurationDiscount{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	ApplyConstraints(db)

	return db
}

// ApplyConstraints installs the exclusion constraint that makes overlapping
// confirmed bookings on the same unit impossible at the database level, even
// if application-level locking were ever bypassed.
func ApplyConstraints(db *gorm.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_confirmed_no_overlap`)
	db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT bookings_confirmed_no_overlap
		EXCLUDE USING gist (unit_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
		WHERE (status = 'confirmed')
	`)
}
