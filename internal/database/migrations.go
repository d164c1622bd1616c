package database

import (
	"github.com/kungucharles/shereheni-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.Vendor{},
		&models.VendorProduct{},
		&models.Booking{},
		&models.Payment{},
		&models.Coupon{},
		&models.Review{},
		&models.NotificationPreference{},
	)
	if err != nil {
		return err
	}

	// Update vendors table
	if db.Migrator().HasTable(&models.Vendor{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS business_name text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS city text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS points numeric DEFAULT 0",
			"ADD COLUMN IF NOT EXISTS fcm_token text DEFAULT ''",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE vendors " + column).Error; err != nil {
				return err
			}
		}
	}

	// Booking status must only hold known lifecycle values
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
	db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN
		('REQUESTED', 'APPROVED', 'REJECTED', 'PAYMENT_PENDING', 'CONFIRMED', 'COMPLETED', 'CANCELLED', 'EXPIRED'))`)

	db.Exec(`ALTER TABLE payments DROP CONSTRAINT IF EXISTS payments_status_check`)
	db.Exec(`ALTER TABLE payments ADD CONSTRAINT payments_status_check CHECK (status IN
		('CREATED', 'PAID', 'COMPLETED', 'FAILED'))`)

	// One review per booking, enforced at the database so concurrent
	// submissions cannot both land
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_booking_id ON reviews (booking_id) WHERE deleted_at IS NULL`)

	// Coupon codes are matched case-insensitively
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_coupons_code_upper ON coupons (UPPER(code)) WHERE deleted_at IS NULL`)

	return nil
}
