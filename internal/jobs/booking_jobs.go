package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/internal/services"
)

// ExpireStaleBookings flips booking requests the provider never acted on
// within the approval window to EXPIRED.
func ExpireStaleBookings(db *gorm.DB) {
	var stale []models.Booking
	if result := db.Where("status = ? AND approval_expires_at < ?",
		models.BookingStatusRequested, time.Now()).Find(&stale); result.Error != nil {
		log.Printf("Expiry sweep: failed to load stale bookings: %v", result.Error)
		return
	}

	if len(stale) == 0 {
		return
	}

	// The status is rechecked in each UPDATE so a booking the provider
	// approved between the read and the write is left alone
	ctx := context.Background()
	expired := 0
	for _, booking := range stale {
		result := db.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingStatusRequested).
			Update("status", models.BookingStatusExpired)
		if result.Error != nil {
			log.Printf("Expiry sweep: failed to expire booking %s: %v", booking.PublicID, result.Error)
			continue
		}
		if result.RowsAffected == 0 {
			continue
		}
		services.CacheBookingStatus(ctx, booking.PublicID, string(models.BookingStatusExpired))
		expired++
	}

	if expired > 0 {
		log.Printf("Expiry sweep: expired %d stale booking request(s)", expired)
	}
}

// StartScheduler registers the periodic jobs and starts the cron runner.
func StartScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc("*/5 * * * *", func() { ExpireStaleBookings(db) }); err != nil {
		log.Printf("Failed to register booking expiry job: %v", err)
	}

	c.Start()
	return c
}
