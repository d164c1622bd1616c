package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/internal/services"
	"github.com/kungucharles/shereheni-backend/pkg/utils"
)

type CreateBookingInput struct {
	ProductID  string `json:"productId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CouponCode string `json:"couponCode"`
	Notes      string `json:"notes"`
}

func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID := c.MustGet("vendorId").(uint)

		var input CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.ProductID == "" || input.StartDate == "" {
			c.JSON(400, gin.H{"error": "Product ID and start date are required"})
			return
		}

		var product models.VendorProduct
		if result := db.Where("public_id = ? AND is_active = ?", input.ProductID, true).First(&product); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}

		if product.VendorID == requesterID {
			c.JSON(403, gin.H{"error": "You cannot book your own product"})
			return
		}

		start, end, err := parseBookingDates(input.StartDate, input.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if end.Before(start) {
			c.JSON(400, gin.H{"error": "End date cannot be before start date"})
			return
		}

		breakdown, appliedCode, err := quoteBooking(db, &product, start, end, input.CouponCode, time.Now())
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking := models.Booking{
			VendorID:          product.VendorID,
			BookedByVendorID:  requesterID,
			ProductID:         product.ID,
			BookingType:       breakdown.BookingType,
			StartDate:         start,
			EndDate:           end,
			BasePrice:         breakdown.BasePrice,
			TotalDays:         breakdown.TotalDays,
			TotalAmount:       breakdown.TotalAmount,
			DiscountAmount:    breakdown.DiscountAmount,
			FinalAmount:       breakdown.FinalAmount,
			AdvanceAmount:     breakdown.AdvanceAmount,
			RemainingAmount:   breakdown.RemainingAmount,
			Status:            models.BookingStatusRequested,
			ApprovalExpiresAt: time.Now().Add(models.ApprovalWindow),
			Notes:             input.Notes,
		}

		// Time-of-day window only applies to single-day bookings
		if breakdown.BookingType == models.BookingTypeSingleDay {
			if input.StartTime != "" {
				booking.StartTime = &input.StartTime
			}
			if input.EndTime != "" {
				booking.EndTime = &input.EndTime
			}
		}

		if appliedCode != "" {
			booking.CouponCode = &appliedCode
		}

		if result := db.Create(&booking); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking: " + result.Error.Error()})
			return
		}

		services.CacheBookingStatus(c.Request.Context(), booking.PublicID, string(booking.Status))

		// Notify both parties. Failures are logged, never fatal to the booking.
		go notifyBookingRequested(db, hub, booking, product)

		c.JSON(201, gin.H{
			"message": "Booking request sent successfully",
			"booking": booking,
		})
	}
}

func notifyBookingRequested(db *gorm.DB, hub *services.Hub, booking models.Booking, product models.VendorProduct) {
	var provider, requester models.Vendor
	if result := db.First(&provider, product.VendorID); result.Error != nil {
		log.Printf("Booking %s: failed to load provider for notification: %v", booking.PublicID, result.Error)
		return
	}
	if result := db.First(&requester, booking.BookedByVendorID); result.Error != nil {
		log.Printf("Booking %s: failed to load requester for notification: %v", booking.PublicID, result.Error)
		return
	}

	if err := utils.SendBookingRequestEmailToProvider(provider.Email, product.Name, requester.BusinessName, booking.FinalAmount, booking.ApprovalExpiresAt); err != nil {
		log.Printf("Booking %s: failed to email provider: %v", booking.PublicID, err)
	}
	if err := utils.SendBookingRequestConfirmationEmail(requester.Email, product.Name, booking.FinalAmount); err != nil {
		log.Printf("Booking %s: failed to email requester: %v", booking.PublicID, err)
	}

	if hub != nil {
		hub.SendBookingRequested(provider.ID, services.BookingRequested{
			BookingID:         booking.PublicID,
			ProductID:         product.PublicID,
			RequesterName:     requester.BusinessName,
			FinalAmount:       booking.FinalAmount,
			ApprovalExpiresAt: booking.ApprovalExpiresAt.Format(time.RFC3339),
		})
	}

	sendBookingPush(db, provider, services.NotificationPayload{
		Title: "New Booking Request",
		Body:  fmt.Sprintf("%s requested %s for KES %.2f", requester.BusinessName, product.Name, booking.FinalAmount),
		Data: map[string]string{
			"type":      "booking_request",
			"bookingId": booking.PublicID,
		},
	})
}

// sendBookingPush delivers an FCM push if the vendor has booking alerts on
func sendBookingPush(db *gorm.DB, vendor models.Vendor, payload services.NotificationPayload) {
	if vendor.FCMToken == "" {
		return
	}

	var prefs models.NotificationPreference
	if result := db.Where("vendor_id = ?", vendor.ID).First(&prefs); result.Error == nil {
		if !prefs.PushEnabled || !prefs.BookingAlerts {
			return
		}
	}

	if err := services.SendNotificationToToken(context.Background(), vendor.FCMToken, payload); err != nil {
		log.Printf("Failed to send push notification to vendor %d: %v", vendor.ID, err)
	}
}

// GetBookingStatus returns just the lifecycle status, served from cache
// when possible
func GetBookingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := c.Param("id")

		if status, err := services.GetCachedBookingStatus(c.Request.Context(), bookingID); err == nil && status != "" {
			c.JSON(200, gin.H{"bookingId": bookingID, "status": status})
			return
		}

		var booking models.Booking
		if result := db.Where("public_id = ?", bookingID).First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		services.CacheBookingStatus(c.Request.Context(), booking.PublicID, string(booking.Status))

		c.JSON(200, gin.H{"bookingId": booking.PublicID, "status": booking.Status})
	}
}

// GetMyBookings lists bookings the authenticated vendor has requested
func GetMyBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		query := db.Preload("Product").Preload("Vendor").
			Where("booked_by_vendor_id = ?", vendorID)

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.Booking
		if result := query.Order("created_at DESC").Find(&bookings); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}

// GetVendorBookings lists bookings against the authenticated vendor's
// products
func GetVendorBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		query := db.Preload("Product").Preload("BookedByVendor").
			Where("vendor_id = ?", vendorID)

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.Booking
		if result := query.Order("created_at DESC").Find(&bookings); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}

func ApproveBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return decideBooking(db, hub, models.BookingStatusApproved)
}

func RejectBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return decideBooking(db, hub, models.BookingStatusRejected)
}

func decideBooking(db *gorm.DB, hub *services.Hub, decision models.BookingStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)
		bookingID := c.Param("id")

		var booking models.Booking
		if result := db.Preload("Product").Where("public_id = ?", bookingID).First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.VendorID != vendorID {
			c.JSON(403, gin.H{"error": "Only the product owner can decide this booking"})
			return
		}

		if booking.Status != models.BookingStatusRequested {
			c.JSON(409, gin.H{"error": "Booking is no longer awaiting a decision"})
			return
		}

		if time.Now().After(booking.ApprovalExpiresAt) {
			db.Model(&booking).Update("status", models.BookingStatusExpired)
			services.CacheBookingStatus(c.Request.Context(), booking.PublicID, string(models.BookingStatusExpired))
			c.JSON(409, gin.H{"error": "Booking request has expired"})
			return
		}

		newStatus := decision
		if decision == models.BookingStatusApproved {
			// Approval moves straight to awaiting the advance payment
			newStatus = models.BookingStatusPaymentPending
		}

		if result := db.Model(&booking).Update("status", newStatus); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		services.CacheBookingStatus(c.Request.Context(), booking.PublicID, string(newStatus))

		go func() {
			var requester models.Vendor
			if result := db.First(&requester, booking.BookedByVendorID); result.Error != nil {
				log.Printf("Booking %s: failed to load requester for decision notification: %v", booking.PublicID, result.Error)
				return
			}

			productName := ""
			if booking.Product != nil {
				productName = booking.Product.Name
			}

			approved := decision == models.BookingStatusApproved
			if err := utils.SendBookingDecisionEmail(requester.Email, productName, approved); err != nil {
				log.Printf("Booking %s: failed to email decision: %v", booking.PublicID, err)
			}

			if hub != nil {
				hub.SendBookingDecision(requester.ID, services.BookingDecision{
					BookingID: booking.PublicID,
					Status:    string(newStatus),
				})
			}
		}()

		c.JSON(200, gin.H{
			"message": "Booking updated successfully",
			"booking": gin.H{
				"id":     booking.PublicID,
				"status": newStatus,
			},
		})
	}
}
