package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
)

type UpdatePreferencesInput struct {
	PushEnabled   *bool `json:"pushEnabled"`
	BookingAlerts *bool `json:"bookingAlerts"`
	PaymentAlerts *bool `json:"paymentAlerts"`
	ReviewAlerts  *bool `json:"reviewAlerts"`
	EmailEnabled  *bool `json:"emailEnabled"`
}

func GetNotificationPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var prefs models.NotificationPreference
		if result := db.Where("vendor_id = ?", vendorID).First(&prefs); result.Error != nil {
			// Vendors without a row get the defaults
			prefs = *models.DefaultPreferences(vendorID)
			if created := db.Create(&prefs); created.Error != nil {
				c.JSON(500, gin.H{"error": "Failed to create notification preferences"})
				return
			}
		}

		c.JSON(200, gin.H{"preferences": prefs})
	}
}

func UpdateNotificationPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var input UpdatePreferencesInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var prefs models.NotificationPreference
		if result := db.Where("vendor_id = ?", vendorID).First(&prefs); result.Error != nil {
			prefs = *models.DefaultPreferences(vendorID)
			if created := db.Create(&prefs); created.Error != nil {
				c.JSON(500, gin.H{"error": "Failed to create notification preferences"})
				return
			}
		}

		updates := map[string]interface{}{}
		if input.PushEnabled != nil {
			updates["push_enabled"] = *input.PushEnabled
		}
		if input.BookingAlerts != nil {
			updates["booking_alerts"] = *input.BookingAlerts
		}
		if input.PaymentAlerts != nil {
			updates["payment_alerts"] = *input.PaymentAlerts
		}
		if input.ReviewAlerts != nil {
			updates["review_alerts"] = *input.ReviewAlerts
		}
		if input.EmailEnabled != nil {
			updates["email_enabled"] = *input.EmailEnabled
		}

		if len(updates) > 0 {
			if result := db.Model(&prefs).Updates(updates); result.Error != nil {
				c.JSON(500, gin.H{"error": "Failed to update notification preferences"})
				return
			}
		}

		c.JSON(200, gin.H{
			"message":     "Notification preferences updated successfully",
			"preferences": prefs,
		})
	}
}
