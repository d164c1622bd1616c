package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
)

type UpdateProfileInput struct {
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	BusinessName string `json:"businessName"`
	City         string `json:"city"`
}

func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var vendor models.Vendor
		if result := db.First(&vendor, vendorID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Vendor not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":           vendor.ID,
			"email":        vendor.Email,
			"username":     vendor.Username,
			"phoneNumber":  vendor.PhoneNumber,
			"businessName": vendor.BusinessName,
			"city":         vendor.City,
			"points":       vendor.Points,
		})
	}
}

func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var vendor models.Vendor
		if result := db.First(&vendor, vendorID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Vendor not found"})
			return
		}

		updates := map[string]interface{}{}
		if input.Username != "" {
			updates["username"] = input.Username
		}
		if input.Phone != "" {
			updates["phone_number"] = input.Phone
		}
		if input.BusinessName != "" {
			updates["business_name"] = input.BusinessName
		}
		if input.City != "" {
			updates["city"] = input.City
		}

		if len(updates) > 0 {
			if result := db.Model(&vendor).Updates(updates); result.Error != nil {
				c.JSON(500, gin.H{"error": "Failed to update profile"})
				return
			}
		}

		c.JSON(200, gin.H{
			"message": "Profile updated successfully",
			"vendor": gin.H{
				"id":           vendor.ID,
				"email":        vendor.Email,
				"username":     vendor.Username,
				"phoneNumber":  vendor.PhoneNumber,
				"businessName": vendor.BusinessName,
				"city":         vendor.City,
			},
		})
	}
}
