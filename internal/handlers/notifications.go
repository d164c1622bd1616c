package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
)

type RegisterFCMTokenInput struct {
	Token string `json:"token" binding:"required"`
}

func RegisterFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var input RegisterFCMTokenInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if result := db.Model(&models.Vendor{}).Where("id = ?", vendorID).
			Update("fcm_token", input.Token); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to register FCM token"})
			return
		}

		c.JSON(200, gin.H{"message": "FCM token registered successfully"})
	}
}

func RemoveFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		if result := db.Model(&models.Vendor{}).Where("id = ?", vendorID).
			Update("fcm_token", ""); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to remove FCM token"})
			return
		}

		c.JSON(200, gin.H{"message": "FCM token removed successfully"})
	}
}
