package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/pkg/utils"
)

type RegisterInput struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	BusinessName string `json:"businessName" binding:"required"`
	City         string `json:"city"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Hash the password
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		vendor := models.Vendor{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
			PhoneNumber:  input.Phone,
			BusinessName: input.BusinessName,
			City:         input.City,
		}

		if result := db.Create(&vendor); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create vendor: " + result.Error.Error()})
			return
		}

		// Every vendor starts with default notification preferences
		db.Create(models.DefaultPreferences(vendor.ID))

		c.JSON(201, gin.H{
			"message": "Vendor created successfully",
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

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var vendor models.Vendor
		if result := db.Where("email = ?", input.Email).First(&vendor); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := vendor.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(&vendor)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"vendor": gin.H{
				"id":           vendor.ID,
				"email":        vendor.Email,
				"username":     vendor.Username,
				"phoneNumber":  vendor.PhoneNumber,
				"businessName": vendor.BusinessName,
				"city":         vendor.City,
				"points":       vendor.Points,
			},
		})
	}
}
