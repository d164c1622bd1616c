package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/pkg/utils"
)

var (
	ErrInvalidCoupon       = errors.New("Invalid coupon code")
	ErrExpiredCoupon       = errors.New("Coupon has expired")
	ErrMinAmountNotMet     = errors.New("Order amount is below the coupon minimum")
	ErrCouponNotApplicable = errors.New("Coupon is not applicable to this order")
)

// validateCoupon resolves a coupon code (case-insensitive) against an order
// amount. Each failure mode is distinct so callers can report the exact
// reason instead of a generic rejection.
func validateCoupon(db *gorm.DB, code string, orderAmount float64, now time.Time) (float64, string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var coupon models.Coupon
	if result := db.Where("UPPER(code) = ?", normalized).First(&coupon); result.Error != nil {
		return 0, "", ErrInvalidCoupon
	}

	if !coupon.IsActive {
		return 0, "", ErrInvalidCoupon
	}

	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(now) {
		return 0, "", ErrExpiredCoupon
	}

	if coupon.MinAmount != nil && orderAmount < *coupon.MinAmount {
		return 0, "", ErrMinAmountNotMet
	}

	discount := utils.CouponDiscount(coupon.DiscountType, coupon.Value, coupon.MaxDiscount, orderAmount)
	if discount <= 0 {
		return 0, "", ErrCouponNotApplicable
	}

	return discount, coupon.Code, nil
}

type CreateCouponInput struct {
	Code         string   `json:"code" binding:"required"`
	DiscountType string   `json:"discountType" binding:"required,oneof=FLAT PERCENT UPTO"`
	Value        float64  `json:"value" binding:"required,gt=0"`
	MinAmount    *float64 `json:"minAmount"`
	MaxDiscount  *float64 `json:"maxDiscount"`
	ExpiresAt    *string  `json:"expiresAt"`
}

func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		coupon := models.Coupon{
			Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
			DiscountType: models.DiscountType(input.DiscountType),
			Value:        input.Value,
			MinAmount:    input.MinAmount,
			MaxDiscount:  input.MaxDiscount,
			IsActive:     true,
		}

		if input.ExpiresAt != nil {
			expiresAt, err := time.Parse(time.RFC3339, *input.ExpiresAt)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid expiry date format, expected RFC3339"})
				return
			}
			coupon.ExpiresAt = &expiresAt
		}

		if result := db.Create(&coupon); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create coupon: " + result.Error.Error()})
			return
		}

		c.JSON(201, gin.H{
			"message": "Coupon created successfully",
			"coupon":  coupon,
		})
	}
}

func ListCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if result := db.Where("is_active = ?", true).Order("created_at DESC").Find(&coupons); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch coupons"})
			return
		}

		c.JSON(200, gin.H{"coupons": coupons})
	}
}

type ApplyCouponInput struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"orderAmount" binding:"required,gt=0"`
}

// ApplyCoupon previews a coupon against an order amount without creating
// anything
func ApplyCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApplyCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		discount, appliedCode, err := validateCoupon(db, input.Code, input.OrderAmount, time.Now())
		if err != nil {
			status := 400
			if errors.Is(err, ErrInvalidCoupon) {
				status = 404
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"code":           appliedCode,
			"discountAmount": discount,
			"finalAmount":    utils.Round2(input.OrderAmount - discount),
		})
	}
}
