package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/pkg/utils"
)

const dateLayout = "2006-01-02"

type PriceQuoteInput struct {
	ProductID  string `json:"productId" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate"`
	CouponCode string `json:"couponCode"`
}

// quoteBooking resolves the product and computes the full price breakdown
// for a date range and optional coupon. Shared by the quote endpoint and
// booking creation so both always agree.
func quoteBooking(db *gorm.DB, product *models.VendorProduct, startDate, endDate time.Time, couponCode string, now time.Time) (utils.PriceBreakdown, string, error) {
	bookingType := models.BookingTypeSingleDay
	if endDate.After(startDate) {
		bookingType = models.BookingTypeMultiDay
	}

	totalDays := utils.TotalDays(startDate, endDate)
	baseAmount := utils.BaseAmount(bookingType, product.SingleDayPrice, product.MultiDayPrice, totalDays)

	var discount float64
	var appliedCode string
	if couponCode != "" {
		var err error
		discount, appliedCode, err = validateCoupon(db, couponCode, baseAmount, now)
		if err != nil {
			return utils.PriceBreakdown{}, "", err
		}
	}

	finalAmount := utils.Round2(baseAmount - discount)
	advance, remaining := utils.AdvanceSplit(finalAmount, product.AdvanceType, product.AdvanceValue)

	return utils.PriceBreakdown{
		BookingType:     bookingType,
		TotalDays:       totalDays,
		BasePrice:       baseAmount,
		TotalAmount:     baseAmount,
		DiscountAmount:  discount,
		FinalAmount:     finalAmount,
		AdvanceAmount:   advance,
		RemainingAmount: remaining,
	}, appliedCode, nil
}

func parseBookingDates(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid start date format, expected YYYY-MM-DD")
	}

	end := start
	if endDate != "" {
		end, err = time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("Invalid end date format, expected YYYY-MM-DD")
		}
	}

	return start, end, nil
}

// GetPriceQuote previews the price of a prospective booking without
// persisting anything
func GetPriceQuote(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PriceQuoteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var product models.VendorProduct
		if result := db.Where("public_id = ? AND is_active = ?", input.ProductID, true).First(&product); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
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

		response := gin.H{
			"productId": product.PublicID,
			"breakdown": breakdown,
		}
		if appliedCode != "" {
			response["appliedCoupon"] = appliedCode
		}

		c.JSON(200, response)
	}
}
