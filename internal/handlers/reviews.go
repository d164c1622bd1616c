package handlers

import (
	"errors"
	"math"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/pkg/utils"
)

type CreateReviewInput struct {
	ProductID string  `json:"productId"`
	BookingID string  `json:"bookingId"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// CreateReview records a rating on a completed booking, credits the
// provider's points, and folds the rating into the product aggregate. The
// review insert and both aggregate updates commit as one unit.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewerID := c.MustGet("vendorId").(uint)

		var input CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.BookingID == "" || input.Rating == 0 {
			c.JSON(400, gin.H{"error": "Booking ID and rating are required"})
			return
		}

		if input.Rating < 1 || input.Rating > 5 || input.Rating != math.Trunc(input.Rating) {
			c.JSON(400, gin.H{"error": "Rating must be a whole number between 1 and 5"})
			return
		}

		var product models.VendorProduct
		if result := db.Where("public_id = ?", input.ProductID).First(&product); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}

		var booking models.Booking
		if result := db.Where("public_id = ?", input.BookingID).First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.Status != models.BookingStatusCompleted {
			c.JSON(400, gin.H{"error": "Only completed bookings can be reviewed"})
			return
		}

		if booking.BookedByVendorID != reviewerID {
			c.JSON(403, gin.H{"error": "You can only review your own bookings"})
			return
		}

		if booking.ProductID != product.ID {
			c.JSON(400, gin.H{"error": "Booking does not belong to this product"})
			return
		}

		// Self-review is blocked at booking time already, re-checked here
		if booking.VendorID == booking.BookedByVendorID {
			c.JSON(403, gin.H{"error": "You cannot review your own product"})
			return
		}

		review := models.Review{
			BookingID:        booking.ID,
			VendorID:         booking.VendorID,
			ProductID:        product.ID,
			ReviewerVendorID: reviewerID,
			Rating:           input.Rating,
			Comment:          input.Comment,
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if result := tx.Create(&review); result.Error != nil {
			tx.Rollback()
			// The unique index on booking_id catches concurrent duplicates too
			if isDuplicateKeyError(result.Error) {
				c.JSON(409, gin.H{"error": "A review has already been submitted for this booking"})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to create review: " + result.Error.Error()})
			return
		}

		if err := tx.Model(&models.Vendor{}).Where("id = ?", booking.VendorID).
			Update("points", gorm.Expr("points + ?", input.Rating)).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update vendor points"})
			return
		}

		newAvg, newCount := utils.ApplyRating(product.Rating, product.RatingCount, input.Rating)
		if err := tx.Model(&product).Updates(map[string]interface{}{
			"rating":       newAvg,
			"rating_count": newCount,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update product rating"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to commit review"})
			return
		}

		c.JSON(201, gin.H{
			"message": "Review submitted successfully",
			"review":  review,
			"product": gin.H{
				"rating":      newAvg,
				"ratingCount": newCount,
			},
		})
	}
}

// DeleteReview removes a review and unwinds its effects: the provider's
// points drop by the review's rating (floored at zero) and the product
// aggregate is restored to its pre-review value.
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewerID := c.MustGet("vendorId").(uint)
		bookingID := c.Param("bookingId")

		var booking models.Booking
		if result := db.Where("public_id = ?", bookingID).First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		var review models.Review
		if result := db.Where("booking_id = ?", booking.ID).First(&review); result.Error != nil {
			c.JSON(404, gin.H{"error": "Review not found"})
			return
		}

		if review.ReviewerVendorID != reviewerID {
			c.JSON(403, gin.H{"error": "You can only delete your own reviews"})
			return
		}

		var product models.VendorProduct
		if result := db.First(&product, review.ProductID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if result := tx.Delete(&review); result.Error != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to delete review"})
			return
		}

		if err := tx.Model(&models.Vendor{}).Where("id = ?", review.VendorID).
			Update("points", gorm.Expr("GREATEST(points - ?, 0)", review.Rating)).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update vendor points"})
			return
		}

		newAvg, newCount := utils.RemoveRating(product.Rating, product.RatingCount, review.Rating)
		if err := tx.Model(&product).Updates(map[string]interface{}{
			"rating":       newAvg,
			"rating_count": newCount,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update product rating"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to commit review deletion"})
			return
		}

		c.JSON(200, gin.H{
			"message": "Review deleted successfully",
			"product": gin.H{
				"rating":      newAvg,
				"ratingCount": newCount,
			},
		})
	}
}

// GetProductReviews lists reviews for a product by its public identifier
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.VendorProduct
		if result := db.Where("public_id = ?", productID).First(&product); result.Error != nil {
			c.JSON(404, gin.H{"error": "Product not found"})
			return
		}

		var reviews []models.Review
		if result := db.Preload("Reviewer").Where("product_id = ?", product.ID).
			Order("created_at DESC").Find(&reviews); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(200, gin.H{
			"reviews":     reviews,
			"rating":      product.Rating,
			"ratingCount": product.RatingCount,
		})
	}
}
