package handlers

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kungucharles/shereheni-backend/internal/models"
	"github.com/kungucharles/shereheni-backend/internal/services"
	"github.com/kungucharles/shereheni-backend/pkg/utils"
)

type CreatePaymentOrderInput struct {
	BookingID string `json:"bookingId" binding:"required"`
	Purpose   string `json:"purpose" binding:"required,oneof=advance remaining"`
}

type VerifyPaymentInput struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func gatewaySecret() string {
	return os.Getenv("PAYMENT_GATEWAY_SECRET")
}

// CreatePaymentOrder opens a gateway order for the advance or remaining
// leg of a booking. The amount always comes from the booking's pricing
// snapshot, never from the live product.
func CreatePaymentOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.MustGet("vendorId").(uint)

		var input CreatePaymentOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if result := db.Where("public_id = ?", input.BookingID).First(&booking); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.BookedByVendorID != vendorID {
			c.JSON(403, gin.H{"error": "Only the booking requester can pay for it"})
			return
		}

		purpose := models.PaymentPurpose(input.Purpose)
		var amount float64
		switch purpose {
		case models.PaymentPurposeAdvance:
			if booking.Status != models.BookingStatusPaymentPending {
				c.JSON(409, gin.H{"error": "Booking is not awaiting an advance payment"})
				return
			}
			amount = booking.AdvanceAmount
		case models.PaymentPurposeRemaining:
			if booking.Status != models.BookingStatusConfirmed {
				c.JSON(409, gin.H{"error": "Booking is not awaiting the remaining payment"})
				return
			}
			amount = booking.RemainingAmount
		}

		if amount <= 0 {
			c.JSON(409, gin.H{"error": "Nothing left to pay for this booking"})
			return
		}

		payment := models.Payment{
			VendorID:       vendorID,
			ProductID:      booking.ProductID,
			BookingID:      booking.ID,
			Purpose:        purpose,
			GatewayOrderID: "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20],
			Amount:         utils.MajorToMinor(amount),
			Currency:       "KES",
			Status:         models.PaymentStatusCreated,
		}

		if result := db.Create(&payment); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create payment order: " + result.Error.Error()})
			return
		}

		c.JSON(201, gin.H{
			"message": "Payment order created",
			"order": gin.H{
				"orderId":  payment.GatewayOrderID,
				"amount":   payment.Amount,
				"currency": payment.Currency,
				"purpose":  payment.Purpose,
			},
		})
	}
}

// VerifyAdvancePayment confirms the gateway callback for the advance leg.
// On success the payment moves to PAID and the booking to CONFIRMED.
func VerifyAdvancePayment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Signature check happens before any state is touched
		if !utils.VerifyPaymentSignature(input.OrderID, input.PaymentID, input.Signature, gatewaySecret()) {
			c.JSON(400, gin.H{"error": "Invalid payment signature"})
			return
		}

		acquired, err := services.AcquireVerificationLock(c.Request.Context(), input.OrderID)
		if err == nil && !acquired {
			c.JSON(409, gin.H{"error": "Payment verification already in progress"})
			return
		}
		defer services.ReleaseVerificationLock(c.Request.Context(), input.OrderID)

		var payment models.Payment
		if result := db.Where("gateway_order_id = ? AND purpose = ?", input.OrderID, models.PaymentPurposeAdvance).First(&payment); result.Error != nil {
			c.JSON(404, gin.H{"error": "Payment not found"})
			return
		}

		// Duplicate gateway callbacks for the same payment are a safe no-op
		if payment.Status == models.PaymentStatusPaid {
			if payment.GatewayPaymentID == input.PaymentID {
				c.JSON(200, gin.H{"message": "Payment already verified"})
				return
			}
			c.JSON(409, gin.H{"error": "Payment already settled with a different payment ID"})
			return
		}

		var booking models.Booking
		if result := db.Preload("Product").First(&booking, payment.BookingID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":             models.PaymentStatusPaid,
			"gateway_payment_id": input.PaymentID,
			"gateway_signature":  input.Signature,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update payment"})
			return
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":             models.BookingStatusConfirmed,
			"advance_payment_id": payment.ID,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to commit payment verification"})
			return
		}

		services.CacheBookingStatus(c.Request.Context(), booking.PublicID, string(models.BookingStatusConfirmed))

		go notifyAdvancePaid(db, hub, booking, payment)

		c.JSON(200, gin.H{
			"message": "Advance payment verified successfully",
			"booking": gin.H{
				"id":     booking.PublicID,
				"status": models.BookingStatusConfirmed,
			},
		})
	}
}

func notifyAdvancePaid(db *gorm.DB, hub *services.Hub, booking models.Booking, payment models.Payment) {
	var provider, requester models.Vendor
	if result := db.First(&provider, booking.VendorID); result.Error != nil {
		log.Printf("Booking %s: failed to load provider after advance payment: %v", booking.PublicID, result.Error)
		return
	}
	if result := db.First(&requester, booking.BookedByVendorID); result.Error != nil {
		log.Printf("Booking %s: failed to load requester after advance payment: %v", booking.PublicID, result.Error)
		return
	}

	productName := ""
	if booking.Product != nil {
		productName = booking.Product.Name
	}

	if err := utils.SendAdvancePaidEmails(provider.Email, requester.Email, productName, booking.AdvanceAmount, booking.RemainingAmount); err != nil {
		log.Printf("Booking %s: failed to send advance payment emails: %v", booking.PublicID, err)
	}

	if hub != nil {
		hub.SendPaymentReceived(provider.ID, services.PaymentReceived{
			BookingID: booking.PublicID,
			Purpose:   string(payment.Purpose),
			Amount:    utils.MinorToMajor(payment.Amount),
		})
	}

	sendBookingPush(db, provider, services.NotificationPayload{
		Title: "Advance Payment Received",
		Body:  fmt.Sprintf("KES %.2f advance received for %s", booking.AdvanceAmount, productName),
		Data: map[string]string{
			"type":      "advance_paid",
			"bookingId": booking.PublicID,
		},
	})
}

// VerifyRemainingPayment settles the balance leg of a booking. The booking
// only flips to COMPLETED when the sum of both recorded payments exactly
// equals the contract amount net of discount.
func VerifyRemainingPayment(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !utils.VerifyPaymentSignature(input.OrderID, input.PaymentID, input.Signature, gatewaySecret()) {
			c.JSON(400, gin.H{"error": "Invalid payment signature"})
			return
		}

		acquired, err := services.AcquireVerificationLock(c.Request.Context(), input.OrderID)
		if err == nil && !acquired {
			c.JSON(409, gin.H{"error": "Payment verification already in progress"})
			return
		}
		defer services.ReleaseVerificationLock(c.Request.Context(), input.OrderID)

		var payment models.Payment
		if result := db.Where("gateway_order_id = ? AND purpose = ?", input.OrderID, models.PaymentPurposeRemaining).First(&payment); result.Error != nil {
			c.JSON(404, gin.H{"error": "Payment not found"})
			return
		}

		if payment.Status == models.PaymentStatusCompleted {
			if payment.GatewayPaymentID == input.PaymentID {
				c.JSON(200, gin.H{"message": "Payment already verified"})
				return
			}
			c.JSON(409, gin.H{"error": "Payment already settled with a different payment ID"})
			return
		}

		var booking models.Booking
		if result := db.Preload("Product").First(&booking, payment.BookingID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.AdvancePaymentID == nil {
			c.JSON(400, gin.H{"error": "Advance payment is missing for this booking"})
			return
		}

		var advance models.Payment
		if result := db.First(&advance, *booking.AdvancePaymentID); result.Error != nil {
			c.JSON(404, gin.H{"error": "Advance payment not found"})
			return
		}
		if advance.Status != models.PaymentStatusPaid {
			c.JSON(400, gin.H{"error": "Advance payment has not been completed"})
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":             models.PaymentStatusCompleted,
			"gateway_payment_id": input.PaymentID,
			"gateway_signature":  input.Signature,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update payment"})
			return
		}

		// Reconciliation gate: both recorded payments must sum exactly to
		// the snapshot contract amount net of discount
		totalPaid, finalAmount, ok := utils.SettlementBalanced(advance.Amount, payment.Amount, booking.TotalAmount, booking.DiscountAmount)
		if !ok {
			tx.Rollback()
			log.Printf("Settlement mismatch on booking %s: advance=%.2f remaining=%.2f totalPaid=%.2f expected=%.2f (totalAmount=%.2f discountAmount=%.2f)",
				booking.PublicID, utils.MinorToMajor(advance.Amount), utils.MinorToMajor(payment.Amount),
				totalPaid, finalAmount, booking.TotalAmount, booking.DiscountAmount)
			c.JSON(400, gin.H{
				"error":    "Settlement amount mismatch",
				"paid":     totalPaid,
				"expected": finalAmount,
			})
			return
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":           models.BookingStatusCompleted,
			"remaining_amount": 0,
		}).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to commit settlement"})
			return
		}

		services.CacheBookingStatus(c.Request.Context(), booking.PublicID, string(models.BookingStatusCompleted))

		// The booking is committed. Everything from here on is best effort.
		go settleNotifications(db, hub, booking, advance, payment, totalPaid)

		c.JSON(200, gin.H{
			"message": "Booking settled successfully",
			"booking": gin.H{
				"id":        booking.PublicID,
				"status":    models.BookingStatusCompleted,
				"totalPaid": totalPaid,
			},
		})
	}
}

func settleNotifications(db *gorm.DB, hub *services.Hub, booking models.Booking, advance, remaining models.Payment, totalPaid float64) {
	var provider, requester models.Vendor
	if result := db.First(&provider, booking.VendorID); result.Error != nil {
		log.Printf("Booking %s: failed to load provider after settlement: %v", booking.PublicID, result.Error)
		return
	}
	if result := db.First(&requester, booking.BookedByVendorID); result.Error != nil {
		log.Printf("Booking %s: failed to load requester after settlement: %v", booking.PublicID, result.Error)
		return
	}

	productName := ""
	productPublicID := ""
	if booking.Product != nil {
		productName = booking.Product.Name
		productPublicID = booking.Product.PublicID
	}

	couponCode := ""
	if booking.CouponCode != nil {
		couponCode = *booking.CouponCode
	}

	invoicePDF, err := services.BuildInvoicePDF(services.InvoiceSnapshot{
		BookingPublicID: booking.PublicID,
		ProductName:     productName,
		ProviderName:    provider.BusinessName,
		ProviderEmail:   provider.Email,
		RequesterName:   requester.BusinessName,
		RequesterEmail:  requester.Email,
		BookingType:     string(booking.BookingType),
		StartDate:       booking.StartDate.Format(dateLayout),
		EndDate:         booking.EndDate.Format(dateLayout),
		TotalDays:       booking.TotalDays,
		TotalAmount:     booking.TotalAmount,
		CouponCode:      couponCode,
		DiscountAmount:  booking.DiscountAmount,
		FinalAmount:     booking.FinalAmount,
		AdvancePaid:     utils.MinorToMajor(advance.Amount),
		RemainingPaid:   utils.MinorToMajor(remaining.Amount),
		Currency:        "KES",
	})
	if err != nil {
		log.Printf("Booking %s: failed to build invoice: %v", booking.PublicID, err)
		return
	}

	invoiceName := fmt.Sprintf("invoice-%s.pdf", booking.PublicID)
	attachment := utils.Attachment{
		Filename:    invoiceName,
		Content:     invoicePDF,
		ContentType: "application/pdf",
	}

	if _, err := services.ArchiveDocument(invoicePDF, "invoices", invoiceName, "application/pdf"); err != nil {
		log.Printf("Booking %s: failed to archive invoice: %v", booking.PublicID, err)
	}

	if err := utils.SendSettlementEmailToProvider(provider.Email, provider.BusinessName, productName, totalPaid, attachment); err != nil {
		log.Printf("Booking %s: failed to email provider invoice: %v", booking.PublicID, err)
	}
	if err := utils.SendCompletionEmailToRequester(requester.Email, requester.BusinessName, productName, productPublicID, attachment); err != nil {
		log.Printf("Booking %s: failed to email requester invoice: %v", booking.PublicID, err)
	}

	if hub != nil {
		completed := services.BookingCompleted{
			BookingID: booking.PublicID,
			TotalPaid: totalPaid,
		}
		hub.SendBookingCompleted(provider.ID, completed)
		hub.SendBookingCompleted(requester.ID, completed)
	}

	sendBookingPush(db, provider, services.NotificationPayload{
		Title: "Booking Settled",
		Body:  fmt.Sprintf("KES %.2f received in full for %s", totalPaid, productName),
		Data: map[string]string{
			"type":      "booking_settled",
			"bookingId": booking.PublicID,
		},
	})
}
