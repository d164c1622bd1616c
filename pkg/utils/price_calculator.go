package utils

import (
	"math"
	"time"

	"github.com/kungucharles/shereheni-backend/internal/models"
)

// PriceBreakdown contains the computed booking price and its split
type PriceBreakdown struct {
	BookingType     models.BookingType `json:"bookingType"`
	TotalDays       int                `json:"totalDays"`
	BasePrice       float64            `json:"basePrice"`
	TotalAmount     float64            `json:"totalAmount"`
	DiscountAmount  float64            `json:"discountAmount"`
	FinalAmount     float64            `json:"finalAmount"`
	AdvanceAmount   float64            `json:"advanceAmount"`
	RemainingAmount float64            `json:"remainingAmount"`
}

// Round2 rounds an amount to 2 decimal places
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Round1 rounds a rating to 1 decimal place
func Round1(rating float64) float64 {
	return math.Round(rating*10) / 10
}

// TotalDays returns the inclusive day count of a date range
func TotalDays(startDate, endDate time.Time) int {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// BaseAmount computes the undiscounted booking amount. Single-day bookings
// charge the single-day price once; multi-day bookings charge the per-day
// multi-day price for every day in the range.
func BaseAmount(bookingType models.BookingType, singleDayPrice, multiDayPrice float64, totalDays int) float64 {
	if bookingType == models.BookingTypeMultiDay {
		return Round2(multiDayPrice * float64(totalDays))
	}
	return Round2(singleDayPrice)
}

// AdvanceSplit computes the advance portion of the final amount from the
// product's advance configuration, clamped to [0, finalAmount]. The
// remaining amount is always finalAmount - advanceAmount so the two parts
// conserve the final amount exactly.
func AdvanceSplit(finalAmount float64, advanceType models.AdvanceType, advanceValue float64) (advance, remaining float64) {
	switch advanceType {
	case models.AdvanceTypeFixed:
		advance = advanceValue
	default: // PERCENTAGE
		advance = Round2(finalAmount * advanceValue / 100)
	}

	if advance < 0 {
		advance = 0
	}
	if advance > finalAmount {
		advance = finalAmount
	}

	advance = Round2(advance)
	remaining = Round2(finalAmount - advance)
	return advance, remaining
}

// CouponDiscount computes the raw discount for a coupon against an order
// amount. The result is clamped so it never exceeds the order amount, and
// UPTO coupons are additionally capped at maxDiscount when set.
func CouponDiscount(discountType models.DiscountType, value float64, maxDiscount *float64, orderAmount float64) float64 {
	var discount float64

	switch discountType {
	case models.DiscountTypeFlat:
		discount = value
	case models.DiscountTypePercent:
		discount = Round2(orderAmount * value / 100)
	case models.DiscountTypeUpto:
		discount = Round2(orderAmount * value / 100)
		if maxDiscount != nil && discount > *maxDiscount {
			discount = *maxDiscount
		}
	}

	if discount > orderAmount {
		discount = orderAmount
	}

	return Round2(discount)
}

// MinorToMajor converts a gateway amount in minor units (cents) to major
// currency units
func MinorToMajor(amount int64) float64 {
	return Round2(float64(amount) / 100)
}

// MajorToMinor converts a major-unit amount to gateway minor units (cents)
func MajorToMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// SettlementBalanced reports whether the sum of the advance and remaining
// payments (in minor units) exactly covers the booking's contract amount
// net of discount. Both sides are rounded to 2 decimal places before the
// comparison so cent-level gateway amounts reconcile against the snapshot.
func SettlementBalanced(advanceMinor, remainingMinor int64, totalAmount, discountAmount float64) (totalPaid, finalAmount float64, ok bool) {
	totalPaid = Round2(MinorToMajor(advanceMinor) + MinorToMajor(remainingMinor))
	finalAmount = Round2(totalAmount - discountAmount)
	return totalPaid, finalAmount, totalPaid == finalAmount
}
