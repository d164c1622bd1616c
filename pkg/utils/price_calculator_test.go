package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kungucharles/shereheni-backend/internal/models"
)

func TestTotalDays(t *testing.T) {
	t.Run("SameDay", func(t *testing.T) {
		day := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
		assert.Equal(t, 1, TotalDays(day, day))
	})

	t.Run("InclusiveRange", func(t *testing.T) {
		start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, TotalDays(start, end))
	})

	t.Run("IgnoresTimeOfDay", func(t *testing.T) {
		start := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
		end := time.Date(2025, 6, 11, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 2, TotalDays(start, end))
	})
}

func TestBaseAmount(t *testing.T) {
	t.Run("SingleDay", func(t *testing.T) {
		amount := BaseAmount(models.BookingTypeSingleDay, 5000, 2000, 1)
		assert.Equal(t, 5000.0, amount)
	})

	t.Run("MultiDay", func(t *testing.T) {
		amount := BaseAmount(models.BookingTypeMultiDay, 5000, 2000, 3)
		assert.Equal(t, 6000.0, amount)
	})

	t.Run("SingleDayIgnoresDayCount", func(t *testing.T) {
		amount := BaseAmount(models.BookingTypeSingleDay, 5000, 2000, 3)
		assert.Equal(t, 5000.0, amount)
	})
}

func TestAdvanceSplit(t *testing.T) {
	t.Run("PercentageSplit", func(t *testing.T) {
		advance, remaining := AdvanceSplit(10000, models.AdvanceTypePercentage, 30)
		assert.Equal(t, 3000.0, advance)
		assert.Equal(t, 7000.0, remaining)
	})

	t.Run("FixedSplit", func(t *testing.T) {
		advance, remaining := AdvanceSplit(10000, models.AdvanceTypeFixed, 2500)
		assert.Equal(t, 2500.0, advance)
		assert.Equal(t, 7500.0, remaining)
	})

	t.Run("FixedAboveFinalClampsToFinal", func(t *testing.T) {
		advance, remaining := AdvanceSplit(1000, models.AdvanceTypeFixed, 5000)
		assert.Equal(t, 1000.0, advance)
		assert.Equal(t, 0.0, remaining)
	})

	t.Run("ConservationHolds", func(t *testing.T) {
		cases := []struct {
			final       float64
			advanceType models.AdvanceType
			value       float64
		}{
			{10000, models.AdvanceTypePercentage, 30},
			{9999.99, models.AdvanceTypePercentage, 33},
			{750.50, models.AdvanceTypeFixed, 200},
			{100, models.AdvanceTypePercentage, 100},
			{0, models.AdvanceTypePercentage, 50},
		}

		for _, tc := range cases {
			advance, remaining := AdvanceSplit(tc.final, tc.advanceType, tc.value)
			assert.Equal(t, Round2(tc.final), Round2(advance+remaining))
			assert.GreaterOrEqual(t, advance, 0.0)
			assert.LessOrEqual(t, advance, tc.final)
		}
	})
}

func TestCouponDiscount(t *testing.T) {
	maxDiscount := 40.0

	t.Run("FlatDiscount", func(t *testing.T) {
		assert.Equal(t, 200.0, CouponDiscount(models.DiscountTypeFlat, 200, nil, 1000))
	})

	t.Run("PercentDiscount", func(t *testing.T) {
		assert.Equal(t, 50.0, CouponDiscount(models.DiscountTypePercent, 50, nil, 100))
	})

	t.Run("UptoCapsAtMaxDiscount", func(t *testing.T) {
		assert.Equal(t, 40.0, CouponDiscount(models.DiscountTypeUpto, 90, &maxDiscount, 1000))
	})

	t.Run("UptoWithoutCapBehavesLikePercent", func(t *testing.T) {
		assert.Equal(t, 900.0, CouponDiscount(models.DiscountTypeUpto, 90, nil, 1000))
	})

	t.Run("NeverExceedsOrderAmount", func(t *testing.T) {
		assert.Equal(t, 100.0, CouponDiscount(models.DiscountTypeFlat, 500, nil, 100))
		assert.Equal(t, 100.0, CouponDiscount(models.DiscountTypePercent, 150, nil, 100))
	})
}

func TestSettlementBalanced(t *testing.T) {
	t.Run("ExactSettlement", func(t *testing.T) {
		totalPaid, finalAmount, ok := SettlementBalanced(300000, 600000, 10000, 1000)
		assert.True(t, ok)
		assert.Equal(t, 9000.0, totalPaid)
		assert.Equal(t, 9000.0, finalAmount)
	})

	t.Run("OneShillingShortFails", func(t *testing.T) {
		totalPaid, finalAmount, ok := SettlementBalanced(300000, 599900, 10000, 1000)
		assert.False(t, ok)
		assert.Equal(t, 8999.0, totalPaid)
		assert.Equal(t, 9000.0, finalAmount)
	})

	t.Run("OneCentOverFails", func(t *testing.T) {
		_, _, ok := SettlementBalanced(300000, 600001, 10000, 1000)
		assert.False(t, ok)
	})

	t.Run("NoDiscount", func(t *testing.T) {
		_, _, ok := SettlementBalanced(300000, 700000, 10000, 0)
		assert.True(t, ok)
	})
}

func TestMinorMajorConversion(t *testing.T) {
	assert.Equal(t, 9000.0, MinorToMajor(900000))
	assert.Equal(t, int64(900000), MajorToMinor(9000))
	assert.Equal(t, 99.99, MinorToMajor(9999))
	assert.Equal(t, int64(9999), MajorToMinor(99.99))
}
