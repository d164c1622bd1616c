package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRating(t *testing.T) {
	t.Run("FirstRating", func(t *testing.T) {
		avg, count := ApplyRating(0, 0, 4)
		assert.Equal(t, 4.0, avg)
		assert.Equal(t, 1, count)
	})

	t.Run("RunningAverage", func(t *testing.T) {
		avg, count := ApplyRating(4.0, 1, 5)
		assert.Equal(t, 4.5, avg)
		assert.Equal(t, 2, count)
	})

	t.Run("RoundsToOneDecimal", func(t *testing.T) {
		avg, count := ApplyRating(4.5, 2, 4)
		assert.Equal(t, 4.3, avg)
		assert.Equal(t, 3, count)
	})
}

func TestRemoveRating(t *testing.T) {
	t.Run("EmptiedAggregateResetsToZero", func(t *testing.T) {
		avg, count := RemoveRating(4.0, 1, 4)
		assert.Equal(t, 0.0, avg)
		assert.Equal(t, 0, count)
	})

	t.Run("RestoresPriorAverage", func(t *testing.T) {
		avg, count := RemoveRating(4.5, 2, 5)
		assert.Equal(t, 4.0, avg)
		assert.Equal(t, 1, count)
	})
}

func TestRatingRoundTrip(t *testing.T) {
	// Creating then deleting a review must restore the prior aggregate
	cases := []struct {
		startAvg   float64
		startCount int
		rating     float64
	}{
		{0, 0, 4},
		{4.0, 1, 5},
		{3.5, 4, 1},
		{4.8, 10, 3},
	}

	for _, tc := range cases {
		avg, count := ApplyRating(tc.startAvg, tc.startCount, tc.rating)
		restoredAvg, restoredCount := RemoveRating(avg, count, tc.rating)
		assert.Equal(t, tc.startCount, restoredCount)
		assert.InDelta(t, tc.startAvg, restoredAvg, 0.1)
	}
}
