package utils

// ApplyRating folds a new rating into a product's running average without
// rescanning history. Returns the new 1-decimal average and count.
func ApplyRating(oldAvg float64, oldCount int, rating float64) (newAvg float64, newCount int) {
	newCount = oldCount + 1
	newAvg = Round1((oldAvg*float64(oldCount) + rating) / float64(newCount))
	return newAvg, newCount
}

// RemoveRating is the exact inverse of ApplyRating: removing the rating
// that was previously folded in restores the prior average and count
// (within the 1-decimal storage rounding). An emptied aggregate resets to
// zero rather than dividing by zero.
func RemoveRating(oldAvg float64, oldCount int, rating float64) (newAvg float64, newCount int) {
	newCount = oldCount - 1
	if newCount <= 0 {
		return 0, 0
	}
	newAvg = Round1((oldAvg*float64(oldCount) - rating) / float64(newCount))
	return newAvg, newCount
}
