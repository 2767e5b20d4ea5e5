package utils

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with one decimal in the largest unit
// that keeps the value at or above 1. Sizes of a terabyte and more stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	index := 0
	divisor := float64(1)
	for index < len(sizeUnits)-1 && float64(bytes) >= divisor*1024 {
		divisor *= 1024
		index++
	}
	value := roundOneDecimal(float64(bytes) / divisor)
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[index]
}

// halves round away from zero: 1.25 KB renders as 1.3 KB
func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
