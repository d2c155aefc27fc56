package utils

import (
	"math"
)

// roundFloat rounds a float64 to a specified number of decimal places.
func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// MeanStdDev returns the mean and sample standard deviation of data, both
// rounded to four decimal places. An empty slice yields (0, 0); a single
// value has a standard deviation of 0.
func MeanStdDev(data []float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / float64(n)
	if n < 2 {
		return roundFloat(mean, 4), 0
	}

	var squares float64
	for _, v := range data {
		squares += (v - mean) * (v - mean)
	}
	return roundFloat(mean, 4), roundFloat(math.Sqrt(squares/float64(n-1)), 4)
}
