package utils

import "math"

// RoundDecimal rounds half away from zero to the given number of decimal
// places. RoundDecimal(3.14159, 2) returns 3.14.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}
