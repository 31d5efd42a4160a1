package utils

import "math"

// RoundWithTwoDecimalPlace arredonda valores monetários para duas casas.
func RoundWithTwoDecimalPlace(f float64) float64 {
	return math.Round(f*100) / 100
}
