package obp

import "math"

// RoundingRule names the policy that snaps a raw computed price to a
// sellable price point. Persisted alongside a rate as a plain string.
type RoundingRule string

const (
	RoundNone      RoundingRule = "none"
	RoundNearest   RoundingRule = "nearest"
	RoundUp        RoundingRule = "up"
	RoundDown      RoundingRule = "down"
	RoundNearest5  RoundingRule = "nearest5"
	RoundNearest10 RoundingRule = "nearest10"
)

// RoundPrice applies rule to raw. Ties round up. Unrecognized rules behave
// like RoundNone: on the quoting path an unrounded price beats an error.
func RoundPrice(raw float64, rule RoundingRule) float64 {
	switch rule {
	case RoundNearest:
		return math.Floor(raw + 0.5)
	case RoundUp:
		return math.Ceil(raw)
	case RoundDown:
		return math.Floor(raw)
	case RoundNearest5:
		return roundToMultiple(raw, 5)
	case RoundNearest10:
		return roundToMultiple(raw, 10)
	default:
		return raw
	}
}

func roundToMultiple(raw, k float64) float64 {
	return math.Floor(raw/k+0.5) * k
}

// CalculatePrice applies a multiplier to the base nightly price and rounds
// the result under rule.
func CalculatePrice(basePrice, multiplier float64, rule RoundingRule) float64 {
	return RoundPrice(basePrice*multiplier, rule)
}
