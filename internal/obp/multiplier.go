package obp

import (
	"math"

	"obp_engine/internal/domain"
)

// AdultMultiplierMap maps an adult count to its price multiplier. A missing
// count is a configuration gap; CalculateMultiplier falls back to 1.0.
type AdultMultiplierMap map[int]float64

// ChildMultiplierMap maps child order (1-based) -> age-group code -> multiplier.
// Unset entries count as 0.
type ChildMultiplierMap map[int]map[string]float64

// adultStep is the default surcharge (or discount) per adult away from the
// base occupancy.
const adultStep = 0.2

// BuildDefaultAdultMultipliers derives the default adult map: a linear step
// function anchored at 1.0 for n == baseOccupancy. No clamping is applied;
// a single adult below base occupancy yields a multiplier under 1.0, which
// is the intended discount for under-occupying the room.
func BuildDefaultAdultMultipliers(maxAdults, baseOccupancy, minAdults int) AdultMultiplierMap {
	m := make(AdultMultiplierMap, maxAdults-minAdults+1)
	for n := minAdults; n <= maxAdults; n++ {
		m[n] = round2(1.0 + float64(n-baseOccupancy)*adultStep)
	}
	return m
}

// BuildDefaultChildMultipliers derives the default child map: every order and
// age group starts at 0. Children are free until an operator positively
// configures a surcharge.
func BuildDefaultChildMultipliers(maxChildren int, ageGroups []domain.AgeGroup) ChildMultiplierMap {
	m := make(ChildMultiplierMap, maxChildren)
	for order := 1; order <= maxChildren; order++ {
		per := make(map[string]float64, len(ageGroups))
		for _, ag := range ageGroups {
			per[ag.Code] = 0
		}
		m[order] = per
	}
	return m
}

// CalculateMultiplier sums the adult base and per-child contributions for one
// composition. Adult counts the map cannot resolve fall back to a neutral
// 1.0 (the generator keeps counts in range; this only guards hand-crafted
// input) and unset child entries add 0.
func CalculateMultiplier(adults int, children []domain.ChildSlot, adult AdultMultiplierMap, child ChildMultiplierMap) float64 {
	base, ok := adult[adults]
	if !ok {
		base = 1.0
	}
	for _, c := range children {
		if per, ok := child[c.Order]; ok {
			base += per[c.AgeGroup]
		}
	}
	return round2(base)
}

// round2 rounds to 2 decimals, ties up, via integer cents so binary-float
// noise never lands in stored tables (0.999 -> 1.00).
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
