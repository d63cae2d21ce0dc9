package obp

import "obp_engine/internal/domain"

// EffectiveMultiplier returns the multiplier actually charged for an entry.
// ok is false when the combination is not sellable at all; the caller must
// reject the booking attempt or hide the option.
//
// Precedence: inactive beats everything, then an explicit override (a nil
// pointer means unset while 0 is a real override meaning the occupancy stays
// free), then the calculated default.
func EffectiveMultiplier(e domain.CombinationEntry) (float64, bool) {
	if !e.IsActive {
		return 0, false
	}
	if e.Override != nil {
		return *e.Override, true
	}
	return e.Calculated, true
}
