package obp

import (
	"errors"
	"fmt"

	"obp_engine/internal/domain"
)

// MaxCombinations caps the enumerated candidate space. The space grows as
// ageGroups^childCount summed over child counts; past this bound the table
// stops being an editable admin artifact, so Generate refuses instead of
// silently exploding.
const MaxCombinations = 1000

var ErrTableTooLarge = errors.New("obp: combination space exceeds limit")

// Generate enumerates every composition reachable under occ and assembles a
// fresh table: overrides unset, all entries active. For each adult count and
// child count it walks the Cartesian product of age groups over the child
// slots, discarding compositions over TotalMaxGuests. Regeneration is a full
// replace; carrying operator edits forward is the caller's job (match on Key).
func Generate(occ domain.OccupancyConfig, ageGroups []domain.AgeGroup) ([]domain.CombinationEntry, error) {
	if n := candidateCount(occ, len(ageGroups)); n > MaxCombinations {
		return nil, fmt.Errorf("%w: %d candidates (max %d)", ErrTableTooLarge, n, MaxCombinations)
	}

	adult := BuildDefaultAdultMultipliers(occ.MaxAdults, occ.BaseOccupancy, occ.MinAdults)
	child := BuildDefaultChildMultipliers(occ.MaxChildren, ageGroups)

	var out []domain.CombinationEntry
	for a := occ.MinAdults; a <= occ.MaxAdults; a++ {
		if a <= occ.TotalMaxGuests {
			out = append(out, newEntry(a, nil, adult, child))
		}
		for k := 1; k <= occ.MaxChildren; k++ {
			if a+k > occ.TotalMaxGuests || len(ageGroups) == 0 {
				continue
			}
			forEachSelection(len(ageGroups), k, func(idx []int) {
				children := make([]domain.ChildSlot, k)
				for i, gi := range idx {
					children[i] = domain.ChildSlot{Order: i + 1, AgeGroup: ageGroups[gi].Code}
				}
				out = append(out, newEntry(a, children, adult, child))
			})
		}
	}
	return out, nil
}

func newEntry(adults int, children []domain.ChildSlot, adult AdultMultiplierMap, child ChildMultiplierMap) domain.CombinationEntry {
	return domain.CombinationEntry{
		Key:        BuildKey(adults, children),
		Adults:     adults,
		Children:   children,
		Calculated: CalculateMultiplier(adults, children, adult, child),
		IsActive:   true,
	}
}

// candidateCount sizes the unfiltered enumeration space up front so Generate
// can refuse before doing any work.
func candidateCount(occ domain.OccupancyConfig, groups int) int {
	adultsRange := occ.MaxAdults - occ.MinAdults + 1
	if adultsRange <= 0 {
		return 0
	}
	perAdult := 1 // the childless composition
	pow := 1
	for k := 1; k <= occ.MaxChildren; k++ {
		pow *= groups
		if pow > MaxCombinations {
			return MaxCombinations + 1
		}
		perAdult += pow
	}
	if perAdult > MaxCombinations {
		return MaxCombinations + 1
	}
	return adultsRange * perAdult
}

// forEachSelection walks the Cartesian product of n options taken k times,
// calling fn with an index vector that is reused between calls. The last
// position varies fastest.
func forEachSelection(n, k int, fn func(idx []int)) {
	if n <= 0 || k <= 0 {
		return
	}
	idx := make([]int, k)
	for {
		fn(idx)
		pos := k - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < n {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return
		}
	}
}
