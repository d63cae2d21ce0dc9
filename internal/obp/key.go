package obp

import (
	"sort"
	"strconv"
	"strings"

	"obp_engine/internal/domain"
)

// BuildKey canonicalizes a composition into its stable identity: "2" for an
// adults-only stay, otherwise "2+2_infant_child" with age-group codes in
// ascending child order. The input slice is never mutated; two compositions
// that differ only in input ordering collapse to the same key.
func BuildKey(adults int, children []domain.ChildSlot) string {
	if len(children) == 0 {
		return strconv.Itoa(adults)
	}
	sorted := sortChildren(children)
	var b strings.Builder
	b.WriteString(strconv.Itoa(adults))
	b.WriteByte('+')
	b.WriteString(strconv.Itoa(len(sorted)))
	for _, c := range sorted {
		b.WriteByte('_')
		b.WriteString(c.AgeGroup)
	}
	return b.String()
}

// sortChildren returns a copy ordered by ascending Order.
func sortChildren(children []domain.ChildSlot) []domain.ChildSlot {
	out := make([]domain.ChildSlot, len(children))
	copy(out, children)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
