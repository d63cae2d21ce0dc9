package obp

import (
	"fmt"
	"strings"

	"obp_engine/internal/domain"
)

// DefaultLocale is the catalog's primary language; label lookups fall back
// here before giving up.
const DefaultLocale = "tr"

type localeLabels struct {
	single, double, adults string
}

var occupancyLabels = map[string]localeLabels{
	"tr": {single: "Tek Kişilik", double: "Çift Kişilik", adults: "%d Yetişkin"},
	"en": {single: "Single", double: "Double", adults: "%d Adults"},
}

// BuildName renders a localized display name for a composition. Adults-only
// stays use the Single/Double/N-adults labels; anything with children is
// rendered as "<adults>+<count> (<label>, <label>)" with labels in child
// order.
func BuildName(adults int, children []domain.ChildSlot, ageGroups []domain.AgeGroup, locale string) string {
	labels, ok := occupancyLabels[locale]
	if !ok {
		labels = occupancyLabels[DefaultLocale]
	}
	if len(children) == 0 {
		switch adults {
		case 1:
			return labels.single
		case 2:
			return labels.double
		default:
			return fmt.Sprintf(labels.adults, adults)
		}
	}
	sorted := sortChildren(children)
	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = ageGroupLabel(ageGroups, c.AgeGroup, locale)
	}
	return fmt.Sprintf("%d+%d (%s)", adults, len(sorted), strings.Join(names, ", "))
}

// ageGroupLabel resolves a display label through an ordered fallback chain:
// the exact locale, then DefaultLocale, then the raw age-group code when the
// group is unknown or untranslated.
func ageGroupLabel(ageGroups []domain.AgeGroup, code, locale string) string {
	for _, ag := range ageGroups {
		if ag.Code != code {
			continue
		}
		for _, loc := range []string{locale, DefaultLocale} {
			if s, ok := ag.Names[loc]; ok && s != "" {
				return s
			}
		}
		break
	}
	return code
}
