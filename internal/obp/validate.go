package obp

import (
	"fmt"

	"obp_engine/internal/domain"
)

// ValidationResult carries every rule violation found in a table so the
// admin save-flow can display all problems at once.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// Validate checks a (possibly hand-edited) table against the rules that keep
// a room sellable. Checks are collected, never short-circuited. The
// double-occupancy rule only applies when minAdultsThreshold <= 2; above
// that a 2-adult stay is structurally unreachable and the rule is skipped.
func Validate(table []domain.CombinationEntry, minAdultsThreshold int) ValidationResult {
	var errs []string

	anyActive := false
	for _, e := range table {
		if e.IsActive {
			anyActive = true
			break
		}
	}
	if !anyActive {
		errs = append(errs, "at least one combination must be active")
	}

	if minAdultsThreshold <= 2 {
		doubleOK := false
		for _, e := range table {
			if e.Adults == 2 && len(e.Children) == 0 && e.IsActive {
				doubleOK = true
				break
			}
		}
		if !doubleOK {
			errs = append(errs, "double occupancy (2 adults, no children) must exist and be active")
		}
	}

	for _, e := range table {
		if e.Override != nil && *e.Override < 0 {
			errs = append(errs, fmt.Sprintf("negative multiplier override on combination %q", e.Key))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
