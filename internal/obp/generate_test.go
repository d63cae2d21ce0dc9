package obp_test

import (
	"errors"
	"testing"

	"obp_engine/internal/domain"
	"obp_engine/internal/obp"
)

var genOcc = domain.OccupancyConfig{
	MinAdults:      1,
	MaxAdults:      3,
	MaxChildren:    2,
	TotalMaxGuests: 4,
	BaseOccupancy:  2,
}

var genGroups = []domain.AgeGroup{{Code: "infant"}, {Code: "child"}}

func TestGenerate_RespectsTotalMaxGuests(t *testing.T) {
	table, err := obp.Generate(genOcc, genGroups)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	// 1..2 adults host up to 2 children (7 entries each); 3 adults only one
	// child fits under the 4-guest cap (3 entries).
	if len(table) != 17 {
		t.Fatalf("expected 17 entries, got %d", len(table))
	}

	threeAndTwo, threeAndOne := 0, 0
	for _, e := range table {
		if e.Adults == 3 && len(e.Children) == 2 {
			threeAndTwo++
		}
		if e.Adults == 3 && len(e.Children) == 1 {
			threeAndOne++
		}
	}
	if threeAndTwo != 0 {
		t.Fatalf("3 adults + 2 children exceeds total guests, expected 0 entries, got %d", threeAndTwo)
	}
	if threeAndOne != 2 {
		t.Fatalf("expected exactly 2 entries with 3 adults + 1 child, got %d", threeAndOne)
	}
}

func TestGenerate_FreshEntryState(t *testing.T) {
	table, err := obp.Generate(genOcc, genGroups)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	seen := make(map[string]bool, len(table))
	for _, e := range table {
		if seen[e.Key] {
			t.Fatalf("duplicate key %q", e.Key)
		}
		seen[e.Key] = true
		if !e.IsActive || e.Override != nil {
			t.Fatalf("entry %q: expected active with no override, got %+v", e.Key, e)
		}
	}
	// Spot-check calculated multipliers: base occupancy 2, children free.
	for _, e := range table {
		switch e.Key {
		case "1":
			if e.Calculated != 0.8 {
				t.Fatalf("key 1: expected 0.8, got %v", e.Calculated)
			}
		case "2":
			if e.Calculated != 1.0 {
				t.Fatalf("key 2: expected 1.0, got %v", e.Calculated)
			}
		case "3+1_infant":
			if e.Calculated != 1.2 {
				t.Fatalf("key 3+1_infant: expected 1.2, got %v", e.Calculated)
			}
		}
	}
}

func TestGenerate_EmptyCatalogSkipsChildCombinations(t *testing.T) {
	table, err := obp.Generate(genOcc, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected only the 3 adults-only entries, got %d", len(table))
	}
	for _, e := range table {
		if len(e.Children) != 0 {
			t.Fatalf("unexpected child combination %q", e.Key)
		}
	}
}

func TestGenerate_RefusesOversizedSpace(t *testing.T) {
	groups := make([]domain.AgeGroup, 8)
	for i := range groups {
		groups[i] = domain.AgeGroup{Code: string(rune('a' + i))}
	}
	occ := domain.OccupancyConfig{
		MinAdults:      1,
		MaxAdults:      4,
		MaxChildren:    4,
		TotalMaxGuests: 8,
		BaseOccupancy:  2,
	}
	// 4 adults x (1 + 8 + 64 + 512 + 4096) candidates is far over the cap.
	_, err := obp.Generate(occ, groups)
	if !errors.Is(err, obp.ErrTableTooLarge) {
		t.Fatalf("expected ErrTableTooLarge, got %v", err)
	}
}
