package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"obp_engine/internal/app"
	"obp_engine/internal/domain"
)

func TestRegenerate_CarriesForwardEditsByKey(t *testing.T) {
	repo := seededRepo()
	svc := app.NewTableService(repo, &fakeCache{})

	fresh, vres, err := svc.Regenerate(context.Background(), 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !vres.IsValid {
		t.Fatalf("carried-forward table must stay valid, got %v", vres.Errors)
	}
	// 1..2 adults: 7 compositions each; 3 adults: 3 under the guest cap.
	if len(fresh) != 17 {
		t.Fatalf("expected 17 entries, got %d", len(fresh))
	}

	byKey := map[string]domain.CombinationEntry{}
	for _, e := range fresh {
		byKey[e.Key] = e
	}
	// The inactive "3" and the zero override on "2+1_infant" survive regeneration.
	if byKey["3"].IsActive {
		t.Fatal("expected inactive flag carried forward for key 3")
	}
	if ov := byKey["2+1_infant"].Override; ov == nil || *ov != 0 {
		t.Fatalf("expected zero override carried forward, got %v", ov)
	}
	// New combinations start fresh.
	if e := byKey["1+1_child"]; !e.IsActive || e.Override != nil {
		t.Fatalf("expected fresh state for new combination, got %+v", e)
	}

	if len(repo.replaced) != 1 {
		t.Fatalf("expected exactly one table replace, got %d", len(repo.replaced))
	}
}

func TestRegenerate_InvalidatesCache(t *testing.T) {
	repo := seededRepo()
	cache := &fakeCache{store: map[string][]byte{"obp:table:7": []byte(`{}`)}}
	svc := app.NewTableService(repo, cache)

	if _, _, err := svc.Regenerate(context.Background(), 7); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, ok := cache.store["obp:table:7"]; ok {
		t.Fatal("expected table snapshot to be evicted")
	}
}

func TestRegenerate_ReportsInheritedViolations(t *testing.T) {
	repo := seededRepo()
	// An operator had deactivated double occupancy before the rebuild.
	for i := range repo.table {
		if repo.table[i].Key == "2" {
			repo.table[i].IsActive = false
		}
	}
	svc := app.NewTableService(repo, &fakeCache{})

	_, vres, err := svc.Regenerate(context.Background(), 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if vres.IsValid {
		t.Fatal("expected carried-forward violation to be reported")
	}
	if len(vres.Errors) != 1 || !strings.Contains(vres.Errors[0], "double occupancy") {
		t.Fatalf("expected double occupancy violation, got %v", vres.Errors)
	}
	// The rebuild still persists: regeneration is the recovery path, the
	// report is for the caller to surface.
	if len(repo.replaced) != 1 {
		t.Fatalf("expected table persisted once, got %d", len(repo.replaced))
	}
}

func TestSaveOverrides_PersistsValidEdit(t *testing.T) {
	repo := seededRepo()
	svc := app.NewTableService(repo, &fakeCache{})

	res, err := svc.SaveOverrides(context.Background(), 7, []domain.CombinationEdit{
		{Key: "1", Override: pfloat(0.5), IsActive: true},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !res.IsValid {
		t.Fatalf("expected valid result, got %+v", res)
	}
	if len(repo.replaced) != 1 {
		t.Fatalf("expected table persisted once, got %d", len(repo.replaced))
	}
	for _, e := range repo.table {
		if e.Key == "1" && (e.Override == nil || *e.Override != 0.5) {
			t.Fatalf("edit not applied: %+v", e)
		}
	}
}

func TestSaveOverrides_RejectsInvalidWithoutPersisting(t *testing.T) {
	repo := seededRepo()
	svc := app.NewTableService(repo, &fakeCache{})

	// Deactivate double occupancy and add a negative override in one edit.
	res, err := svc.SaveOverrides(context.Background(), 7, []domain.CombinationEdit{
		{Key: "2", IsActive: false},
		{Key: "1", Override: pfloat(-1), IsActive: true},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(res.Errors) != 2 {
		t.Fatalf("expected both violations reported, got %v", res.Errors)
	}
	if len(repo.replaced) != 0 {
		t.Fatal("invalid table must not be persisted")
	}
}

func TestSaveOverrides_UnknownKey(t *testing.T) {
	svc := app.NewTableService(seededRepo(), &fakeCache{})

	_, err := svc.SaveOverrides(context.Background(), 7, []domain.CombinationEdit{
		{Key: "9+9_ghost", IsActive: true},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
