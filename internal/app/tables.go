package app

import (
	"context"
	"fmt"

	"obp_engine/internal/domain"
	"obp_engine/internal/obp"
)

func tableCacheKey(roomTypeID int64) string { return fmt.Sprintf("obp:table:%d", roomTypeID) }

// TableService owns the write side of combination tables: wholesale
// regeneration and operator edits.
type TableService struct {
	repo  domain.PricingRepository
	cache domain.Cache
}

func NewTableService(r domain.PricingRepository, c domain.Cache) *TableService {
	return &TableService{repo: r, cache: c}
}

// Regenerate rebuilds the combination table for a room type from its current
// occupancy limits and age-group catalog. Operator edits on surviving
// combinations are carried forward by key; combinations that no longer exist
// lose their edits with the old table. The rebuilt table is validated after
// the carry-forward: violations inherited from old edits do not block the
// rebuild (regeneration is the recovery path after a catalog change) but are
// returned for the caller to surface.
func (s *TableService) Regenerate(ctx context.Context, roomTypeID int64) ([]domain.CombinationEntry, obp.ValidationResult, error) {
	rt, err := s.repo.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return nil, obp.ValidationResult{}, err
	}
	groups, err := s.repo.ListAgeGroups(ctx, rt.HotelID)
	if err != nil {
		return nil, obp.ValidationResult{}, err
	}
	fresh, err := obp.Generate(rt.Occupancy, groups)
	if err != nil {
		return nil, obp.ValidationResult{}, err
	}

	// Best-effort carry-forward; a missing previous table just means a first run.
	if prev, err := s.repo.GetTable(ctx, roomTypeID); err == nil {
		carryForward(fresh, prev)
	}
	res := obp.Validate(fresh, rt.Occupancy.MinAdults)

	if err := s.repo.ReplaceTable(ctx, roomTypeID, fresh); err != nil {
		return nil, obp.ValidationResult{}, err
	}
	s.invalidate(ctx, roomTypeID)
	return fresh, res, nil
}

func carryForward(fresh, prev []domain.CombinationEntry) {
	byKey := make(map[string]domain.CombinationEntry, len(prev))
	for _, e := range prev {
		byKey[e.Key] = e
	}
	for i := range fresh {
		if old, ok := byKey[fresh[i].Key]; ok {
			fresh[i].Override = old.Override
			fresh[i].IsActive = old.IsActive
		}
	}
}

// SaveOverrides applies operator edits to the stored table and validates the
// result. When validation fails nothing is persisted and the full error list
// is returned for the save-flow to display; the nil error distinguishes a
// business rejection from an infrastructure failure.
func (s *TableService) SaveOverrides(ctx context.Context, roomTypeID int64, edits []domain.CombinationEdit) (obp.ValidationResult, error) {
	rt, err := s.repo.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return obp.ValidationResult{}, err
	}
	table, err := s.repo.GetTable(ctx, roomTypeID)
	if err != nil {
		return obp.ValidationResult{}, err
	}

	byKey := make(map[string]int, len(table))
	for i, e := range table {
		byKey[e.Key] = i
	}
	for _, ed := range edits {
		i, ok := byKey[ed.Key]
		if !ok {
			return obp.ValidationResult{}, fmt.Errorf("unknown combination %q: %w", ed.Key, domain.ErrNotFound)
		}
		table[i].Override = ed.Override
		table[i].IsActive = ed.IsActive
	}

	res := obp.Validate(table, rt.Occupancy.MinAdults)
	if !res.IsValid {
		return res, nil
	}
	if err := s.repo.ReplaceTable(ctx, roomTypeID, table); err != nil {
		return res, err
	}
	s.invalidate(ctx, roomTypeID)
	return res, nil
}

func (s *TableService) invalidate(ctx context.Context, roomTypeID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, tableCacheKey(roomTypeID))
}
