package app

import (
	"context"
	"fmt"
	"time"

	"obp_engine/internal/domain"
	"obp_engine/internal/obp"
)

// QuoteService serves the read side: priced quotes and table listings, with
// a cache-aside snapshot so concurrent quoting never observes a half-edited
// table.
type QuoteService struct {
	repo     domain.PricingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQuoteService(r domain.PricingRepository, c domain.Cache, ttl time.Duration) *QuoteService {
	return &QuoteService{repo: r, cache: c, cacheTTL: ttl}
}

// Quote is the priced result for one guest composition. Multiplier and Price
// are meaningful only when Sellable is true; a multiplier of 0 is a real
// "stays free" price, not an absent value.
type Quote struct {
	RoomTypeID int64   `json:"roomTypeId"`
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Sellable   bool    `json:"sellable"`
	Multiplier float64 `json:"multiplier"`
	Price      float64 `json:"price"`
}

// CombinationView is one table row decorated for display: localized name and
// the resolved effective multiplier (nil when the entry is not sellable).
type CombinationView struct {
	Key        string             `json:"key"`
	Name       string             `json:"name"`
	Adults     int                `json:"adults"`
	Children   []domain.ChildSlot `json:"children,omitempty"`
	Calculated float64            `json:"calculatedMultiplier"`
	Override   *float64           `json:"overrideMultiplier"`
	IsActive   bool               `json:"isActive"`
	Effective  *float64           `json:"effectiveMultiplier"`
}

type tableSnapshot struct {
	RoomType  domain.RoomType
	Entries   []domain.CombinationEntry
	AgeGroups []domain.AgeGroup
}

// Quote prices one guest composition against a room type's table.
func (s *QuoteService) Quote(ctx context.Context, roomTypeID int64, adults int, children []domain.ChildSlot, locale string) (Quote, error) {
	snap, err := s.snapshot(ctx, roomTypeID)
	if err != nil {
		return Quote{}, err
	}

	key := obp.BuildKey(adults, children)
	var entry *domain.CombinationEntry
	for i := range snap.Entries {
		if snap.Entries[i].Key == key {
			entry = &snap.Entries[i]
			break
		}
	}
	if entry == nil {
		return Quote{}, fmt.Errorf("combination %q: %w", key, domain.ErrNotFound)
	}

	q := Quote{
		RoomTypeID: roomTypeID,
		Key:        key,
		Name:       obp.BuildName(adults, children, snap.AgeGroups, locale),
	}
	mult, ok := obp.EffectiveMultiplier(*entry)
	if !ok {
		return q, nil // not sellable: a business rejection, not an engine fault
	}
	q.Sellable = true
	q.Multiplier = mult
	q.Price = obp.CalculatePrice(snap.RoomType.BaseRate, mult, obp.RoundingRule(snap.RoomType.RoundingRule))
	return q, nil
}

// ListCombinations returns the full table decorated for admin/UI listings.
func (s *QuoteService) ListCombinations(ctx context.Context, roomTypeID int64, locale string) ([]CombinationView, error) {
	snap, err := s.snapshot(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	out := make([]CombinationView, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		v := CombinationView{
			Key:        e.Key,
			Name:       obp.BuildName(e.Adults, e.Children, snap.AgeGroups, locale),
			Adults:     e.Adults,
			Children:   e.Children,
			Calculated: e.Calculated,
			Override:   e.Override,
			IsActive:   e.IsActive,
		}
		if m, ok := obp.EffectiveMultiplier(e); ok {
			v.Effective = &m
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *QuoteService) snapshot(ctx context.Context, roomTypeID int64) (tableSnapshot, error) {
	key := tableCacheKey(roomTypeID)
	var snap tableSnapshot
	if ok, _ := s.cache.Get(ctx, key, &snap); ok {
		return snap, nil
	}
	rt, err := s.repo.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return tableSnapshot{}, err
	}
	entries, err := s.repo.GetTable(ctx, roomTypeID)
	if err != nil {
		return tableSnapshot{}, err
	}
	groups, err := s.repo.ListAgeGroups(ctx, rt.HotelID)
	if err != nil {
		return tableSnapshot{}, err
	}
	snap = tableSnapshot{RoomType: rt, Entries: entries, AgeGroups: groups}
	_ = s.cache.Set(ctx, key, snap, int(s.cacheTTL.Seconds()))
	return snap, nil
}
