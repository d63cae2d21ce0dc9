package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("obp: not found")

type PricingRepository interface {
	// Read paths
	GetRoomType(ctx context.Context, id int64) (RoomType, error)
	ListRoomTypes(ctx context.Context) ([]RoomType, error)
	ListAgeGroups(ctx context.Context, hotelID int64) ([]AgeGroup, error)
	GetTable(ctx context.Context, roomTypeID int64) ([]CombinationEntry, error)

	// Write paths
	UpsertRoomType(ctx context.Context, rt RoomType) error
	UpsertAgeGroups(ctx context.Context, hotelID int64, groups []AgeGroup) error
	ReplaceTable(ctx context.Context, roomTypeID int64, entries []CombinationEntry) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
