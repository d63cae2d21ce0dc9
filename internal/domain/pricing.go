package domain

// OccupancyConfig bounds the guest compositions a room type can host.
// BaseOccupancy is the adult count whose multiplier is exactly 1.0.
type OccupancyConfig struct {
	MinAdults      int
	MaxAdults      int
	MaxChildren    int
	TotalMaxGuests int
	BaseOccupancy  int
}

// AgeGroup is a hotel-level child age bracket ("infant", "child", ...).
// Names maps locale -> label; "tr" is the catalog's primary language.
type AgeGroup struct {
	Code  string            `json:"code"`
	Names map[string]string `json:"names"`
}

// ChildSlot places one child (by age group) at a 1-based position within a
// combination.
type ChildSlot struct {
	Order    int    `json:"order"`
	AgeGroup string `json:"ageGroup"`
}

// CombinationEntry is one sellable (or disabled) guest composition.
// Override == nil means "no override"; a zero value is a real override
// meaning the occupancy stays free.
type CombinationEntry struct {
	Key        string      `json:"key"`
	Adults     int         `json:"adults"`
	Children   []ChildSlot `json:"children,omitempty"`
	Calculated float64     `json:"calculatedMultiplier"`
	Override   *float64    `json:"overrideMultiplier"`
	IsActive   bool        `json:"isActive"`
}

// CombinationEdit is one operator edit to an existing table entry. Edits
// carry the entry's full editable state, not a delta.
type CombinationEdit struct {
	Key      string   `json:"key"`
	Override *float64 `json:"overrideMultiplier"`
	IsActive bool     `json:"isActive"`
}

// RoomType carries the pricing configuration for one bookable room category.
// RoundingRule is persisted as a plain string alongside the rate.
type RoomType struct {
	ID           int64
	HotelID      int64
	Name         string
	Occupancy    OccupancyConfig
	RoundingRule string
	BaseRate     float64
}
