package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"obp_engine/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertRoomType(ctx context.Context, rt domain.RoomType) error {
	_, err := r.db.ExecContext(ctx, upsertRoomTypeSQL,
		rt.ID,
		rt.HotelID,
		rt.Name,
		rt.Occupancy.MinAdults,
		rt.Occupancy.MaxAdults,
		rt.Occupancy.MaxChildren,
		rt.Occupancy.TotalMaxGuests,
		rt.Occupancy.BaseOccupancy,
		rt.RoundingRule,
		rt.BaseRate,
	)
	return err
}

func (r *Repo) UpsertAgeGroups(ctx context.Context, hotelID int64, groups []domain.AgeGroup) error {
	// Position follows the catalog order the caller provides.
	for i, g := range groups {
		names, err := json.Marshal(g.Names)
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx, upsertAgeGroupSQL, hotelID, g.Code, string(names), i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) GetRoomType(ctx context.Context, id int64) (domain.RoomType, error) {
	row := r.db.QueryRowContext(ctx, getRoomTypeSQL, id)
	rt, err := scanRoomType(row.Scan)
	if err == sql.ErrNoRows {
		return domain.RoomType{}, domain.ErrNotFound
	}
	return rt, err
}

func (r *Repo) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	rows, err := r.db.QueryContext(ctx, listRoomTypesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomType
	for rows.Next() {
		rt, err := scanRoomType(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func scanRoomType(scan func(...any) error) (domain.RoomType, error) {
	var rt domain.RoomType
	err := scan(
		&rt.ID,
		&rt.HotelID,
		&rt.Name,
		&rt.Occupancy.MinAdults,
		&rt.Occupancy.MaxAdults,
		&rt.Occupancy.MaxChildren,
		&rt.Occupancy.TotalMaxGuests,
		&rt.Occupancy.BaseOccupancy,
		&rt.RoundingRule,
		&rt.BaseRate,
	)
	return rt, err
}

func (r *Repo) ListAgeGroups(ctx context.Context, hotelID int64) ([]domain.AgeGroup, error) {
	rows, err := r.db.QueryContext(ctx, listAgeGroupsSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AgeGroup
	for rows.Next() {
		var ag domain.AgeGroup
		var namesJSON []byte
		if err := rows.Scan(&ag.Code, &namesJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(namesJSON, &ag.Names); err != nil {
			return nil, err
		}
		out = append(out, ag)
	}
	return out, rows.Err()
}

func (r *Repo) GetTable(ctx context.Context, roomTypeID int64) ([]domain.CombinationEntry, error) {
	rows, err := r.db.QueryContext(ctx, getTableSQL, roomTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CombinationEntry
	for rows.Next() {
		var e domain.CombinationEntry
		var childrenJSON []byte
		var override sql.NullFloat64
		if err := rows.Scan(&e.Key, &e.Adults, &childrenJSON, &e.Calculated, &override, &e.IsActive); err != nil {
			return nil, err
		}
		if len(childrenJSON) > 0 {
			if err := json.Unmarshal(childrenJSON, &e.Children); err != nil {
				return nil, err
			}
		}
		if override.Valid {
			v := override.Float64
			e.Override = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ReplaceTable swaps a room type's combinations wholesale inside one
// transaction, so concurrent readers never see a half-written table.
func (r *Repo) ReplaceTable(ctx context.Context, roomTypeID int64, entries []domain.CombinationEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteTableSQL, roomTypeID); err != nil {
		return err
	}
	if len(entries) > 0 {
		values := make([]string, 0, len(entries))
		args := make([]any, 0, len(entries)*7)
		for _, e := range entries {
			children, merr := json.Marshal(e.Children)
			if merr != nil {
				return merr
			}
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args,
				roomTypeID,
				e.Key,
				e.Adults,
				string(children),
				e.Calculated,
				valF64(e.Override),
				e.IsActive,
			)
		}
		sqlStr := insertCombinationsPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
