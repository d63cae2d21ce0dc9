package mysql

const upsertRoomTypeSQL = `
INSERT INTO room_types
  (id, hotel_id, name, min_adults, max_adults, max_children, total_max_guests, base_occupancy, rounding_rule, base_rate)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id         = VALUES(hotel_id),
  name             = VALUES(name),
  min_adults       = VALUES(min_adults),
  max_adults       = VALUES(max_adults),
  max_children     = VALUES(max_children),
  total_max_guests = VALUES(total_max_guests),
  base_occupancy   = VALUES(base_occupancy),
  rounding_rule    = VALUES(rounding_rule),
  base_rate        = VALUES(base_rate),
  updated_at       = CURRENT_TIMESTAMP
`

const upsertAgeGroupSQL = `
INSERT INTO age_groups (hotel_id, code, names, position)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  names    = VALUES(names),
  position = VALUES(position)
`

const getRoomTypeSQL = `
SELECT id, hotel_id, name, min_adults, max_adults, max_children, total_max_guests, base_occupancy, rounding_rule, base_rate
FROM room_types
WHERE id = ?
`

const listRoomTypesSQL = `
SELECT id, hotel_id, name, min_adults, max_adults, max_children, total_max_guests, base_occupancy, rounding_rule, base_rate
FROM room_types
ORDER BY id
`

const listAgeGroupsSQL = `
SELECT code, names
FROM age_groups
WHERE hotel_id = ?
ORDER BY position, code
`

const getTableSQL = `
SELECT combo_key, adults, children, calculated, override, active
FROM combinations
WHERE room_type_id = ?
ORDER BY adults, combo_key
`

const deleteTableSQL = `DELETE FROM combinations WHERE room_type_id = ?`

const insertCombinationsPrefix = "INSERT INTO combinations\n  (room_type_id, combo_key, adults, children, calculated, override, active)\nVALUES "
