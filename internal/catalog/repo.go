package catalog

import (
	"database/sql"
	"fmt"
	"time"
)

// CastleRow represents a row in the castles table.
type CastleRow struct {
	ID           string
	Name         string
	Country      string
	Style        string
	Completeness int
	UpdatedAt    time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID      string
	Name    string
	Country string
	Snippet string
}

// CountryCount is one row of the per-country aggregate.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// UpsertCastle inserts or replaces a castle row and its FTS entry within a transaction.
func (db *DB) UpsertCastle(row CastleRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO castles (id, name, country, style, completeness, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name         = excluded.name,
			country      = excluded.country,
			style        = excluded.style,
			completeness = excluded.completeness,
			body         = excluded.body,
			updated_at   = CURRENT_TIMESTAMP
	`, row.ID, row.Name, row.Country, row.Style, row.Completeness, body)
	if err != nil {
		return fmt.Errorf("catalog: upsert castle: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, row.ID, row.Name, row.Country, body); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteCastle removes a castle row and its FTS entry.
func (db *DB) DeleteCastle(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	_, _ = tx.Exec(`DELETE FROM castles WHERE id = ?`, id)

	return tx.Commit()
}

// GetCastle returns one castle row, or nil when the id is unknown.
func (db *DB) GetCastle(id string) (*CastleRow, error) {
	var row CastleRow
	err := db.conn.QueryRow(`
		SELECT id, name, country, style, completeness, updated_at
		FROM castles WHERE id = ?
	`, id).Scan(&row.ID, &row.Name, &row.Country, &row.Style, &row.Completeness, &row.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: get castle: %w", err)
	}
	return &row, nil
}

// ListCastles returns a page of castle rows plus the total count.
// country filters exactly; sort is one of "name", "completeness", "updated_at".
func (db *DB) ListCastles(limit, offset int, country, sort string) ([]CastleRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orderBy := "name ASC"
	switch sort {
	case "completeness":
		orderBy = "completeness DESC, name ASC"
	case "updated_at":
		orderBy = "updated_at DESC"
	}

	where := ""
	args := []any{}
	if country != "" {
		where = "WHERE country = ?"
		args = append(args, country)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM castles `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("catalog: count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, country, style, completeness, updated_at
		FROM castles %s ORDER BY %s LIMIT ? OFFSET ?
	`, where, orderBy)
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var out []CastleRow
	for rows.Next() {
		var r CastleRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Country, &r.Style, &r.Completeness, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// Countries returns the per-country castle counts, largest first.
func (db *DB) Countries() ([]CountryCount, error) {
	rows, err := db.conn.Query(`
		SELECT country, COUNT(*) FROM castles GROUP BY country ORDER BY COUNT(*) DESC, country ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog: countries: %w", err)
	}
	defer rows.Close()

	var out []CountryCount
	for rows.Next() {
		var c CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CompletenessStats returns the row count and the average completeness
// aggregated over the whole catalog, not a page of it.
func (db *DB) CompletenessStats() (int, float64, error) {
	var total int
	var avg float64
	err := db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(AVG(completeness), 0) FROM castles
	`).Scan(&total, &avg)
	if err != nil {
		return 0, 0, fmt.Errorf("catalog: completeness stats: %w", err)
	}
	return total, avg, nil
}

// AllIDs returns every catalogued castle id.
func (db *DB) AllIDs() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT id FROM castles`)
	if err != nil {
		return nil, fmt.Errorf("catalog: all ids: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}
