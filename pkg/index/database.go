// Package index is the embedded full-text engine for a single geocoding
// shard. A shard is a self-contained SQLite database with a divisions table,
// an FTS5 index over division names, and optionally a divisions_reverse
// table for bbox containment lookups.
//
// Shards are immutable; a Database is a read-only handle opened per request
// from a file path or raw bytes and discarded when the request completes.
package index

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/vfs/memdb"

	"github.com/brad-richardson/overture-geocode/pkg/geocoder"
)

// BM25 scoring and the population boost are computed in Go, not SQL, so
// rows from different shards rank identically after boosting.
const searchDivisionsSQL = `
	SELECT
		d.rowid,
		d.gers_id,
		d.type,
		d.primary_name,
		d.lat,
		d.lon,
		d.bbox_xmin,
		d.bbox_ymin,
		d.bbox_xmax,
		d.bbox_ymax,
		d.population,
		d.country,
		d.region,
		bm25(divisions_fts) AS bm25_score
	FROM divisions_fts
	JOIN divisions d ON divisions_fts.rowid = d.rowid
	WHERE divisions_fts MATCH ?
	ORDER BY bm25_score
	LIMIT ?`

const reverseLookupSQL = `
	SELECT
		gers_id,
		subtype,
		primary_name,
		lat,
		lon,
		bbox_xmin,
		bbox_ymin,
		bbox_xmax,
		bbox_ymax,
		area,
		population,
		country,
		region
	FROM divisions_reverse
	WHERE bbox_xmin <= ?1
	  AND bbox_xmax >= ?1
	  AND bbox_ymin <= ?2
	  AND bbox_ymax >= ?2
	ORDER BY area ASC
	LIMIT 50`

// Database is a read-only handle to one shard.
type Database struct {
	db      *sql.DB
	memName string
}

// Open opens a shard from a file path.
func Open(path string) (*Database, error) {
	return open("file:"+path+"?mode=ro", "")
}

// OpenBytes opens a shard directly from raw database bytes using an
// in-memory VFS. The backing memory is released on Close.
func OpenBytes(data []byte) (*Database, error) {
	name := "shard-" + uuid.NewString() + ".db"
	memdb.Create(name, data)

	db, err := open("file:/"+name+"?vfs=memdb", name)
	if err != nil {
		memdb.Delete(name)
		return nil, err
	}
	return db, nil
}

func open(dsn, memName string) (*Database, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening shard database: %w", geocoder.ErrIndex, err)
	}

	// Read-only tuning, matching how shards are built.
	pragmas := []string{
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: applying pragma %q: %w", geocoder.ErrIndex, pragma, err)
		}
	}

	return &Database{db: db, memName: memName}, nil
}

// Close releases the handle and, for byte-backed shards, the in-memory copy.
func (d *Database) Close() error {
	err := d.db.Close()
	if d.memName != "" {
		memdb.Delete(d.memName)
	}
	return err
}

// Search runs a prepared FTS expression against the shard and returns up to
// limit raw rows with their BM25 scores, best match first.
func (d *Database) Search(ftsQuery string, limit int) ([]geocoder.DivisionRow, error) {
	rows, err := d.db.Query(searchDivisionsSQL, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying divisions: %w", geocoder.ErrIndex, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var matches []geocoder.DivisionRow
	for rows.Next() {
		var row geocoder.DivisionRow
		var population sql.NullInt64
		var country, region sql.NullString

		err = rows.Scan(
			&row.RowID, &row.GersID, &row.Type, &row.PrimaryName,
			&row.Lat, &row.Lon,
			&row.Bbox.Xmin, &row.Bbox.Ymin, &row.Bbox.Xmax, &row.Bbox.Ymax,
			&population, &country, &region,
			&row.BM25Score,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning division row: %w", geocoder.ErrIndex, err)
		}

		row.Population = population.Int64
		row.Country = country.String
		row.Region = region.String
		matches = append(matches, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading division rows: %w", geocoder.ErrIndex, err)
	}
	return matches, nil
}

// ReverseLookup returns the divisions whose bounding box contains the point,
// smallest area first, capped at 50 rows.
func (d *Database) ReverseLookup(lat, lon float64) ([]geocoder.ReverseResult, error) {
	rows, err := d.db.Query(reverseLookupSQL, lon, lat)
	if err != nil {
		return nil, fmt.Errorf("%w: querying divisions_reverse: %w", geocoder.ErrIndex, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var matches []geocoder.ReverseResult
	for rows.Next() {
		var r geocoder.ReverseResult
		var population sql.NullInt64
		var country, region sql.NullString
		var area sql.NullFloat64

		err = rows.Scan(
			&r.GersID, &r.Subtype, &r.PrimaryName,
			&r.Lat, &r.Lon,
			&r.Bbox.Xmin, &r.Bbox.Ymin, &r.Bbox.Xmax, &r.Bbox.Ymax,
			&area, &population, &country, &region,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning reverse row: %w", geocoder.ErrIndex, err)
		}

		r.Area = area.Float64
		r.Population = population.Int64
		r.Country = country.String
		r.Region = region.String
		matches = append(matches, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading reverse rows: %w", geocoder.ErrIndex, err)
	}
	return matches, nil
}

// RecordCount returns the number of rows in the divisions table.
func (d *Database) RecordCount() (int64, error) {
	var count int64
	if err := d.db.QueryRow("SELECT COUNT(*) FROM divisions").Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting divisions: %w", geocoder.ErrIndex, err)
	}
	return count, nil
}

// Metadata returns the value for a key from the shard's metadata table, or
// ok=false when the key is absent.
func (d *Database) Metadata(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: reading metadata %q: %w", geocoder.ErrIndex, key, err)
	}
	return value, true, nil
}
