// Package runlog records augmentation runs in a local sqlite database
// so that any perturbed scene can be regenerated from its seed and
// parameters. The core augmenters never touch this; it is used by the
// operator tooling around them.
package runlog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run kinds as stored in the kind column.
const (
	KindReflectX = "reflect_x"
	KindReflectY = "reflect_y"
	KindScale    = "scale"
)

//go:embed schema.sql
var schemaSQL string

// Run describes one augmentation call. Probability is meaningful for
// the reflect kinds, ScaleLow/ScaleHigh for the scale kind; the unused
// fields are stored as NULL.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Kind        string
	Seed        uint64
	Probability float64
	ScaleLow    float64
	ScaleHigh   float64
	LidarRows   int
	CuboidRows  int
	Applied     bool
}

// DB is a sqlite-backed append-only run log.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the run log at path and applies the
// schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply run log schema: %w", err)
	}
	return &DB{db}, nil
}

// RecordRun appends one run and returns its row id. CreatedAt defaults
// to now when zero.
func (db *DB) RecordRun(r Run) (int64, error) {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var probability, scaleLow, scaleHigh any
	switch r.Kind {
	case KindReflectX, KindReflectY:
		probability = r.Probability
	case KindScale:
		scaleLow, scaleHigh = r.ScaleLow, r.ScaleHigh
	default:
		return 0, fmt.Errorf("record run: unknown kind %q", r.Kind)
	}

	res, err := db.Exec(`
		INSERT INTO augmentation_runs
			(created_at_ns, kind, seed, probability, scale_low, scale_high,
			 lidar_rows, cuboid_rows, applied)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.UnixNano(), r.Kind, int64(r.Seed), probability, scaleLow, scaleHigh,
		r.LidarRows, r.CuboidRows, r.Applied)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run id: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, created_at_ns, kind, seed,
		       COALESCE(probability, 0), COALESCE(scale_low, 0), COALESCE(scale_high, 0),
		       lidar_rows, cuboid_rows, applied
		FROM augmentation_runs
		ORDER BY created_at_ns DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAtNs, seed int64
		if err := rows.Scan(&r.ID, &createdAtNs, &r.Kind, &seed,
			&r.Probability, &r.ScaleLow, &r.ScaleHigh,
			&r.LidarRows, &r.CuboidRows, &r.Applied); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, createdAtNs)
		r.Seed = uint64(seed)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
