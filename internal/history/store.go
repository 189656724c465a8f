package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNoSnapshots = errors.New("no snapshots available")

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS snapshots (
  schema_version INTEGER NOT NULL,
  run_id TEXT NOT NULL,
  ts_utc TEXT NOT NULL,
  analysis_name TEXT NOT NULL,
  file_results INTEGER NOT NULL,
  entity_results INTEGER NOT NULL,
  parsing_hits INTEGER NOT NULL,
  parsing_misses INTEGER NOT NULL,
  cycle_count INTEGER NOT NULL,
  runtime_ms INTEGER NOT NULL,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP),
  PRIMARY KEY (run_id)
);
CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts_utc);
CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(analysis_name);
`,
	},
}

// Store persists run snapshots in a local SQLite database.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema_migrations version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
	}

	return nil
}

// Save inserts one snapshot row.
func (s *Store) Save(snap Snapshot) error {
	_, err := s.db.Exec(`
INSERT INTO snapshots (schema_version, run_id, ts_utc, analysis_name, file_results,
  entity_results, parsing_hits, parsing_misses, cycle_count, runtime_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		SchemaVersion,
		snap.RunID,
		snap.Timestamp.UTC().Format(time.RFC3339Nano),
		snap.AnalysisName,
		snap.FileResults,
		snap.EntityResults,
		snap.ParsingHits,
		snap.ParsingMisses,
		snap.CycleCount,
		snap.RuntimeMillis,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", snap.RunID, err)
	}
	return nil
}

// Recent returns up to limit snapshots of one analysis, oldest first.
func (s *Store) Recent(analysisName string, limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(`
SELECT schema_version, run_id, ts_utc, analysis_name, file_results, entity_results,
  parsing_hits, parsing_misses, cycle_count, runtime_ms
FROM snapshots
WHERE analysis_name = ?
ORDER BY ts_utc DESC
LIMIT ?`, analysisName, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts string
		if err := rows.Scan(&snap.SchemaVersion, &snap.RunID, &ts, &snap.AnalysisName,
			&snap.FileResults, &snap.EntityResults, &snap.ParsingHits, &snap.ParsingMisses,
			&snap.CycleCount, &snap.RuntimeMillis); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot timestamp %q: %w", ts, err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into oldest-first order for trend building.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Trend builds a delta report over the most recent runs.
func (s *Store) Trend(analysisName string, limit int) (TrendReport, error) {
	snapshots, err := s.Recent(analysisName, limit)
	if err != nil {
		return TrendReport{}, err
	}
	return BuildTrendReport(analysisName, snapshots)
}
