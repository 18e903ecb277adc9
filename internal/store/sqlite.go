package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gridsight/hexviz/internal/dataset"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	source     TEXT NOT NULL,
	records    TEXT NOT NULL,
	count      INTEGER NOT NULL,
	min_value  REAL NOT NULL,
	max_value  REAL NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot freezes a parsed dataset under a unique name. Saving an
// existing name replaces the snapshot.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, name, source string, records []dataset.CellRecord) (*Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	rng := dataset.ComputeRange(records)

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal records")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, source, records, count, min_value, max_value, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			source = excluded.source,
			records = excluded.records,
			count = excluded.count,
			min_value = excluded.min_value,
			max_value = excluded.max_value,
			created_at = excluded.created_at`,
		id, name, source, string(recordsJSON), len(records), rng.Min, rng.Max, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: save snapshot %s", name)
	}

	return &Snapshot{
		ID:        id,
		Name:      name,
		Source:    source,
		Records:   records,
		Count:     len(records),
		Min:       rng.Min,
		Max:       rng.Max,
		CreatedAt: now,
	}, nil
}

// GetSnapshot loads a snapshot with its records by name.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, name string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, source, records, count, min_value, max_value, created_at
		 FROM snapshots WHERE name = ?`,
		name,
	)

	var snap Snapshot
	var recordsJSON string
	err := row.Scan(&snap.ID, &snap.Name, &snap.Source, &recordsJSON,
		&snap.Count, &snap.Min, &snap.Max, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("snapshot not found: %s", name)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get snapshot %s", name)
	}

	if err := json.Unmarshal([]byte(recordsJSON), &snap.Records); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal snapshot %s", name)
	}
	return &snap, nil
}

// ListSnapshots returns all snapshot summaries, newest first, without records.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source, count, min_value, max_value, created_at
		 FROM snapshots ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Source,
			&snap.Count, &snap.Min, &snap.Max, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: list snapshots iterate")
}

// DeleteSnapshot removes a snapshot by name.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete snapshot %s", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("snapshot not found: %s", name)
	}
	return nil
}
