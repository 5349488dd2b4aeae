// Package journal keeps an append-only record of theme applies in a
// SQLite database, for the history command and post-hoc diagnostics.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver for database/sql
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite for cross-platform compatibility

	"github.com/bnema/themectl/internal/orchestrator"
)

const schema = `
CREATE TABLE IF NOT EXISTS apply_runs (
	id          TEXT PRIMARY KEY,
	theme_id    TEXT NOT NULL,
	trigger     TEXT NOT NULL,
	ok          INTEGER NOT NULL,
	fatal_error TEXT NOT NULL DEFAULT '',
	fanout      TEXT NOT NULL DEFAULT '[]',
	duration_ms INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_apply_runs_created_at ON apply_runs(created_at);
`

// Entry is one journal row.
type Entry struct {
	RunID      string
	ThemeID    string
	Trigger    string
	OK         bool
	FatalError string
	FanoutJSON string
	Duration   time.Duration
	CreatedAt  time.Time
}

// Journal owns the apply-runs database. Implements
// orchestrator.Recorder.
type Journal struct {
	db         *sql.DB
	maxEntries int
	log        zerolog.Logger
}

// Open opens (creating if needed) the journal database at path.
// maxEntries bounds retained rows; older rows are pruned on insert.
func Open(path string, maxEntries int, log zerolog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing journal schema: %w", err)
	}

	return &Journal{
		db:         db,
		maxEntries: maxEntries,
		log:        log.With().Str("component", "journal").Logger(),
	}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// RecordApply implements orchestrator.Recorder. Best-effort: journal
// write failures are logged, never propagated into the apply path.
func (j *Journal) RecordApply(rec orchestrator.ApplyRecord) {
	runID := rec.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	fanoutJSON, err := json.Marshal(rec.Fanout.Results)
	if err != nil {
		fanoutJSON = []byte("[]")
	}

	_, err = j.db.Exec(
		`INSERT INTO apply_runs (id, theme_id, trigger, ok, fatal_error, fanout, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.ThemeID, string(rec.Trigger), rec.OK, rec.FatalError,
		string(fanoutJSON), rec.Duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		j.log.Warn().Err(err).Str("theme", rec.ThemeID).Msg("journal write failed")
		return
	}

	if j.maxEntries > 0 {
		j.prune()
	}
}

func (j *Journal) prune() {
	_, err := j.db.Exec(
		`DELETE FROM apply_runs WHERE id NOT IN
		 (SELECT id FROM apply_runs ORDER BY created_at DESC, id LIMIT ?)`,
		j.maxEntries,
	)
	if err != nil {
		j.log.Warn().Err(err).Msg("journal prune failed")
	}
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, theme_id, trigger, ok, fatal_error, fanout, duration_ms, created_at
		 FROM apply_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ok int
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&e.RunID, &e.ThemeID, &e.Trigger, &ok, &e.FatalError, &e.FanoutJSON, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.OK = ok != 0
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
