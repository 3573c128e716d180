// Package journal records the outcome of every step invocation in a
// workspace-local sqlite database. The journal is write-only as far as
// evaluation is concerned: verdicts are always derived from file
// timestamps, never from past runs.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mehmetkoksal-w/newer/internal/config"
)

// FileName is the database file inside the workspace state directory.
const FileName = "journal.db"

// timeLayout is fixed width so that started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded step invocation.
type Entry struct {
	ID          string        `json:"id"`
	Step        string        `json:"step"`
	Stale       bool          `json:"stale"`
	OutOfDate   string        `json:"outOfDate,omitempty"`
	Source      string        `json:"source,omitempty"`
	Unresolved  []string      `json:"unresolved,omitempty"`
	Missing     []string      `json:"missing,omitempty"`
	Actions     []string      `json:"actions,omitempty"`
	DryRun      bool          `json:"dryRun,omitempty"`
	ActionError string        `json:"actionError,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
}

// Filter narrows List results.
type Filter struct {
	Step  string
	Limit int
}

// Journal is an open run journal.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal of the workspace at root.
func Open(root string) (*Journal, error) {
	dir, err := config.EnsureLayout(root)
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, FileName))
}

// OpenPath opens or creates a journal database at path.
func OpenPath(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	j := &Journal{db: db}
	if err := j.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return j, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			step TEXT NOT NULL,
			stale INTEGER NOT NULL,
			out_of_date TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			unresolved TEXT NOT NULL DEFAULT '[]',
			missing TEXT NOT NULL DEFAULT '[]',
			actions TEXT NOT NULL DEFAULT '[]',
			dry_run INTEGER NOT NULL DEFAULT 0,
			action_error TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_step ON runs(step, started_at)`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.ExecContext(context.Background(), stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record appends e and returns it with its ID filled in.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}
	unresolved, err := encodeList(e.Unresolved)
	if err != nil {
		return e, err
	}
	missing, err := encodeList(e.Missing)
	if err != nil {
		return e, err
	}
	actions, err := encodeList(e.Actions)
	if err != nil {
		return e, err
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO runs (id, step, stale, out_of_date, source, unresolved, missing, actions, dry_run, action_error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Step, boolToInt(e.Stale), e.OutOfDate, e.Source, unresolved, missing, actions,
		boolToInt(e.DryRun), e.ActionError, e.StartedAt.UTC().Format(timeLayout), e.Duration.Milliseconds(),
	)
	if err != nil {
		return e, fmt.Errorf("record run: %w", err)
	}
	return e, nil
}

// List returns recorded runs, newest first.
func (j *Journal) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `SELECT id, step, stale, out_of_date, source, unresolved, missing, actions, dry_run, action_error, started_at, duration_ms FROM runs`
	var args []any
	if f.Step != "" {
		query += ` WHERE step = ?`
		args = append(args, f.Step)
	}
	query += ` ORDER BY started_at DESC, rowid DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                            Entry
			stale, dryRun                int
			unresolved, missing, actions string
			startedAt                    string
			durationMS                   int64
		)
		if err := rows.Scan(&e.ID, &e.Step, &stale, &e.OutOfDate, &e.Source, &unresolved, &missing, &actions,
			&dryRun, &e.ActionError, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		e.Stale = stale != 0
		e.DryRun = dryRun != 0
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if e.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at of %s: %w", e.ID, err)
		}
		if e.Unresolved, err = decodeList(unresolved); err != nil {
			return nil, err
		}
		if e.Missing, err = decodeList(missing); err != nil {
			return nil, err
		}
		if e.Actions, err = decodeList(actions); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func encodeList(v []string) (string, error) {
	if len(v) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
