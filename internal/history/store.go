package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"ffui/internal/config"
	"ffui/internal/encoding"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users then need to delete the history database.
const schemaVersion = 1

// Store manages session history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.HistoryDB
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("history database has schema version %d, expected %d (delete %s to reset)",
			version, schemaVersion, s.path)
	}
	return nil
}

// Record persists a finished session. It implements encoding.Recorder.
func (s *Store) Record(ctx context.Context, outcome encoding.Outcome) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO session_history (
            session_id, source_path, target_format, device, video_codec,
            output_path, status, percent, source_duration_seconds,
            started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.SessionID,
		outcome.SourcePath,
		outcome.TargetFormat,
		string(outcome.Device),
		outcome.VideoCodec,
		outcome.OutputPath,
		string(outcome.Status),
		outcome.Percent,
		outcome.DurationSeconds,
		outcome.StartedAt.UTC().Format(time.RFC3339Nano),
		outcome.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session history: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first. A limit <= 0 returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, session_id, source_path, target_format, device,
        video_codec, output_path, status, percent, source_duration_seconds,
        started_at, finished_at
        FROM session_history ORDER BY finished_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list session history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session history: %w", err)
	}
	return records, nil
}

// Clear removes all records and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM session_history")
	if err != nil {
		return 0, fmt.Errorf("clear session history: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var record Record
	var startedAt, finishedAt string
	err := rows.Scan(
		&record.ID,
		&record.SessionID,
		&record.SourcePath,
		&record.TargetFormat,
		&record.Device,
		&record.VideoCodec,
		&record.OutputPath,
		&record.Status,
		&record.Percent,
		&record.SourceDurationSeconds,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scan session history: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		record.StartedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339Nano, finishedAt); err == nil {
		record.FinishedAt = parsed
	}
	return record, nil
}

var _ encoding.Recorder = (*Store)(nil)
