package journal

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes.
const schemaVersion = 1

var (
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("journal closed")

	// ErrNoPath is returned by Open for an empty path, which sqlite would
	// otherwise treat as a private temporary database.
	ErrNoPath = errors.New("journal path is empty")

	// ErrSchemaMismatch indicates the database was created by a different schema version.
	ErrSchemaMismatch = errors.New("journal schema version mismatch")
)

// Run is one batch invocation.
type Run struct {
	ID         string
	Dir        string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Skipped    int
	Failed     int
}

// Entry is the journaled result for one input file.
type Entry struct {
	Path        string
	RunID       string
	ContentHash string
	Direction   string
	Confidence  string
	Method      string
	Clusters    int
	FullText    string
	ProcessedAt time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	closed atomic.Bool
}

// Open initializes or connects to the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection; keep one so they hold for every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection. Closing twice is a no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil || s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) check() error {
	if s == nil || s.db == nil || s.closed.Load() {
		return ErrClosed
	}
	return nil
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
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
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
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// StartRun records the start of a batch over dir and returns it with a fresh id.
func (s *Store) StartRun(ctx context.Context, dir string) (Run, error) {
	if err := s.check(); err != nil {
		return Run{}, err
	}

	run := Run{ID: uuid.NewString(), Dir: dir, StartedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, dir, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Dir, run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stores the final counters of run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	if err := s.check(); err != nil {
		return err
	}

	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, skipped = ?, failed = ? WHERE id = ?`,
		finished.Format(time.RFC3339Nano), run.Processed, run.Skipped, run.Failed, run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run: unknown run %s", run.ID)
	}
	return nil
}

// GetRun fetches a run by id. It returns nil when the run does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	var (
		run      Run
		started  string
		finished sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, dir, started_at, finished_at, processed, skipped, failed FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.Dir, &started, &finished, &run.Processed, &run.Skipped, &run.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.FinishedAt = parseTime(finished.String)
	}
	return &run, nil
}

// Record inserts or replaces the entry for e.Path.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if err := s.check(); err != nil {
		return err
	}
	if e.Path == "" {
		return errors.New("record entry: empty path")
	}

	processed := e.ProcessedAt
	if processed.IsZero() {
		processed = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (
            path, run_id, content_hash, direction, confidence, method, clusters, full_text, processed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            run_id = excluded.run_id,
            content_hash = excluded.content_hash,
            direction = excluded.direction,
            confidence = excluded.confidence,
            method = excluded.method,
            clusters = excluded.clusters,
            full_text = excluded.full_text,
            processed_at = excluded.processed_at`,
		e.Path, e.RunID, e.ContentHash, e.Direction, e.Confidence, e.Method, e.Clusters, e.FullText,
		processed.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record entry %s: %w", e.Path, err)
	}
	return nil
}

// Lookup returns the entry for path, or nil when the path was never recorded.
func (s *Store) Lookup(ctx context.Context, path string) (*Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", path, err)
	}
	return entry, nil
}

// IsCurrent reports whether path was recorded with the given content hash.
func (s *Store) IsCurrent(ctx context.Context, path, hash string) (bool, error) {
	entry, err := s.Lookup(ctx, path)
	if err != nil || entry == nil {
		return false, err
	}
	return entry.ContentHash == hash, nil
}

// Entries lists the entries written by run id, ordered by path.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

const entryColumns = `path, run_id, content_hash, direction, confidence, method, clusters, full_text, processed_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry     Entry
		processed string
	)
	if err := row.Scan(
		&entry.Path, &entry.RunID, &entry.ContentHash, &entry.Direction, &entry.Confidence,
		&entry.Method, &entry.Clusters, &entry.FullText, &processed,
	); err != nil {
		return nil, err
	}
	entry.ProcessedAt = parseTime(processed)
	return &entry, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HashContent returns the hex SHA-256 of data.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
