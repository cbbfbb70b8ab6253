// Package store keeps an in-memory SQLite journal of session events.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/catchme/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN opens a private in-memory database that lives as long as the Store.
const MemoryDSN = "file:catchme?mode=memory"

// Store wraps SQLite access for journaled events.
type Store struct {
	db *sql.DB
}

// Open opens the database and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY,
			at TEXT NOT NULL,
			kind TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			attempts INTEGER NOT NULL,
			catches INTEGER NOT NULL,
			detail TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record appends an event and returns its id.
func (s *Store) Record(ctx context.Context, e model.Event) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (at, kind, difficulty, x, y, attempts, catches, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.At.Format(time.RFC3339Nano),
		string(e.Kind),
		e.Difficulty,
		e.Position.X,
		e.Position.Y,
		e.Stats.Attempts,
		e.Stats.Catches,
		e.Detail,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns up to n events, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]model.Event, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, kind, difficulty, x, y, attempts, catches, detail
		 FROM events
		 ORDER BY id DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		var at, kind string
		if err := rows.Scan(&at, &kind, &e.Difficulty, &e.Position.X, &e.Position.Y, &e.Stats.Attempts, &e.Stats.Catches, &e.Detail); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		e.At = parsed
		e.Kind = model.EventKind(kind)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Summary aggregates journaled events per difficulty, ordered by difficulty name.
func (s *Store) Summary(ctx context.Context) ([]model.DifficultySummary, error) {
	query := `SELECT difficulty,
		SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) AS relocations,
		SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) AS near_misses,
		SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) AS catches,
		SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END) AS unlocks
	FROM events
	WHERE kind IN (?, ?, ?, ?)
	GROUP BY difficulty
	ORDER BY difficulty ASC`
	kinds := []model.EventKind{model.EventRelocate, model.EventAttempt, model.EventCatch, model.EventUnlock}
	args := make([]any, 0, len(kinds)*2)
	for _, k := range kinds {
		args = append(args, string(k))
	}
	args = append(args, args...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.DifficultySummary
	for rows.Next() {
		var sum model.DifficultySummary
		if err := rows.Scan(&sum.Difficulty, &sum.Relocations, &sum.NearMisses, &sum.Catches, &sum.Unlocks); err != nil {
			return nil, err
		}
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SuccessTrend returns the success rate after every attempt or catch, in order.
func (s *Store) SuccessTrend(ctx context.Context) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT attempts, catches FROM events WHERE kind IN (?, ?) ORDER BY id ASC`,
		string(model.EventAttempt), string(model.EventCatch))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var trend []float64
	for rows.Next() {
		var st model.SessionStats
		if err := rows.Scan(&st.Attempts, &st.Catches); err != nil {
			return nil, err
		}
		trend = append(trend, float64(st.SuccessRate()))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trend, nil
}

// Recorder adapts a Store to the session's fire-and-forget observer.
type Recorder struct {
	store *Store
	log   zerolog.Logger
}

// NewRecorder returns a Recorder that logs write failures instead of returning them.
func NewRecorder(st *Store, log zerolog.Logger) *Recorder {
	return &Recorder{store: st, log: log}
}

// Record journals e.
func (r *Recorder) Record(e model.Event) {
	if _, err := r.store.Record(context.Background(), e); err != nil {
		r.log.Error().Err(err).Str("kind", string(e.Kind)).Msg("failed to journal event")
	}
}
