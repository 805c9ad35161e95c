// Package sqlstore keeps the world state in a SQL table of
// (state_key, state_value, version) rows.
//
// Commit runs in one database transaction. Written keys that were read are
// guarded by their observed version (conditional INSERT for absent keys,
// conditional UPDATE otherwise); read-only keys are re-checked. Any mismatch
// rolls the transaction back and reports sentinel.ErrConflict.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"regnet/internal/ledger"
	"regnet/pkg/platform/sentinel"
)

// Store implements ledger.Store over database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New constructs a SQL-backed world state. Call Migrate before first use.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Migrate creates the world_state table if needed.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("create world_state: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (ledger.Versioned, error) {
	query := s.dialect.rebind(`SELECT state_value, version FROM world_state WHERE state_key = %s`, 1)
	var v ledger.Versioned
	err := s.db.QueryRowContext(ctx, query, []byte(key)).Scan(&v.Value, &v.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Versioned{}, sentinel.ErrNotFound
		}
		return ledger.Versioned{}, fmt.Errorf("read state: %w", translate(err))
	}
	return v, nil
}

func (s *Store) GetMany(ctx context.Context, keys []string) (map[string]ledger.Versioned, error) {
	out := make(map[string]ledger.Versioned, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = []byte(key)
	}
	query := `SELECT state_key, state_value, version FROM world_state WHERE state_key IN (` +
		s.dialect.placeholders(1, len(keys)) + `)`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read states: %w", translate(err))
	}
	defer rows.Close()

	for rows.Next() {
		var key []byte
		var v ledger.Versioned
		if err := rows.Scan(&key, &v.Value, &v.Version); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out[string(key)] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate states: %w", translate(err))
	}
	return out, nil
}

func (s *Store) Commit(ctx context.Context, set ledger.WriteSet) error {
	tx, err := s.db.BeginTx(ctx, s.dialect.txOptions)
	if err != nil {
		return fmt.Errorf("begin commit: %w", translate(err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	written := make(map[string]struct{}, len(set.Writes))
	for _, w := range set.Writes {
		written[w.Key] = struct{}{}
		version, wasRead := set.Reads[w.Key]
		if err := s.write(ctx, tx, w, version, wasRead); err != nil {
			return err
		}
	}
	for key, version := range set.Reads {
		if _, ok := written[key]; ok {
			continue
		}
		if err := s.checkVersion(ctx, tx, key, version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", translate(err))
	}
	return nil
}

func (s *Store) write(ctx context.Context, tx *sql.Tx, w ledger.Write, version uint64, wasRead bool) error {
	var (
		query string
		args  []any
	)
	switch {
	case !wasRead:
		query = s.dialect.rebind(`INSERT INTO world_state (state_key, state_value, version) VALUES (%s, %s, 1)
			ON CONFLICT (state_key) DO UPDATE SET state_value = excluded.state_value, version = world_state.version + 1`, 2)
		args = []any{[]byte(w.Key), w.Value}
	case version == 0:
		query = s.dialect.rebind(`INSERT INTO world_state (state_key, state_value, version) VALUES (%s, %s, 1)
			ON CONFLICT (state_key) DO NOTHING`, 2)
		args = []any{[]byte(w.Key), w.Value}
	default:
		query = s.dialect.rebind(`UPDATE world_state SET state_value = %s, version = version + 1
			WHERE state_key = %s AND version = %s`, 3)
		args = []any{w.Value, []byte(w.Key), version}
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write state: %w", translate(err))
	}
	if !wasRead {
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if n != 1 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Store) checkVersion(ctx context.Context, tx *sql.Tx, key string, version uint64) error {
	query := s.dialect.rebind(`SELECT version FROM world_state WHERE state_key = %s`, 1)
	var current uint64
	err := tx.QueryRowContext(ctx, query, []byte(key)).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check version: %w", translate(err))
	}
	if current != version {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

// translate maps engine-specific concurrency failures onto sentinel.ErrConflict
// and connection failures onto sentinel.ErrUnavailable.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && isRetryableSQLState(string(pqErr.Code)) {
		return fmt.Errorf("%w: %v", sentinel.ErrConflict, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isRetryableSQLState(pgErr.Code) {
		return fmt.Errorf("%w: %v", sentinel.ErrConflict, err)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_BUSY {
		return fmt.Errorf("%w: %v", sentinel.ErrConflict, err)
	}
	return ledger.Unavailable(err)
}

// 40001 serialization_failure, 40P01 deadlock_detected
func isRetryableSQLState(code string) bool {
	return code == "40001" || code == "40P01"
}
