package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
)

// Dialect captures the differences between the SQL engines the world state
// can live in.
type Dialect struct {
	Name      string
	schema    string
	txOptions *sql.TxOptions
	bind      func(n int) string
}

var (
	// Postgres works with both the lib/pq ("postgres") and pgx ("pgx") drivers.
	Postgres = Dialect{
		Name: "postgres",
		schema: `CREATE TABLE IF NOT EXISTS world_state (
			state_key   BYTEA PRIMARY KEY,
			state_value BYTEA NOT NULL,
			version     BIGINT NOT NULL
		)`,
		txOptions: &sql.TxOptions{Isolation: sql.LevelSerializable},
		bind:      func(n int) string { return fmt.Sprintf("$%d", n) },
	}

	// SQLite is served by modernc.org/sqlite. Writers are serialized by the
	// engine, so the default isolation is already serializable.
	SQLite = Dialect{
		Name: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS world_state (
			state_key   BLOB PRIMARY KEY,
			state_value BLOB NOT NULL,
			version     INTEGER NOT NULL
		)`,
		bind: func(int) string { return "?" },
	}
)

// placeholders renders n bind parameters starting at position start.
func (d Dialect) placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.bind(start + i)
	}
	return strings.Join(parts, ", ")
}

func (d Dialect) rebind(query string, args int) string {
	binds := make([]any, args)
	for i := range binds {
		binds[i] = d.bind(i + 1)
	}
	return fmt.Sprintf(query, binds...)
}
