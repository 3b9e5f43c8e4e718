package storage

import (
	"context"
	"fmt"
	"strings"

	"database/sql"

	"serverhub/internal/types"
)

// SQLite is a RecordSource backed by a SQLite database
type SQLite struct {
	db     *sql.DB
	logger types.Logger
}

// NewSQLite opens (and creates if needed) the SQLite record source
func NewSQLite(dsn string, logger types.Logger) (*SQLite, error) {
	if dsn == "" {
		dsn = "serverhub.db"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to an in-memory database sees its own empty database
	if isMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLite{
		db:     db,
		logger: logger,
	}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (s *SQLite) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS servers (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			status TEXT NOT NULL CHECK (status IN ('online', 'offline')),
			players INTEGER NOT NULL DEFAULT 0,
			max_players INTEGER NOT NULL DEFAULT 0,
			version TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_servers_position ON servers(position)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Seed replaces the stored server list with records, keeping their order
func (s *SQLite) Seed(ctx context.Context, records []types.ServerRecord) error {
	if err := types.ValidateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM servers"); err != nil {
		return fmt.Errorf("failed to clear servers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO servers
		(id, position, name, address, status, players, max_players, version, mode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, i, r.Name, r.Address, string(r.Status),
			r.Players, r.MaxPlayers, r.Version, r.Mode,
		); err != nil {
			return fmt.Errorf("failed to insert server %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	s.logger.Info("Seeded server list", "count", len(records))
	return nil
}

// Count returns the number of stored servers
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM servers").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count servers: %w", err)
	}
	return n, nil
}

func (s *SQLite) List(ctx context.Context) ([]types.ServerRecord, error) {
	query := `SELECT id, name, address, status, players, max_players, version, mode
	          FROM servers ORDER BY position, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, types.SourceError{Op: "list", Backend: "sqlite", Err: err}
	}
	defer rows.Close()

	var records []types.ServerRecord
	for rows.Next() {
		var r types.ServerRecord
		var status string
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &status,
			&r.Players, &r.MaxPlayers, &r.Version, &r.Mode); err != nil {
			return nil, types.SourceError{Op: "scan", Backend: "sqlite", Err: err}
		}
		r.Status = types.Status(status)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, types.SourceError{Op: "list", Backend: "sqlite", Err: err}
	}

	return records, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// isMemoryDSN reports whether dsn names an in-memory database
func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
