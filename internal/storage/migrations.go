package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the
// application expects.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial snapshot schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS campaigns (
					id INTEGER PRIMARY KEY,
					name TEXT NOT NULL,
					start_balance REAL NOT NULL,
					current_balance REAL NOT NULL,
					total_deposits REAL NOT NULL DEFAULT 0,
					total_withdrawals REAL NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					fetched_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY,
					campaign_id INTEGER NOT NULL,
					kind TEXT NOT NULL,
					amount REAL NOT NULL,
					created_at DATETIME NOT NULL,
					FOREIGN KEY (campaign_id) REFERENCES campaigns(id)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_campaign ON transactions(campaign_id)`,

				`CREATE TABLE IF NOT EXISTS bets (
					id INTEGER PRIMARY KEY,
					campaign_id INTEGER NOT NULL,
					sport TEXT NOT NULL,
					stake REAL NOT NULL,
					odds REAL NOT NULL,
					result TEXT NOT NULL,
					profit_loss REAL NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					FOREIGN KEY (campaign_id) REFERENCES campaigns(id)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_bets_campaign ON bets(campaign_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		slog.Debug("applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, migration.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
