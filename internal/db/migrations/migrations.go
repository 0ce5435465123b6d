// internal/db/migrations/migrations.go
package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

type Migration struct {
	Version int
	Name    string
	Up      string
}

// migrations runs in version order; applied versions are tracked in
// schema_migrations.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_ads_table",
		Up: `
            CREATE EXTENSION IF NOT EXISTS pgcrypto;
            CREATE TABLE IF NOT EXISTS ads (
                id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                request_id TEXT NOT NULL,
                platform TEXT NOT NULL,
                input_data JSONB NOT NULL,
                variations JSONB NOT NULL,
                is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
                tags TEXT[] NOT NULL DEFAULT '{}',
                created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
            )
        `,
	},
	{
		Version: 2,
		Name:    "add_ads_indexes",
		Up: `
            CREATE INDEX IF NOT EXISTS idx_ads_created_at ON ads (created_at DESC);
            CREATE INDEX IF NOT EXISTS idx_ads_platform ON ads (platform)
        `,
	},
}

func RunMigrations(db *sql.DB) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if _, exists := applied[m.Version]; !exists {
			if err := applyMigration(db, m); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
			}
			log.Printf("Applied migration: %s", m.Name)
		}
	}

	return nil
}

func createMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(m.Up); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)",
		m.Version, m.Name,
	); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
