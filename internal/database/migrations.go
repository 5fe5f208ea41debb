package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Schema migrations, applied in order at startup
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_zones",
		SQL: `
			CREATE TABLE IF NOT EXISTS zones (
				zone_id INTEGER PRIMARY KEY,
				name TEXT NOT NULL DEFAULT '',
				geometry TEXT NOT NULL DEFAULT ''
			);
			CREATE TABLE IF NOT EXISTS zone_attributes (
				zone_id INTEGER NOT NULL,
				attribute TEXT NOT NULL,
				value REAL NOT NULL,
				PRIMARY KEY (zone_id, attribute),
				FOREIGN KEY (zone_id) REFERENCES zones(zone_id) ON DELETE CASCADE
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_node_zones",
		SQL: `
			CREATE TABLE IF NOT EXISTS node_zones (
				node_id INTEGER PRIMARY KEY,
				zone_id INTEGER NOT NULL
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_skims",
		SQL: `
			CREATE TABLE IF NOT EXISTS skims (
				skim_name TEXT NOT NULL,
				origin_zone INTEGER NOT NULL,
				destination_zone INTEGER NOT NULL,
				travel_time REAL NOT NULL,
				PRIMARY KEY (skim_name, origin_zone, destination_zone)
			);
			CREATE INDEX IF NOT EXISTS idx_skims_origin
				ON skims(skim_name, origin_zone);
			CREATE TABLE IF NOT EXISTS scenarios (
				name TEXT PRIMARY KEY,
				uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				entry_count INTEGER NOT NULL DEFAULT 0,
				dropped_rows INTEGER NOT NULL DEFAULT 0
			);
		`,
	},
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
