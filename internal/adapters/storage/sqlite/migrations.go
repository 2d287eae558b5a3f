package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type migration struct {
	Version int
	Name    string
	Up      string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			CREATE TABLE IF NOT EXISTS pets (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				photo TEXT NOT NULL DEFAULT '/static/pet.jpg',
				status TEXT NOT NULL DEFAULT 'lost',
				breed TEXT NOT NULL DEFAULT '',
				sex TEXT NOT NULL DEFAULT '',
				age TEXT NOT NULL DEFAULT '',
				size TEXT NOT NULL DEFAULT '',
				color TEXT NOT NULL DEFAULT '',
				chip TEXT NOT NULL DEFAULT '',
				vaccinated TEXT NOT NULL DEFAULT '',
				neutered TEXT NOT NULL DEFAULT '',
				allergies TEXT NOT NULL DEFAULT '',
				medication TEXT NOT NULL DEFAULT '',
				temperament TEXT NOT NULL DEFAULT '',
				special_marks TEXT NOT NULL DEFAULT '',
				reward TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				home_lat REAL,
				home_lon REAL,
				last_seen_ms INTEGER,
				last_lat REAL,
				last_lon REAL,
				last_accuracy REAL,
				created_ms INTEGER NOT NULL
			);

			-- ts_utc es texto "YYYY-MM-DD HH:MM:SS UTC" (los filtros por fecha comparan su prefijo);
			-- ts_unix_ms conserva la precisión para la ventana de ráfaga.
			CREATE TABLE IF NOT EXISTS scans (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
				kind TEXT NOT NULL DEFAULT 'page_view',
				ts_utc TEXT NOT NULL,
				ts_unix_ms INTEGER NOT NULL,
				ip TEXT NOT NULL DEFAULT '',
				user_agent TEXT NOT NULL DEFAULT '',
				referrer TEXT NOT NULL DEFAULT '',
				note TEXT NOT NULL DEFAULT '',
				lat REAL,
				lon REAL,
				accuracy REAL
			);
			CREATE INDEX IF NOT EXISTS idx_scans_pet_id ON scans(pet_id, id);
			CREATE INDEX IF NOT EXISTS idx_scans_pet_ts ON scans(pet_id, ts_unix_ms);

			CREATE TABLE IF NOT EXISTS contacts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
				label TEXT NOT NULL DEFAULT 'Contacto',
				name TEXT NOT NULL,
				phone TEXT NOT NULL DEFAULT '',
				whatsapp TEXT NOT NULL DEFAULT '',
				priority INTEGER NOT NULL DEFAULT 1
			);
			CREATE INDEX IF NOT EXISTS idx_contacts_pet ON contacts(pet_id, priority, id);
		`,
	},
}

// Migrate aplica en orden las migraciones que falten, cada una en su transacción.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("execute migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
