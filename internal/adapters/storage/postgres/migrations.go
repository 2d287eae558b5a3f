package postgres

import (
	"context"
	"database/sql"
	"fmt"
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
				home_lat DOUBLE PRECISION,
				home_lon DOUBLE PRECISION,
				last_seen_at TIMESTAMPTZ,
				last_lat DOUBLE PRECISION,
				last_lon DOUBLE PRECISION,
				last_accuracy DOUBLE PRECISION,
				created_at TIMESTAMPTZ NOT NULL
			);

			CREATE TABLE IF NOT EXISTS scans (
				id BIGSERIAL PRIMARY KEY,
				pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
				kind TEXT NOT NULL DEFAULT 'page_view',
				ts TIMESTAMPTZ NOT NULL,
				ip TEXT NOT NULL DEFAULT '',
				user_agent TEXT NOT NULL DEFAULT '',
				referrer TEXT NOT NULL DEFAULT '',
				note TEXT NOT NULL DEFAULT '',
				lat DOUBLE PRECISION,
				lon DOUBLE PRECISION,
				accuracy DOUBLE PRECISION
			);
			CREATE INDEX IF NOT EXISTS idx_scans_pet_id ON scans(pet_id, id);
			CREATE INDEX IF NOT EXISTS idx_scans_pet_ts ON scans(pet_id, ts);

			CREATE TABLE IF NOT EXISTS contacts (
				id BIGSERIAL PRIMARY KEY,
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

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
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
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
