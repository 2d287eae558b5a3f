package storage

import (
	"context"
	"database/sql"
	"strings"

	"pet-qr-tracker/internal/adapters/storage/memory"
	"pet-qr-tracker/internal/adapters/storage/postgres"
	"pet-qr-tracker/internal/adapters/storage/sqlite"
	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
)

type Kind string

const (
	KindMemory   Kind = "memory"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

type Options struct {
	PostgresDSN string // si está, gana
	SQLitePath  string
}

// Stores agrupa los repos de un mismo backend.
type Stores struct {
	Kind     Kind
	Pets     pets.Repository
	Scans    scans.Repository
	Contacts contacts.Repository

	db *sql.DB
}

// Open elige backend: Postgres si hay DSN, SQLite si hay path, memoria si no hay nada.
func Open(opts Options) (*Stores, error) {
	if dsn := strings.TrimSpace(opts.PostgresDSN); dsn != "" {
		db, err := postgres.Open(dsn)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Kind:     KindPostgres,
			Pets:     postgres.NewPetsRepo(db),
			Scans:    postgres.NewScansRepo(db),
			Contacts: postgres.NewContactsRepo(db),
			db:       db,
		}, nil
	}

	if path := strings.TrimSpace(opts.SQLitePath); path != "" {
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Kind:     KindSQLite,
			Pets:     sqlite.NewPetsRepo(db),
			Scans:    sqlite.NewScansRepo(db),
			Contacts: sqlite.NewContactsRepo(db),
			db:       db,
		}, nil
	}

	mem := memory.NewStore()
	return &Stores{
		Kind:     KindMemory,
		Pets:     mem.Pets(),
		Scans:    mem.Scans(),
		Contacts: mem.Contacts(),
	}, nil
}

// Ping lo usa /health. En memoria siempre responde ok.
func (s *Stores) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
