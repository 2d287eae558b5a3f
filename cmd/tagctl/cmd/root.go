// Package cmd contiene los comandos de tagctl.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pet-qr-tracker/internal/adapters/storage"
	"pet-qr-tracker/internal/config"
	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
)

// globalFlags son los flags compartidos por todos los subcomandos.
type globalFlags struct {
	dbPath string
	dsn    string
	output string
}

// NewRootCmd arma el árbol completo. Cada llamada devuelve flags nuevos (tests).
func NewRootCmd() *cobra.Command {
	gf := &globalFlags{}

	root := &cobra.Command{
		Use:   "tagctl",
		Short: "Administración de chapitas QR de mascotas",
		Long: `tagctl opera directo sobre la misma base que usa el server.

La base se elige igual que en el server: DB_DSN (Postgres) o DB_PATH (SQLite),
o los flags --dsn / --db.

Ejemplos:
  # Crear una mascota y marcarla como perdida
  tagctl pet create --id frida --name Frida
  tagctl pet status frida lost

  # Cargar el hogar (para la alerta de distancia)
  tagctl pet home frida --lat -34.6037 --lon -58.3816

  # Agregar un contacto
  tagctl contact add frida --name Tincho --phone +5491100000000

  # Ver el historial del día
  tagctl history --pet frida --from 2025-03-10 --to 2025-03-10`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&gf.dbPath, "db", "", "ruta de la base SQLite (default: DB_PATH)")
	root.PersistentFlags().StringVar(&gf.dsn, "dsn", "", "DSN de Postgres (default: DB_DSN)")
	root.PersistentFlags().StringVarP(&gf.output, "output", "o", "table", "formato de salida (table, json)")

	root.AddCommand(newPetCmd(gf))
	root.AddCommand(newContactCmd(gf))
	root.AddCommand(newHistoryCmd(gf))
	root.AddCommand(newStatsCmd(gf))

	return root
}

// Execute corre el CLI con los args del proceso.
func Execute() error {
	return NewRootCmd().Execute()
}

// services es lo que necesitan los comandos, todos sobre el mismo store.
type services struct {
	stores   *storage.Stores
	pets     *pets.Service
	contacts *contacts.Service
	scans    *scans.Service
}

func (s *services) Close() error {
	return s.stores.Close()
}

var errNoDatabase = errors.New("no database configured: set DB_PATH / DB_DSN or use --db / --dsn")

func openServices(gf *globalFlags) (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	opts := storage.Options{
		PostgresDSN: cfg.Storage.PostgresDSN,
		SQLitePath:  cfg.Storage.SQLitePath,
	}
	if gf.dsn != "" {
		opts.PostgresDSN = gf.dsn
	}
	if gf.dbPath != "" {
		opts.SQLitePath = gf.dbPath
		if gf.dsn == "" {
			opts.PostgresDSN = ""
		}
	}
	if opts.PostgresDSN == "" && opts.SQLitePath == "" {
		// en memoria no tiene sentido: los cambios se pierden al salir
		return nil, errNoDatabase
	}

	stores, err := storage.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &services{
		stores:   stores,
		pets:     pets.NewService(stores.Pets).WithDefaultID(cfg.Pets.DefaultID),
		contacts: contacts.NewService(stores.Contacts),
		scans:    scans.NewService(stores.Scans),
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func wantJSON(gf *globalFlags) bool {
	return gf.output == "json"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-2]) + ".."
}
