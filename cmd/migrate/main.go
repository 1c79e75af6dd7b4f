// migrate aplica o revierte las migraciones embebidas del esquema del libro.
//
// Uso: go run ./cmd/migrate up | down | steps N | version | force V
// La conexión sale de DATABASE_URL / DB_* (igual que la API) o de --database-url.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/peakers-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/peakers-pos-api/pkg/config"
	"github.com/jhoicas/peakers-pos-api/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	databaseURL string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones del esquema PostgreSQL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "connection string (por defecto DATABASE_URL / DB_*)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(opts, func(m *postgres.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(opts, func(m *postgres.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Aplica (N>0) o revierte (N<0) N migraciones",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseInt(args[0])
				if err != nil {
					return err
				}
				return withMigrator(opts, func(m *postgres.Migrator) error { return m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(opts, func(m *postgres.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Fija la versión sin ejecutar migraciones (limpia el estado dirty)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := parseInt(args[0])
				if err != nil {
					return err
				}
				return withMigrator(opts, func(m *postgres.Migrator) error { return m.Force(v) })
			},
		},
	)
	return cmd
}

func withMigrator(opts *rootOptions, fn func(m *postgres.Migrator) error) error {
	url := opts.databaseURL
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if url == "" {
		url = cfg.DB.ConnectionString()
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	m, err := postgres.NewMigrator(url, log.Zerolog())
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("número inválido %q", s)
	}
	return n, nil
}
