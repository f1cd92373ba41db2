package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "path", "migrations", "Migrations directory")

	run := func(apply func(m *migrate.Migrate) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}

			m, err := migrate.New("file://"+dir, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("create migrate instance: %w", err)
			}
			defer m.Close()

			if err := apply(m); err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					logger.Info("no migrations to apply")
					return nil
				}
				return fmt.Errorf("migrate %s: %w", cmd.Name(), err)
			}

			version, dirty, err := m.Version()
			if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
				return fmt.Errorf("read migration version: %w", err)
			}
			logger.WithField("version", version).WithField("dirty", dirty).Info("migrations applied")
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  run(func(m *migrate.Migrate) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE:  run(func(m *migrate.Migrate) error { return m.Steps(-1) }),
		},
	)
	return cmd
}
