package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiwari-pos/digimenu/internal/auth"
	"github.com/kiwari-pos/digimenu/internal/database"
	"github.com/kiwari-pos/digimenu/internal/enum"
	"github.com/kiwari-pos/digimenu/internal/seed"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func seedCmd(configPath *string) *cobra.Command {
	var (
		file     string
		tokenTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalog fixture and print development tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}

			fixture, err := seed.Load(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			// Seed in a transaction so a bad row leaves nothing behind.
			tx, err := pool.Begin(ctx)
			if err != nil {
				return fmt.Errorf("begin tx: %w", err)
			}
			defer tx.Rollback(ctx)

			res, err := seed.Apply(ctx, database.New(tx), fixture)
			if err != nil {
				return err
			}
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit: %w", err)
			}

			logger.WithFields(logrus.Fields{
				"categories":       res.Categories,
				"menu_items":       res.MenuItems,
				"addon_categories": res.AddonCategories,
				"addons":           res.Addons,
				"promotions":       res.Promotions,
			}).Info("seed completed")

			out := cmd.OutOrStdout()
			for _, role := range []string{enum.RoleClient, enum.RoleStaff} {
				id := uuid.New()
				token, err := auth.GenerateToken(cfg.Auth.JWTSecret, id, role, tokenTTL)
				if err != nil {
					return fmt.Errorf("generate %s token: %w", role, err)
				}
				fmt.Fprintf(out, "%s user %s\n  token: %s\n", role, id, token)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures/catalog.yaml", "Catalog fixture (YAML)")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the printed development tokens")
	return cmd
}
