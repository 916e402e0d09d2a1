package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/server"
	"github.com/mind-engage/mindengage-guidance/internal/storage"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the quiz, interest and college catalog",
	}
	cmd.AddCommand(newCatalogExportCmd())
	cmd.AddCommand(newCatalogSeedCmd())
	return cmd
}

var errExportExists = errors.New("export target already exists; use --force to overwrite")

func newCatalogExportCmd() *cobra.Command {
	var (
		key   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in catalog as JSON into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if key == "" {
				key = cfg.Catalog.File
			}
			bs, err := storage.NewFSStore(cfg.Storage.BasePath)
			if err != nil {
				return fmt.Errorf("blob store: %w", err)
			}
			exists, err := bs.Exists(key)
			if err != nil {
				return err
			}
			if exists {
				if !force {
					return fmt.Errorf("%s: %w", key, errExportExists)
				}
				logging.Warn().Str("key", key).Msg("overwriting catalog export")
			}
			written, err := catalog.Export(bs, key, catalog.Default())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s under %s\n", written, cfg.Storage.BasePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "blob key to write (default CATALOG_FILE)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing export")
	return cmd
}

func newCatalogSeedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in catalog into the SQL database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			dbh, err := server.OpenDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer dbh.Close()

			store := catalog.NewSQLStore(dbh)
			if force {
				if err := store.Replace(ctx, catalog.Default().Dataset()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "catalog replaced")
				return nil
			}
			wrote, err := server.SeedSQL(ctx, store)
			if err != nil {
				return err
			}
			if wrote {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog seeded")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog tables already populated; use --force to replace")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace existing catalog rows")
	return cmd
}
