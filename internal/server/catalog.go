package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
	"github.com/mind-engage/mindengage-guidance/internal/config"
	"github.com/mind-engage/mindengage-guidance/internal/db"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/storage"
)

// LoadCatalog builds the catalog from the configured source. For the sql
// source it also returns the open database, which the caller must close; the
// tables are seeded from the embedded dataset when empty.
func LoadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, *sql.DB, error) {
	switch cfg.Catalog.Source {
	case config.CatalogEmbedded:
		c, err := catalog.Open(ctx, catalog.EmbeddedSource{})
		return c, nil, err

	case config.CatalogFile:
		bs, err := storage.NewFSStore(cfg.Storage.BasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("blob store: %w", err)
		}
		c, err := catalog.Open(ctx, catalog.FileSource{Store: bs, Key: cfg.Catalog.File})
		return c, nil, err

	case config.CatalogSQL:
		dbh, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := catalog.NewSQLStore(dbh)
		if _, err := SeedSQL(ctx, store); err != nil {
			dbh.Close()
			return nil, nil, err
		}
		c, err := catalog.Open(ctx, store)
		if err != nil {
			dbh.Close()
			return nil, nil, err
		}
		return c, dbh, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", catalog.ErrUnknownSource, cfg.Catalog.Source)
	}
}

func OpenDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dbh, err := db.Open(ctx, db.Driver(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return dbh, nil
}

// SeedSQL writes the embedded dataset into an empty store.
func SeedSQL(ctx context.Context, store *catalog.SQLStore) (bool, error) {
	ds, err := catalog.EmbeddedSource{}.Load(ctx)
	if err != nil {
		return false, err
	}
	wrote, err := store.Seed(ctx, ds)
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}
	if wrote {
		log := logging.WithComponent("catalog")
		log.Info().
			Int("colleges", len(ds.Colleges)).
			Msg("seeded catalog tables")
	}
	return wrote, nil
}
