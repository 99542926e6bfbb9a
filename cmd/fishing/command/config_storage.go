package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-fishing/internal/persist"
	"github.com/pixil98/go-fishing/internal/storage"
	"github.com/pixil98/go-fishing/internal/storage/sqlite"
)

const defaultCatalogID = "default"

type StorageConfig struct {
	SqlitePath  string `json:"sqlite_path" env:"FISHING_SQLITE_PATH"`
	CatalogPath string `json:"catalog_path" env:"FISHING_CATALOG_PATH"`
	CatalogID   string `json:"catalog_id"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.CatalogID != "" && c.CatalogPath == "" {
		el.Add(fmt.Errorf("storage: catalog_id requires catalog_path"))
	}

	return el.Err()
}

// buildCatalog loads the item table from catalog_path, seeding it with the
// defaults on first run. Without a path the defaults are used directly.
func (c *StorageConfig) buildCatalog() (*catalog.Catalog, error) {
	table := catalog.DefaultTable()
	if c.CatalogPath != "" {
		id := c.CatalogID
		if id == "" {
			id = defaultCatalogID
		}
		var err error
		table, err = storage.LoadCatalogTable(c.CatalogPath, id, table)
		if err != nil {
			return nil, err
		}
	}

	cat, err := catalog.New(table)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return cat, nil
}

// buildDurableStore opens the sqlite database. A missing path or a failed
// open degrades to memory-only mode.
func (c *StorageConfig) buildDurableStore(ctx context.Context) persist.Store {
	if c.SqlitePath == "" {
		slog.Warn("no sqlite_path configured, running memory-only")
		return persist.Offline{}
	}

	st, err := sqlite.Open(ctx, c.SqlitePath)
	if err != nil {
		slog.Error("opening durable store, running memory-only", "path", c.SqlitePath, "error", err)
		return persist.Offline{}
	}

	slog.Info("opened durable store", "path", c.SqlitePath)
	return st
}
