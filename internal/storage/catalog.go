package storage

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-fishing/internal/catalog"
)

// LoadCatalogTable returns the catalog table with the given id from dir. When
// dir holds no such asset, fallback is written under id and returned, so the
// shipped defaults become an editable file on first run.
func LoadCatalogTable(dir, id string, fallback *catalog.Table) (*catalog.Table, error) {
	st, err := NewFileStore[*catalog.Table](dir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog assets: %w", err)
	}

	if table, ok := st.Get(id); ok {
		slog.Info("loaded catalog", "id", id, "fish", len(table.Fish), "rods", len(table.Rods), "accessories", len(table.Accessories))
		return table, nil
	}

	if err := st.Save(id, fallback); err != nil {
		return nil, fmt.Errorf("seeding catalog %q: %w", id, err)
	}
	slog.Info("seeded catalog with defaults", "id", id, "dir", dir, "available", st.IDs())

	return fallback, nil
}
