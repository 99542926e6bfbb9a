package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pixil98/go-fishing/internal/catalog"
	"github.com/pixil98/go-testutil"
)

// testSpec keeps FileStore tests independent of the catalog schema.
type testSpec struct {
	Valid bool `json:"valid"`
}

func (s *testSpec) Validate() error {
	if !s.Valid {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func writeAsset(t *testing.T, path string, asset any) {
	t.Helper()
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		setup  func(t *testing.T, dir string)
		expIDs []string
		expErr string
	}{
		"empty directory": {
			setup: func(*testing.T, string) {},
		},
		"loads nested assets": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "one.json"), Asset[*testSpec]{Version: 1, ID: "one", Spec: &testSpec{Valid: true}})
				if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
					t.Fatalf("failed to create subdir: %v", err)
				}
				writeAsset(t, filepath.Join(dir, "sub", "two.json"), Asset[*testSpec]{Version: 1, ID: "two", Spec: &testSpec{Valid: true}})
			},
			expIDs: []string{"one", "two"},
		},
		"ignores other files": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "one.json"), Asset[*testSpec]{Version: 1, ID: "one", Spec: &testSpec{Valid: true}})
				if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore me"), 0o644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			},
			expIDs: []string{"one"},
		},
		"invalid json": {
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{invalid json`), 0o644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			},
			expErr: "unmarshalling asset",
		},
		"invalid asset": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, filepath.Join(dir, "bad.json"), Asset[*testSpec]{ID: "bad", Spec: &testSpec{Valid: true}})
			},
			expErr: "version must be set",
		},
		"duplicate id": {
			setup: func(t *testing.T, dir string) {
				asset := Asset[*testSpec]{Version: 1, ID: "dup", Spec: &testSpec{Valid: true}}
				writeAsset(t, filepath.Join(dir, "a.json"), asset)
				writeAsset(t, filepath.Join(dir, "b.json"), asset)
			},
			expErr: "duplicate asset id",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			store, err := NewFileStore[*testSpec](dir)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "ids", slices.Equal(store.IDs(), tt.expIDs), true)
		})
	}
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets", "catalog")

	store, err := NewFileStore[*testSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	testutil.AssertEqual(t, "is dir", info.IsDir(), true)
	testutil.AssertEqual(t, "ids", len(store.IDs()), 0)
}

func TestFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[*testSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	if err := store.Save("test-id", &testSpec{Valid: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cached, ok := store.Get("test-id")
	testutil.AssertEqual(t, "cached", ok, true)
	testutil.AssertEqual(t, "cached valid", cached.Valid, true)

	data, err := os.ReadFile(filepath.Join(dir, "test-id.json"))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	var asset Asset[*testSpec]
	if err := json.Unmarshal(data, &asset); err != nil {
		t.Fatalf("failed to unmarshal saved data: %v", err)
	}
	testutil.AssertEqual(t, "asset version", asset.Version, uint(1))
	testutil.AssertEqual(t, "asset id", asset.ID, "test-id")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	testutil.AssertEqual(t, "no temp files", len(entries), 1)

	reloaded, err := NewFileStore[*testSpec](dir)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	testutil.AssertEqual(t, "reloaded ids", slices.Equal(reloaded.IDs(), []string{"test-id"}), true)
}

func TestFileStore_SaveRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[*testSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	err = store.Save("test-id", &testSpec{Valid: false})
	testutil.AssertErrorContains(t, err, "spec is invalid")

	_, ok := store.Get("test-id")
	testutil.AssertEqual(t, "cached", ok, false)
	_, statErr := os.Stat(filepath.Join(dir, "test-id.json"))
	testutil.AssertEqual(t, "file written", os.IsNotExist(statErr), true)
}

func TestLoadCatalogTable(t *testing.T) {
	dir := t.TempDir()

	seeded, err := LoadCatalogTable(dir, "default", catalog.DefaultTable())
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	testutil.AssertEqual(t, "seeded fish", len(seeded.Fish), len(catalog.DefaultTable().Fish))

	// Edit the seeded file and make sure the edit wins over the fallback.
	path := filepath.Join(dir, "default.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading seeded catalog: %v", err)
	}
	var asset Asset[*catalog.Table]
	if err := json.Unmarshal(data, &asset); err != nil {
		t.Fatalf("decoding seeded catalog: %v", err)
	}
	asset.Spec.RewardItem = "Pearl"
	writeAsset(t, path, asset)

	loaded, err := LoadCatalogTable(dir, "default", catalog.DefaultTable())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	testutil.AssertEqual(t, "reward item", loaded.RewardItem, "Pearl")
}
