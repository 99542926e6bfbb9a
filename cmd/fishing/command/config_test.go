package command

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func validConfig() *Config {
	return &Config{
		TickInterval: "2s",
		Listener:     ListenerConfig{Address: ":8080"},
	}
}

func ptr[T any](v T) *T { return &v }

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Config)
		expErr string
	}{
		"valid": {
			mutate: func(*Config) {},
		},
		"empty tick interval uses default": {
			mutate: func(c *Config) { c.TickInterval = "" },
		},
		"bad tick interval": {
			mutate: func(c *Config) { c.TickInterval = "soon" },
			expErr: "parsing tick_interval",
		},
		"tick interval too short": {
			mutate: func(c *Config) { c.TickInterval = "10ms" },
			expErr: "at least 1 second",
		},
		"bad log level": {
			mutate: func(c *Config) { c.LogLevel = "chatty" },
			expErr: "parsing log_level",
		},
		"missing listener address": {
			mutate: func(c *Config) { c.Listener.Address = "" },
			expErr: "address is required",
		},
		"listener address without port": {
			mutate: func(c *Config) { c.Listener.Address = "localhost" },
			expErr: "invalid address",
		},
		"bad write timeout": {
			mutate: func(c *Config) { c.Listener.WriteTimeout = "never" },
			expErr: "parsing write_timeout",
		},
		"bad nats timeout": {
			mutate: func(c *Config) { c.Nats.StartTimeout = "later" },
			expErr: "parsing start_timeout",
		},
		"nats port out of range": {
			mutate: func(c *Config) { c.Nats.Port = 70000 },
			expErr: "out of range",
		},
		"catalog id without path": {
			mutate: func(c *Config) { c.Storage.CatalogID = "summer" },
			expErr: "catalog_id requires catalog_path",
		},
		"negative queue size": {
			mutate: func(c *Config) { c.Persist.QueueSize = -1 },
			expErr: "queue_size must not be negative",
		},
		"zero resync interval": {
			mutate: func(c *Config) { c.Persist.ResyncInterval = "0s" },
			expErr: "resync_interval must be positive",
		},
		"rare chance above one": {
			mutate: func(c *Config) { c.Balance.RareChance = ptr(1.5) },
			expErr: "rare chance must be between 0 and 1",
		},
		"bad draw cooldown": {
			mutate: func(c *Config) { c.Balance.DrawCooldown = "forever" },
			expErr: "parsing draw_cooldown",
		},
		"relative telemetry endpoint": {
			mutate: func(c *Config) { c.Telemetry.Endpoint = "collector:4318" },
			expErr: "must be an absolute url",
		},
		"errors are aggregated": {
			mutate: func(c *Config) {
				c.Listener.Address = ""
				c.Nats.StartTimeout = "later"
			},
			expErr: "parsing start_timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_EnvOverlay(t *testing.T) {
	t.Setenv("FISHING_LISTEN_ADDRESS", "127.0.0.1:9999")
	t.Setenv("FISHING_SQLITE_PATH", "/tmp/fishing.db")
	t.Setenv("FISHING_LOG_LEVEL", "debug")
	t.Setenv("FISHING_OTEL_ENDPOINT", "http://collector:4318")

	cfg := validConfig()
	cfg.Storage.SqlitePath = "from-file.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "address", cfg.Listener.Address, "127.0.0.1:9999")
	testutil.AssertEqual(t, "sqlite", cfg.Storage.SqlitePath, "/tmp/fishing.db")
	testutil.AssertEqual(t, "endpoint", cfg.Telemetry.Endpoint, "http://collector:4318")
	testutil.AssertEqual(t, "tick untouched", cfg.TickInterval, "2s")

	lvl, err := cfg.level()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "level", lvl, slog.LevelDebug)
}

func TestBalanceConfig_Build(t *testing.T) {
	cfg := BalanceConfig{
		DrawCooldown:    "30s",
		RareChance:      ptr(0.25),
		CatchWeights:    []float64{1, 2},
		ExploreCooldown: "1m",
		FleeCooldown:    "10s",
		MaxPhases:       3,
	}

	b, err := cfg.build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "draw", b.DrawCooldown, 30*time.Second)
	testutil.AssertEqual(t, "rare", b.RareChance, 0.25)
	testutil.AssertEqual(t, "weights", slices.Equal(b.CatchWeights, []float64{1, 2}), true)
	testutil.AssertEqual(t, "explore", b.ExploreCooldown, time.Minute)
	testutil.AssertEqual(t, "flee", b.FleeCooldown, 10*time.Second)
	testutil.AssertEqual(t, "phases", b.MaxPhases, 3)
	testutil.AssertEqual(t, "untouched", b.WindowWidth, 9)
}

func TestBuildWorkers(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig()
	cfg.LogLevel = "warn"
	cfg.Storage.CatalogPath = dir
	cfg.Nats.Port = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validating: %v", err)
	}
	t.Cleanup(func() { LogLevel.Set(slog.LevelInfo) })

	workers, err := BuildWorkers(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for name := range workers {
		names = append(names, name)
	}
	slices.Sort(names)
	testutil.AssertEqual(t, "workers", slices.Equal(names, []string{"driver", "economy", "listener", "nats", "telemetry"}), true)
	testutil.AssertEqual(t, "level", LogLevel.Level(), slog.LevelWarn)

	_, err = os.Stat(filepath.Join(dir, defaultCatalogID+".json"))
	testutil.AssertEqual(t, "catalog seeded", err == nil, true)
}

func TestBuildWorkers_WrongConfig(t *testing.T) {
	_, err := BuildWorkers(struct{}{})
	testutil.AssertErrorContains(t, err, "unable to cast config")
}
