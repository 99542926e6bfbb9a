package command

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

// LogLevel is shared with the handler installed by main so the configured
// level takes effect once the config has been loaded.
var LogLevel = new(slog.LevelVar)

type Config struct {
	TickInterval string          `json:"tick_interval" env:"FISHING_TICK_INTERVAL"`
	LogLevel     string          `json:"log_level" env:"FISHING_LOG_LEVEL"`
	Listener     ListenerConfig  `json:"listener"`
	Storage      StorageConfig   `json:"storage"`
	Nats         NatsConfig      `json:"nats"`
	Persist      PersistConfig   `json:"persist"`
	Balance      BalanceConfig   `json:"balance"`
	Telemetry    TelemetryConfig `json:"telemetry"`
}

// Validate overlays FISHING_* environment variables on the loaded file and
// then checks every section.
func (c *Config) Validate() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	if _, err := c.level(); err != nil {
		el.Add(err)
	}

	el.Add(c.Listener.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Persist.validate())
	el.Add(c.Balance.validate())
	el.Add(c.Telemetry.validate())

	return el.Err()
}

func (c *Config) level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parsing log_level: %w", err)
	}
	return lvl, nil
}

func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0
	}
	return d
}
