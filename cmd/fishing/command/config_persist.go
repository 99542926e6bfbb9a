package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/persist"
)

type PersistConfig struct {
	QueueSize      int    `json:"queue_size"`
	ResyncInterval string `json:"resync_interval" env:"FISHING_RESYNC_INTERVAL"`
	LoadTimeout    string `json:"load_timeout"`
}

func (c *PersistConfig) validate() error {
	el := errors.NewErrorList()

	if c.QueueSize < 0 {
		el.Add(fmt.Errorf("persist: queue_size must not be negative"))
	}
	if c.ResyncInterval != "" {
		d, err := time.ParseDuration(c.ResyncInterval)
		if err != nil {
			el.Add(fmt.Errorf("persist: parsing resync_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("persist: resync_interval must be positive"))
		}
	}
	if c.LoadTimeout != "" {
		if _, err := time.ParseDuration(c.LoadTimeout); err != nil {
			el.Add(fmt.Errorf("persist: parsing load_timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *PersistConfig) storeOpts(st persist.Store) []economy.StoreOpt {
	opts := []economy.StoreOpt{economy.WithLoader(persist.Loader(st))}
	if d, err := time.ParseDuration(c.LoadTimeout); err == nil {
		opts = append(opts, economy.WithLoadTimeout(d))
	}
	return opts
}

func (c *PersistConfig) buildSynchronizer(states persist.Snapshotter, st persist.Store) (*persist.Synchronizer, error) {
	rec, err := persist.NewMeterRecorder(nil)
	if err != nil {
		return nil, fmt.Errorf("creating persistence metrics: %w", err)
	}

	opts := []persist.SynchronizerOpt{persist.WithRecorder(rec)}
	if c.QueueSize > 0 {
		opts = append(opts, persist.WithQueueSize(c.QueueSize))
	}
	if d, err := time.ParseDuration(c.ResyncInterval); err == nil {
		opts = append(opts, persist.WithResyncInterval(d))
	}

	return persist.NewSynchronizer(states, st, opts...), nil
}
