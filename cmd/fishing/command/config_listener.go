package command

import (
	"fmt"
	"net"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fishing/internal/listener"
)

type ListenerConfig struct {
	Address      string `json:"address" env:"FISHING_LISTEN_ADDRESS"`
	WriteTimeout string `json:"write_timeout"`
	ReadLimit    int64  `json:"read_limit"`
}

func (c *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if c.Address == "" {
		el.Add(fmt.Errorf("listener: address is required"))
	} else if _, _, err := net.SplitHostPort(c.Address); err != nil {
		el.Add(fmt.Errorf("listener: invalid address %q: %w", c.Address, err))
	}
	if c.WriteTimeout != "" {
		if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
			el.Add(fmt.Errorf("listener: parsing write_timeout: %w", err))
		}
	}
	if c.ReadLimit < 0 {
		el.Add(fmt.Errorf("listener: read_limit must not be negative"))
	}

	return el.Err()
}

func (c *ListenerConfig) buildListener(j listener.Joiner, d listener.Dispatcher, h listener.History, ready <-chan struct{}) *listener.WebsocketListener {
	var opts []listener.ConnectionManagerOpt
	if wt, err := time.ParseDuration(c.WriteTimeout); err == nil {
		opts = append(opts, listener.WithWriteTimeout(wt))
	}
	if c.ReadLimit > 0 {
		opts = append(opts, listener.WithReadLimit(c.ReadLimit))
	}

	cm := listener.NewConnectionManager(j, d, opts...)
	return listener.NewWebsocketListener(c.Address, cm, h, ready)
}
