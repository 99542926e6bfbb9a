package commands

import "time"

type DispatcherOpt func(*Dispatcher)

// WithClock sets the clock used to stamp chat lines.
func WithClock(now func() time.Time) DispatcherOpt {
	return func(d *Dispatcher) {
		d.now = now
	}
}
