package session

import "time"

type BootstrapperOpt func(*Bootstrapper)

// WithClock sets the clock used for notice time stamps.
func WithClock(now func() time.Time) BootstrapperOpt {
	return func(b *Bootstrapper) {
		b.now = now
	}
}
