package game

import "time"

type ResolverOpt func(*Resolver)

// WithRand replaces the random source.
func WithRand(rnd Rand) ResolverOpt {
	return func(r *Resolver) {
		r.rand = rnd
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ResolverOpt {
	return func(r *Resolver) {
		r.now = now
	}
}
