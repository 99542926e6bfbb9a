package economy

import "time"

type StoreOpt func(*Store)

// WithLoader sets the function used to warm-load identities from durable storage.
func WithLoader(l Loader) StoreOpt {
	return func(s *Store) {
		s.loader = l
	}
}

// WithLoadTimeout bounds each warm-load.
func WithLoadTimeout(d time.Duration) StoreOpt {
	return func(s *Store) {
		s.loadTimeout = d
	}
}
