package listener

import "time"

type ConnectionManagerOpt func(*ConnectionManager)

// WithWriteTimeout bounds every websocket write.
func WithWriteTimeout(d time.Duration) ConnectionManagerOpt {
	return func(m *ConnectionManager) {
		m.writeTimeout = d
	}
}

// WithReadLimit caps the size of an inbound frame in bytes.
func WithReadLimit(n int64) ConnectionManagerOpt {
	return func(m *ConnectionManager) {
		m.readLimit = n
	}
}
