package persist

import "time"

type SynchronizerOpt func(*Synchronizer)

func WithQueueSize(n int) SynchronizerOpt {
	return func(s *Synchronizer) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

func WithResyncInterval(d time.Duration) SynchronizerOpt {
	return func(s *Synchronizer) {
		s.resyncInterval = d
	}
}

func WithRecorder(r Recorder) SynchronizerOpt {
	return func(s *Synchronizer) {
		s.recorder = r
	}
}

func WithClock(now func() time.Time) SynchronizerOpt {
	return func(s *Synchronizer) {
		s.now = now
	}
}
