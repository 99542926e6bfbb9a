package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixil98/go-fishing/internal/economy"
)

const (
	DefaultQueueSize      = 256
	DefaultResyncInterval = time.Minute
)

// Snapshotter hands out detached copies of resident economy states.
type Snapshotter interface {
	Snapshot(ctx context.Context, identity string) (economy.Snapshot, error)
	Identities() []string
}

// Synchronizer mirrors economy states to the durable store in the background.
// Dropped or failed writes are picked up by the next resync.
type Synchronizer struct {
	states   Snapshotter
	store    Store
	recorder Recorder
	tracer   trace.Tracer
	now      func() time.Time

	queueSize      int
	queue          chan string
	resyncInterval time.Duration
	lastResync     time.Time
}

func NewSynchronizer(states Snapshotter, store Store, opts ...SynchronizerOpt) *Synchronizer {
	s := &Synchronizer{
		states:         states,
		store:          store,
		recorder:       nopRecorder{},
		tracer:         otel.Tracer(instrumentationName),
		now:            time.Now,
		queueSize:      DefaultQueueSize,
		resyncInterval: DefaultResyncInterval,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.queue = make(chan string, s.queueSize)
	s.lastResync = s.now()

	return s
}

// Schedule queues an identity for an upsert without blocking. When the queue is
// full the request is dropped and counted.
func (s *Synchronizer) Schedule(ctx context.Context, identity string) {
	select {
	case s.queue <- identity:
	default:
		s.recorder.Dropped(ctx)
		slog.WarnContext(ctx, "persistence queue full, dropping upsert", "identity", identity)
	}
}

// Start drains the queue until ctx is done, then flushes whatever is still queued.
func (s *Synchronizer) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.flush(context.WithoutCancel(ctx))
			return nil
		case identity := <-s.queue:
			s.sync(ctx, identity)
		}
	}
}

func (s *Synchronizer) flush(ctx context.Context) {
	for {
		select {
		case identity := <-s.queue:
			s.sync(ctx, identity)
		default:
			return
		}
	}
}

// Tick upserts every resident identity once the resync interval has passed.
func (s *Synchronizer) Tick(ctx context.Context) error {
	now := s.now()
	if now.Sub(s.lastResync) < s.resyncInterval {
		return nil
	}
	s.lastResync = now

	return s.Resync(ctx)
}

// Resync upserts every resident identity. Individual failures are counted, not returned.
func (s *Synchronizer) Resync(ctx context.Context) error {
	identities := s.states.Identities()
	for _, identity := range identities {
		s.sync(ctx, identity)
	}
	s.recorder.Resynced(ctx)
	slog.DebugContext(ctx, "resynced economy states", "count", len(identities))
	return nil
}

// sync writes one identity. The write is detached from ctx so a closing
// connection cannot abort it.
func (s *Synchronizer) sync(ctx context.Context, identity string) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := s.tracer.Start(ctx, "persist.sync", trace.WithAttributes(attribute.String("identity", identity)))
	defer span.End()

	snap, err := s.states.Snapshot(ctx, identity)
	if err != nil {
		s.fail(ctx, span, ReasonSnapshot, identity, fmt.Errorf("taking snapshot: %w", err))
		return
	}

	err = s.store.SaveEconomy(ctx, snap)
	switch {
	case errors.Is(err, ErrUnavailable):
		s.recorder.Failed(ctx, ReasonUnavailable)
		span.SetStatus(codes.Error, ReasonUnavailable)
		slog.DebugContext(ctx, "durable store unavailable, skipping upsert", "identity", identity)
	case err != nil:
		s.fail(ctx, span, ReasonWrite, identity, err)
	default:
		s.recorder.Upserted(ctx)
	}
}

func (s *Synchronizer) fail(ctx context.Context, span trace.Span, reason, identity string, err error) {
	s.recorder.Failed(ctx, reason)
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	slog.WarnContext(ctx, "persisting economy state", "identity", identity, "reason", reason, "error", err)
}

type nopRecorder struct{}

func (nopRecorder) Upserted(context.Context)       {}
func (nopRecorder) Failed(context.Context, string) {}
func (nopRecorder) Dropped(context.Context)        {}
func (nopRecorder) Resynced(context.Context)       {}
