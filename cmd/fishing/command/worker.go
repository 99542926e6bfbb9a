package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-fishing/internal/commands"
	"github.com/pixil98/go-fishing/internal/driver"
	"github.com/pixil98/go-fishing/internal/economy"
	"github.com/pixil98/go-fishing/internal/game"
	"github.com/pixil98/go-fishing/internal/messaging"
	"github.com/pixil98/go-fishing/internal/persist"
	"github.com/pixil98/go-fishing/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	lvl, err := cfg.level()
	if err != nil {
		return nil, err
	}
	LogLevel.Set(lvl)

	cat, err := cfg.Storage.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	balance, err := cfg.Balance.build()
	if err != nil {
		return nil, err
	}

	durable := cfg.Storage.buildDurableStore(context.Background())
	states := economy.NewStore(cat, cfg.Persist.storeOpts(durable)...)
	syncer, err := cfg.Persist.buildSynchronizer(states, durable)
	if err != nil {
		return nil, err
	}

	bus, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	fanout := messaging.NewBroadcaster(bus)

	registry := session.NewRegistry()
	boot := session.NewBootstrapper(registry, states, fanout, syncer)
	resolver := game.NewResolver(cat, balance)
	disp := commands.NewDispatcher(resolver, states, fanout, registry, durable, syncer)
	ws := cfg.Listener.buildListener(boot, disp, durable, bus.Ready())

	var driverOpts []driver.DriverOpt
	if d := cfg.tickInterval(); d > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}

	return service.WorkerList{
		"telemetry": cfg.Telemetry.buildWorker(),
		"nats":      bus,
		"economy":   newEconomyWorker(states, syncer, durable, ws.Stopped()),
		"driver":    driver.NewDriver([]driver.Manager{syncer}, driverOpts...),
		"listener":  ws,
	}, nil
}

// DefaultSessionDrainTimeout bounds how long the economy waits for the
// listener's connections to finish before its final resync.
const DefaultSessionDrainTimeout = 10 * time.Second

// economyWorker runs the persistence synchronizer and tears the economy down
// once it has flushed. The final resync waits for the listener so saves
// scheduled by departing sessions are covered, owners stop after it and the
// durable store closes after the last write.
type economyWorker struct {
	states       *economy.Store
	syncer       *persist.Synchronizer
	durable      persist.Store
	sessions     <-chan struct{}
	drainTimeout time.Duration
}

func newEconomyWorker(states *economy.Store, syncer *persist.Synchronizer, durable persist.Store, sessions <-chan struct{}) *economyWorker {
	return &economyWorker{
		states:       states,
		syncer:       syncer,
		durable:      durable,
		sessions:     sessions,
		drainTimeout: DefaultSessionDrainTimeout,
	}
}

func (w *economyWorker) Start(ctx context.Context) error {
	err := w.syncer.Start(ctx)
	w.awaitSessions(ctx)
	if rerr := w.syncer.Resync(context.WithoutCancel(ctx)); rerr != nil {
		err = errors.Join(err, rerr)
	}
	w.states.Stop()
	if cerr := w.durable.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("closing durable store: %w", cerr))
	}
	return err
}

func (w *economyWorker) awaitSessions(ctx context.Context) {
	if w.sessions == nil {
		return
	}
	timer := time.NewTimer(w.drainTimeout)
	defer timer.Stop()

	select {
	case <-w.sessions:
	case <-timer.C:
		slog.WarnContext(ctx, "sessions still open at final resync", "timeout", w.drainTimeout)
	}
}
