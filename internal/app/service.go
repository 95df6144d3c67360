// Package service wires the game, its single writer, the clock ticker and the
// snapshot store behind the operations the HTTP API needs.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/benchcoach/internal/adapters/mq/queue"
	"github.com/okian/benchcoach/internal/adapters/mq/worker"
	"github.com/okian/benchcoach/internal/adapters/repository"
	"github.com/okian/benchcoach/internal/domain/dedupe"
	"github.com/okian/benchcoach/internal/domain/game"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/roster"
	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/logger"
	"github.com/okian/benchcoach/pkg/metrics"
)

const (
	defaultQueueSize     = 1024
	defaultTickInterval  = time.Second
	defaultShotClockStep = 60
	defaultReplayWindow  = 256
	stopTimeout          = 5 * time.Second
)

// Service owns one game. Mutations are queued to the writer; reads come from
// the last published snapshot.
type Service struct {
	mu sync.RWMutex

	queue  *queue.InMemoryQueue
	store  *repository.SnapshotStore
	writer *worker.Writer
	ticker *worker.Ticker
	cancel context.CancelFunc

	queueSize        int
	tickInterval     time.Duration
	shotClockSeconds int
	shotClockStep    int
	shuffleSeed      uint64
	pendingOutFirst  bool
	replayWindow     int
	presets          []types.Preset

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a stopped service.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:     defaultQueueSize,
		tickInterval:  defaultTickInterval,
		shotClockStep: defaultShotClockStep,
		replayWindow:  defaultReplayWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds a fresh game and starts the writer and the ticker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting benchcoach service...")

	g := game.New(
		game.WithRosterFactory(roster.NewFactory(roster.WithSeed(s.shuffleSeed))),
		game.WithShotClock(s.shotClockSeconds),
		game.WithShotClockStep(s.shotClockStep),
		game.WithPendingOutFirst(s.pendingOutFirst),
	)

	// The writer and ticker outlive the start request.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.store = repository.NewSnapshotStore(runCtx)
	s.ticker = worker.NewTicker(s.queue,
		worker.WithInterval(s.tickInterval),
		worker.WithTickerLogger(s.logger.Named("ticker")),
	)
	// The first second after a start takes one full interval.
	writerOpts := []worker.Option{
		worker.WithLogger(s.logger.Named("writer")),
		worker.WithClockStartHook(s.ticker.Rephase),
	}
	if s.replayWindow > 0 {
		writerOpts = append(writerOpts, worker.WithDeduper(dedupe.NewWindow(dedupe.WithMaxSize(s.replayWindow))))
	}
	s.writer = worker.NewWriter(s.queue, g, s.store, writerOpts...)

	go s.writer.Run(runCtx)
	go s.ticker.Run(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "benchcoach service started",
		logger.Int("queue_size", s.queueSize),
		logger.Duration("tick_interval", s.tickInterval),
		logger.Int("shot_clock_seconds", s.shotClockSeconds),
		logger.Bool("seeded_shuffle", s.shuffleSeed != 0),
	)
	return nil
}

// Stop shuts down the ticker, the writer and the store. The game is lost.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping benchcoach service...")

	if err := s.ticker.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "ticker shutdown", logger.Error(err))
	}
	_ = s.queue.Close()
	if err := s.writer.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "writer shutdown", logger.Error(err))
	}
	s.cancel()
	s.store.Close()

	s.started = false
	s.logger.Info(ctx, "benchcoach service stopped")
}

// Do runs cmd on the writer and returns the resulting view. Domain no-ops
// succeed with the unchanged view.
func (s *Service) Do(ctx context.Context, cmd model.Command) (types.GameView, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return types.GameView{}, ErrStopped
	}
	q, done := s.queue, s.writer.Done()
	s.mu.RUnlock()

	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if cmd.At.IsZero() {
		cmd.At = time.Now()
	}

	it := queue.NewItem(cmd)
	if err := q.Enqueue(ctx, it); err != nil {
		switch {
		case errors.Is(err, queue.ErrFull):
			return types.GameView{}, fmt.Errorf("%w: %s", ErrBackpressure, cmd.Kind)
		case errors.Is(err, queue.ErrClosed):
			return types.GameView{}, ErrStopped
		default:
			return types.GameView{}, err
		}
	}

	select {
	case v := <-it.Reply:
		return v, nil
	case <-done:
		return types.GameView{}, ErrStopped
	case <-ctx.Done():
		return types.GameView{}, ctx.Err()
	}
}

// StartGame starts a game from names.
func (s *Service) StartGame(ctx context.Context, names []string) (types.GameView, error) {
	return s.Do(ctx, model.Command{Kind: model.CmdStartGame, Names: names})
}

// StartPreset starts a game from a configured preset.
func (s *Service) StartPreset(ctx context.Context, name string) (types.GameView, error) {
	p, ok := s.Preset(name)
	if !ok {
		return types.GameView{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return s.StartGame(ctx, p.Players)
}

// Game returns the last published view.
func (s *Service) Game(ctx context.Context) (types.GameView, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return types.GameView{}, err
	}
	return snap.Game, nil
}

// Stats returns the last published stats.
func (s *Service) Stats(ctx context.Context) (types.StatsView, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return types.StatsView{}, err
	}
	return snap.Stats, nil
}

// Events returns the last published log, newest first.
func (s *Service) Events(ctx context.Context) ([]types.EventView, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Events, nil
}

// Kinds lists every event kind.
func (s *Service) Kinds() []types.KindView {
	return game.KindViews()
}

// Presets returns the configured roster presets.
func (s *Service) Presets() []types.Preset {
	out := make([]types.Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Preset finds a preset by name, ignoring case.
func (s *Service) Preset(name string) (types.Preset, bool) {
	for _, p := range s.presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return types.Preset{}, false
}

func (s *Service) current(ctx context.Context) (*repository.Snapshot, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	if store == nil {
		return nil, ErrStopped
	}
	snap, err := store.Current(ctx)
	if errors.Is(err, repository.ErrNoSnapshot) {
		return nil, ErrNoGame
	}
	return snap, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":         s.started,
		"queue_size":      s.queueSize,
		"tick_interval":   s.tickInterval.String(),
		"shot_clock":      s.shotClockSeconds,
		"shot_clock_step": s.shotClockStep,
		"presets":         len(s.presets),
		"replay_window":   s.replayWindow,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queue_length"] = queueLen
		stats["uptime"] = time.Since(s.startedAt).Round(time.Second).String()
		stats["version"] = s.store.Version(ctx)
		if snap, err := s.store.Current(ctx); err == nil {
			stats["game_started"] = snap.Game.Started
			stats["players"] = repository.StatusCounts(snap.Game)
			stats["events"] = snap.Game.EventCount
		}
		metrics.UpdateQueueSize(queueLen)
	}
	return stats
}
