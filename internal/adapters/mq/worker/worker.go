// Package worker runs the game's single exclusive writer and the clock
// ticker that feeds it.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/benchcoach/internal/adapters/mq/queue"
	"github.com/okian/benchcoach/internal/adapters/repository"
	"github.com/okian/benchcoach/internal/domain/dedupe"
	"github.com/okian/benchcoach/internal/domain/game"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/logger"
	"github.com/okian/benchcoach/pkg/metrics"
)

// Game is the state the writer owns.
type Game interface {
	Apply(cmd model.Command) game.Outcome
	Version() uint64
	View() types.GameView
	StatsView() types.StatsView
	EventsView() []types.EventView
}

// Publisher receives every state the writer produces.
type Publisher interface {
	Publish(ctx context.Context, s *repository.Snapshot) error
}

// Queue defines how the writer receives commands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Item
}

// Writer applies queued commands to the game one at a time and publishes a
// snapshot after each change. It is the only goroutine touching the game.
type Writer struct {
	queue     Queue
	game      Game
	publisher Publisher
	replays   dedupe.Deduper
	name      string

	onClockStart func()
	clockStarted time.Time

	last *repository.Snapshot

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewWriter creates a writer for g.
func NewWriter(q Queue, g Game, p Publisher, opts ...Option) *Writer {
	w := &Writer{
		queue:     q,
		game:      g,
		publisher: p,
		name:      "writer",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes commands until ctx is cancelled, Shutdown is called, or the
// queue is closed and drained.
func (w *Writer) Run(ctx context.Context) {
	defer close(w.done)
	metrics.UpdateWorkerRunning(true)
	defer metrics.UpdateWorkerRunning(false)

	w.publish(ctx)

	items := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case it, ok := <-items:
			if !ok {
				return
			}
			w.process(ctx, it)
		}
	}
}

// Done is closed when Run returns.
func (w *Writer) Done() <-chan struct{} { return w.done }

// Shutdown stops the writer and waits for Run to return.
func (w *Writer) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *Writer) process(ctx context.Context, it queue.Item) {
	start := time.Now()
	cmd := it.Command
	if w.replayed(ctx, cmd) {
		w.reply(ctx, it)
		return
	}
	if w.stale(cmd) {
		metrics.RecordCommand(string(cmd.Kind), false, float64(time.Since(start).Microseconds())/1000)
		w.reply(ctx, it)
		return
	}
	out := w.game.Apply(cmd)
	metrics.RecordCommand(string(cmd.Kind), out.Changed, float64(time.Since(start).Microseconds())/1000)

	if cmd.Kind == model.CmdStartClock && out.Changed {
		if w.onClockStart != nil {
			w.onClockStart()
		}
		w.clockStarted = time.Now()
	}

	if out.Changed {
		w.record(ctx, cmd, out)
		w.publish(ctx)
	}

	w.reply(ctx, it)
}

// stale reports whether cmd is a tick fired before the clock last started.
func (w *Writer) stale(cmd model.Command) bool {
	return cmd.Kind == model.CmdTick && !cmd.At.IsZero() && cmd.At.Before(w.clockStarted)
}

// replayed reports whether cmd carries a key that was already applied.
func (w *Writer) replayed(ctx context.Context, cmd model.Command) bool {
	if w.replays == nil || cmd.Key == "" {
		return false
	}
	if !w.replays.SeenAndRecord(ctx, cmd.Key) {
		return false
	}
	metrics.RecordReplay()
	w.logger.Debug(ctx, "replay skipped",
		logger.String("kind", string(cmd.Kind)),
		logger.String("key", cmd.Key),
	)
	return true
}

func (w *Writer) reply(ctx context.Context, it queue.Item) {
	if it.Reply == nil {
		return
	}
	select {
	case it.Reply <- w.last.Game:
	default:
		w.logger.Warn(ctx, "reply dropped", logger.String("command_id", it.Command.ID))
	}
}

func (w *Writer) record(ctx context.Context, cmd model.Command, out game.Outcome) {
	switch {
	case out.Ticked:
		metrics.RecordTick()
		return
	case out.Logged != nil:
		metrics.RecordEventLogged(string(out.Logged.Kind))
		w.logger.Debug(ctx, "event logged",
			logger.String("kind", string(out.Logged.Kind)),
			logger.String("subject", out.Logged.Subject),
			logger.Int("at", out.Logged.TimestampSeconds),
		)
		return
	case out.Moved > 0:
		metrics.RecordSubstitution(out.Moved)
		w.logger.Info(ctx, "substitution committed", logger.Int("moved", out.Moved))
		return
	}

	switch cmd.Kind {
	case model.CmdStartGame:
		metrics.RecordGameStarted()
		w.logger.Info(ctx, "game started", logger.Int("players", len(cmd.Names)))
	case model.CmdReset:
		metrics.RecordGameReset()
		w.logger.Info(ctx, "game reset")
	default:
		w.logger.Debug(ctx, "command applied",
			logger.String("kind", string(cmd.Kind)),
			logger.String("command_id", cmd.ID),
		)
	}
}

func (w *Writer) publish(ctx context.Context) {
	snap := &repository.Snapshot{
		Version: w.game.Version(),
		Game:    w.game.View(),
		Stats:   w.game.StatsView(),
		Events:  w.game.EventsView(),
	}
	w.last = snap
	if err := w.publisher.Publish(ctx, snap); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "publish")
		w.logger.Error(ctx, "publish failed", logger.Error(err))
	}
}
