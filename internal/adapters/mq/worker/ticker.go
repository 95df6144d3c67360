package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/benchcoach/internal/adapters/mq/queue"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/pkg/logger"
	"github.com/okian/benchcoach/pkg/metrics"
)

const defaultTickInterval = time.Second

// Enqueuer accepts commands for the writer.
type Enqueuer interface {
	Enqueue(ctx context.Context, it queue.Item) error
}

// Ticker enqueues one tick command per interval. Whether a tick moves the
// clocks is up to the game: a paused game ignores it.
type Ticker struct {
	queue    Enqueuer
	interval time.Duration
	rephase  chan struct{}

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewTicker creates a ticker feeding q.
func NewTicker(q Enqueuer, opts ...TickerOption) *Ticker {
	t := &Ticker{
		queue:    q,
		interval: defaultTickInterval,
		rephase:  make(chan struct{}, 1),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logger.Get().Named("ticker")
	}
	return t
}

// Run ticks until ctx is cancelled, Shutdown is called, or the queue closes.
func (t *Ticker) Run(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.shutdown:
			return
		case <-t.rephase:
			ticker.Reset(t.interval)
		case now := <-ticker.C:
			err := t.queue.Enqueue(ctx, queue.Item{Command: model.Command{Kind: model.CmdTick, At: now}})
			switch {
			case err == nil:
			case errors.Is(err, queue.ErrClosed):
				return
			default:
				metrics.RecordErrorByComponent("ticker", "tick_dropped")
				t.logger.Warn(ctx, "tick dropped", logger.Error(err))
			}
		}
	}
}

// Rephase restarts the interval so the next tick comes one full interval
// from now. It never blocks.
func (t *Ticker) Rephase() {
	select {
	case t.rephase <- struct{}{}:
	default:
	}
}

// Shutdown stops the ticker and waits for Run to return.
func (t *Ticker) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() { close(t.shutdown) })
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
