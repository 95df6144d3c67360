package worker

import (
	"time"

	"github.com/okian/benchcoach/internal/domain/dedupe"
	"github.com/okian/benchcoach/pkg/logger"
)

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithName sets the writer name used in logs.
func WithName(name string) Option {
	return func(w *Writer) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the writer.
func WithLogger(l logger.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDeduper skips commands whose idempotency key d has already seen.
func WithDeduper(d dedupe.Deduper) Option {
	return func(w *Writer) {
		w.replays = d
	}
}

// WithClockStartHook calls fn on the writer goroutine each time the game
// clock starts, e.g. to rephase the ticker.
func WithClockStartHook(fn func()) Option {
	return func(w *Writer) {
		w.onClockStart = fn
	}
}

// TickerOption applies a configuration option to the Ticker.
type TickerOption func(*Ticker)

// WithInterval sets the wall time of one game second.
func WithInterval(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTickerLogger sets a custom logger for the ticker.
func WithTickerLogger(l logger.Logger) TickerOption {
	return func(t *Ticker) {
		if l != nil {
			t.logger = l
		}
	}
}
