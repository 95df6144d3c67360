package service

import (
	"time"

	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the capacity of the command queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithTickInterval sets the wall time of one game second.
func WithTickInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithShotClock sets the initial shot clock duration in seconds.
func WithShotClock(seconds int) Option {
	return func(s *Service) {
		if seconds >= 0 {
			s.shotClockSeconds = seconds
		}
	}
}

// WithShotClockStep sets the shot clock adjustment step in seconds.
func WithShotClockStep(seconds int) Option {
	return func(s *Service) {
		if seconds > 0 {
			s.shotClockStep = seconds
		}
	}
}

// WithShuffleSeed makes roster shuffling deterministic. Zero keeps it random.
func WithShuffleSeed(seed uint64) Option {
	return func(s *Service) {
		s.shuffleSeed = seed
	}
}

// WithPendingOutFirst lists players marked to come out first on court.
func WithPendingOutFirst(enabled bool) Option {
	return func(s *Service) {
		s.pendingOutFirst = enabled
	}
}

// WithReplayWindow sets how many recent idempotency keys are remembered.
// Zero disables replay protection.
func WithReplayWindow(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.replayWindow = size
		}
	}
}

// WithPresets sets the named roster lists.
func WithPresets(presets []types.Preset) Option {
	return func(s *Service) {
		s.presets = presets
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
