// Package clock provides the game's two clock sources: a stopwatch counting
// game time up and a countdown used as the shot clock.
//
// Clocks hold no goroutine and read no wall time. They move by exactly one
// second per Advance call and only while running, so whoever owns the clock
// decides when a second has passed.
package clock

// Source is the contract both clocks satisfy.
type Source interface {
	Start()
	Pause()
	// Reset stops the clock. toZero also rewinds it to its starting value.
	Reset(toZero bool)
	// Restart sets the clock to seconds and leaves it stopped.
	Restart(seconds int)
	// Advance moves the clock one second if it is running.
	Advance() bool
	Seconds() int
	Running() bool
}

// Stopwatch counts elapsed seconds upward.
type Stopwatch struct {
	elapsed int
	running bool
}

// NewStopwatch returns a stopped stopwatch at zero.
func NewStopwatch() *Stopwatch { return &Stopwatch{} }

func (s *Stopwatch) Start() { s.running = true }
func (s *Stopwatch) Pause() { s.running = false }

func (s *Stopwatch) Reset(toZero bool) {
	s.running = false
	if toZero {
		s.elapsed = 0
	}
}

func (s *Stopwatch) Restart(seconds int) {
	s.running = false
	s.elapsed = max(seconds, 0)
}

func (s *Stopwatch) Advance() bool {
	if !s.running {
		return false
	}
	s.elapsed++
	return true
}

func (s *Stopwatch) Seconds() int  { return s.elapsed }
func (s *Stopwatch) Running() bool { return s.running }

// Countdown counts remaining seconds down from a duration and stops at zero.
type Countdown struct {
	duration  int
	remaining int
	running   bool
}

// NewCountdown returns a stopped countdown loaded with seconds.
func NewCountdown(seconds int) *Countdown {
	c := &Countdown{}
	c.Restart(seconds)
	return c
}

// Start resumes the countdown. An expired countdown stays stopped.
func (c *Countdown) Start() {
	if c.remaining > 0 {
		c.running = true
	}
}

func (c *Countdown) Pause() { c.running = false }

func (c *Countdown) Reset(toZero bool) {
	c.running = false
	if toZero {
		c.remaining = c.duration
	}
}

func (c *Countdown) Restart(seconds int) {
	c.running = false
	c.duration = max(seconds, 0)
	c.remaining = c.duration
}

func (c *Countdown) Advance() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
	}
	return true
}

func (c *Countdown) Seconds() int  { return c.remaining }
func (c *Countdown) Running() bool { return c.running }

// Duration is the value the countdown restarts from.
func (c *Countdown) Duration() int { return c.duration }

// Expired reports whether the countdown ran out.
func (c *Countdown) Expired() bool { return c.duration > 0 && c.remaining == 0 }

// MinSec splits seconds into minutes and seconds for display.
func MinSec(seconds int) (int, int) {
	return seconds / 60, seconds % 60
}
