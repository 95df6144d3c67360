// Package game holds the whole in-memory state of one game: roster, event
// log, game clock and shot clock.
//
// A Game is owned by exactly one writer. Every mutation is a method call that
// runs to completion before the next one starts; readers receive copies via
// View and Stats.
package game

import (
	"strings"

	"github.com/okian/benchcoach/internal/domain/clock"
	"github.com/okian/benchcoach/internal/domain/eventlog"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/roster"
)

const defaultShotClockStep = 60

// Game is the core state machine.
type Game struct {
	factory *roster.Factory
	roster  roster.Roster
	log     *eventlog.Log

	stopwatch *clock.Stopwatch
	shot      *clock.Countdown
	shotStep  int

	pendingOutFirst bool
	confirmReset    bool
	version         uint64
}

// Option applies a configuration option to the Game.
type Option func(*Game)

// WithRosterFactory sets how rosters are built on start.
func WithRosterFactory(f *roster.Factory) Option {
	return func(g *Game) {
		if f != nil {
			g.factory = f
		}
	}
}

// WithShotClock sets the initial shot clock duration in seconds.
func WithShotClock(seconds int) Option {
	return func(g *Game) {
		g.shot.Restart(seconds)
	}
}

// WithShotClockStep sets the +/- adjustment step in seconds.
func WithShotClockStep(seconds int) Option {
	return func(g *Game) {
		if seconds > 0 {
			g.shotStep = seconds
		}
	}
}

// WithPendingOutFirst lists players marked to come out ahead of the rest of
// the on-court list.
func WithPendingOutFirst(enabled bool) Option {
	return func(g *Game) {
		g.pendingOutFirst = enabled
	}
}

// New returns a game with no roster.
func New(opts ...Option) *Game {
	g := &Game{
		factory:   roster.NewFactory(),
		log:       eventlog.New(),
		stopwatch: clock.NewStopwatch(),
		shot:      clock.NewCountdown(0),
		shotStep:  defaultShotClockStep,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Started reports whether a roster exists.
func (g *Game) Started() bool { return !g.roster.Empty() }

// Version increases on every state change.
func (g *Game) Version() uint64 { return g.version }

// Roster returns the current roster value.
func (g *Game) Roster() roster.Roster { return g.roster }

// Elapsed is the game clock reading.
func (g *Game) Elapsed() int { return g.stopwatch.Seconds() }

// Score returns the team counters.
func (g *Game) Score() model.Score { return g.log.Score() }

// Events returns the log, newest first.
func (g *Game) Events() []model.Event { return g.log.Events() }

// Start creates the roster from names. It does nothing while a game is in
// progress or when no usable name is given.
func (g *Game) Start(names []string) bool {
	if g.Started() {
		return false
	}
	r := g.factory.Reset(names)
	if r.Empty() {
		return false
	}
	g.roster = r
	g.log = eventlog.New()
	g.stopwatch.Reset(true)
	g.confirmReset = false
	return g.changed(true)
}

// MarkGoingIn moves a benched player to PendingIn.
func (g *Game) MarkGoingIn(ref string) bool {
	return g.setRoster(g.roster.MarkGoingIn(ref))
}

// UnmarkGoingIn returns a PendingIn player to the bench.
func (g *Game) UnmarkGoingIn(ref string) bool {
	return g.setRoster(g.roster.UnmarkGoingIn(ref))
}

// ToggleComingOut flips an on-court player's PendingOut mark.
func (g *Game) ToggleComingOut(ref string) bool {
	return g.setRoster(g.roster.ToggleComingOut(ref))
}

// Substitute commits all pending marks at the current game clock reading and
// returns how many players moved.
func (g *Game) Substitute() int {
	next, moved := g.roster.Substitute(g.stopwatch.Seconds())
	g.roster = next
	g.changed(moved > 0)
	return moved
}

// Tick passes one game second: playing players accrue a second and both
// clocks advance. With the game clock stopped it does nothing.
func (g *Game) Tick() bool {
	if !g.stopwatch.Running() {
		return false
	}
	g.roster = g.roster.Tick()
	g.stopwatch.Advance()
	g.shot.Advance()
	return g.changed(true)
}

// StartClock runs the game clock and resumes the shot clock.
func (g *Game) StartClock() bool {
	if !g.Started() || g.stopwatch.Running() {
		return false
	}
	g.stopwatch.Start()
	g.shot.Start()
	return g.changed(true)
}

// PauseClock stops both clocks.
func (g *Game) PauseClock() bool {
	if !g.stopwatch.Running() && !g.shot.Running() {
		return false
	}
	g.stopwatch.Pause()
	g.shot.Pause()
	return g.changed(true)
}

// AdjustShotClock changes the shot clock duration by steps times the
// configured step, floored at zero, and reloads the shot clock stopped.
func (g *Game) AdjustShotClock(steps int) bool {
	duration := max(g.shot.Duration()+steps*g.shotStep, 0)
	if duration == g.shot.Duration() && g.shot.Seconds() == duration && !g.shot.Running() {
		return false
	}
	g.shot.Restart(duration)
	return g.changed(true)
}

// ResetShotClock reloads the shot clock duration. It keeps counting if the
// game clock is running.
func (g *Game) ResetShotClock() bool {
	g.shot.Restart(g.shot.Duration())
	if g.stopwatch.Running() {
		g.shot.Start()
	}
	return g.changed(true)
}

// SelectKind arms kind, or disarms it if it is already armed.
func (g *Game) SelectKind(kind model.EventKind) bool {
	before, _ := g.log.Armed()
	g.log.Select(kind)
	after, _ := g.log.Armed()
	return g.changed(before != after)
}

// ClearKind disarms the selection.
func (g *Game) ClearKind() bool {
	_, armed := g.log.Armed()
	g.log.Clear()
	return g.changed(armed)
}

// LogArmed logs the armed kind for subject.
func (g *Game) LogArmed(subject string) (model.Event, bool) {
	return g.LogEvent("", subject)
}

// LogEvent logs a play for subject at the current game clock reading. With
// an empty kind the armed kind is used. Subjects are player names or ids,
// "us", "them", or empty; an unknown player leaves the log and the selection
// untouched.
func (g *Game) LogEvent(kind model.EventKind, subject string) (model.Event, bool) {
	if kind == "" {
		armed, ok := g.log.Armed()
		if !ok {
			return model.Event{}, false
		}
		kind = armed
	}
	subject, ok := g.resolveSubject(kind, subject)
	if !ok {
		return model.Event{}, false
	}
	e, ok := g.log.Log(kind, subject, g.stopwatch.Seconds())
	g.changed(ok)
	return e, ok
}

func (g *Game) resolveSubject(kind model.EventKind, subject string) (string, bool) {
	subject = strings.TrimSpace(subject)
	if kind.TeamOnly() {
		return "", true
	}
	switch strings.ToLower(subject) {
	case "":
		return "", true
	case model.SubjectUs:
		return model.SubjectUs, true
	case model.SubjectThem:
		return model.SubjectThem, true
	}
	p, ok := g.roster.Find(subject)
	if !ok {
		return "", false
	}
	return p.Name, true
}

// ToggleConfirmReset arms or disarms the reset confirmation.
func (g *Game) ToggleConfirmReset() bool {
	g.confirmReset = !g.confirmReset
	return g.changed(true)
}

// ConfirmReset reports whether a reset is armed.
func (g *Game) ConfirmReset() bool { return g.confirmReset }

// Reset discards the roster, the log, the score and the armed kind, rewinds
// the game clock and reloads the shot clock. It only acts after
// ToggleConfirmReset armed it.
func (g *Game) Reset() bool {
	if !g.confirmReset {
		return false
	}
	g.roster = roster.Roster{}
	g.log = eventlog.New()
	g.stopwatch.Reset(true)
	g.shot.Restart(g.shot.Duration())
	g.confirmReset = false
	return g.changed(true)
}

func (g *Game) setRoster(next roster.Roster) bool {
	if next.Len() != g.roster.Len() {
		return false
	}
	same := true
	for i, p := range next.Players() {
		if p.Status != g.roster.Players()[i].Status {
			same = false
			break
		}
	}
	g.roster = next
	return g.changed(!same)
}

func (g *Game) changed(ok bool) bool {
	if ok {
		g.version++
	}
	return ok
}
