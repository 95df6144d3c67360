// Package model contains domain models passed between layers.
package model

// Status is a player's court assignment.
type Status int

// Player statuses. Exactly one holds at any time.
const (
	StatusBench Status = iota
	StatusPendingIn
	StatusOnCourt
	StatusPendingOut
)

var statusNames = [...]string{"bench", "pending_in", "on_court", "pending_out"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Playing reports whether the status accrues seconds and is grouped with the
// on-court list. PendingOut players keep playing until the substitution commits.
func (s Status) Playing() bool {
	return s == StatusOnCourt || s == StatusPendingOut
}

// Player is one roster entry. Values are treated as immutable once they are
// part of a published roster; mutations build a new Player.
type Player struct {
	ID            string // synthetic identity, stable for the game
	Name          string // display name, unique within the roster
	SecondsPlayed int
	Status        Status

	// CourtEnteredAt and BenchEnteredAt are stopwatch seconds captured at the
	// last transition. Nil means the transition never happened.
	CourtEnteredAt *int
	BenchEnteredAt *int
}

// At returns a pointer to a copy of seconds, for the *EnteredAt fields.
func At(seconds int) *int {
	return &seconds
}

// Seconds dereferences an *EnteredAt field; nil reads as 0.
func Seconds(at *int) int {
	if at == nil {
		return 0
	}
	return *at
}
