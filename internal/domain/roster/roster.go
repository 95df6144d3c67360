// Package roster implements the court/bench state machine for a fixed set of
// players.
//
// A Roster is an immutable value. Every operation returns a new Roster and
// leaves the receiver untouched, so a reader holding a Roster never observes
// a partially applied substitution.
//
//	Bench --MarkGoingIn--> PendingIn --Substitute--> OnCourt
//	OnCourt --ToggleComingOut--> PendingOut --Substitute--> Bench
//	PendingIn --UnmarkGoingIn--> Bench
//	PendingOut --ToggleComingOut--> OnCourt
//
// Operations that do not apply to the referenced player are no-ops.
package roster

import (
	"sort"

	"github.com/okian/benchcoach/internal/domain/model"
)

// Roster is an ordered, fixed-size set of players.
type Roster struct {
	players []model.Player
}

// Len returns the number of players.
func (r Roster) Len() int { return len(r.players) }

// Empty reports whether no game roster exists.
func (r Roster) Empty() bool { return len(r.players) == 0 }

// Players returns the players in roster order.
func (r Roster) Players() []model.Player {
	out := make([]model.Player, len(r.players))
	copy(out, r.players)
	return out
}

// Find returns the player whose ID or name equals ref.
func (r Roster) Find(ref string) (model.Player, bool) {
	if i := r.index(ref); i >= 0 {
		return r.players[i], true
	}
	return model.Player{}, false
}

func (r Roster) index(ref string) int {
	for i := range r.players {
		if r.players[i].ID == ref {
			return i
		}
	}
	for i := range r.players {
		if r.players[i].Name == ref {
			return i
		}
	}
	return -1
}

// update applies fn to the referenced player. The receiver is returned
// unchanged when the player is unknown or fn declines the change.
func (r Roster) update(ref string, fn func(p model.Player) (model.Player, bool)) Roster {
	i := r.index(ref)
	if i < 0 {
		return r
	}
	next, ok := fn(r.players[i])
	if !ok {
		return r
	}
	players := r.Players()
	players[i] = next
	return Roster{players: players}
}

// MarkGoingIn moves a benched player to PendingIn.
func (r Roster) MarkGoingIn(ref string) Roster {
	return r.update(ref, func(p model.Player) (model.Player, bool) {
		if p.Status != model.StatusBench {
			return p, false
		}
		p.Status = model.StatusPendingIn
		return p, true
	})
}

// UnmarkGoingIn moves a PendingIn player back to the bench.
func (r Roster) UnmarkGoingIn(ref string) Roster {
	return r.update(ref, func(p model.Player) (model.Player, bool) {
		if p.Status != model.StatusPendingIn {
			return p, false
		}
		p.Status = model.StatusBench
		return p, true
	})
}

// ToggleComingOut flips a player between OnCourt and PendingOut.
func (r Roster) ToggleComingOut(ref string) Roster {
	return r.update(ref, func(p model.Player) (model.Player, bool) {
		switch p.Status {
		case model.StatusOnCourt:
			p.Status = model.StatusPendingOut
		case model.StatusPendingOut:
			p.Status = model.StatusOnCourt
		default:
			return p, false
		}
		return p, true
	})
}

// Substitute commits every pending transition in one pass at the given
// stopwatch time. It returns the new roster and the number of players moved.
func (r Roster) Substitute(elapsed int) (Roster, int) {
	moved := 0
	players := make([]model.Player, len(r.players))
	for i, p := range r.players {
		switch p.Status {
		case model.StatusPendingIn:
			p.Status = model.StatusOnCourt
			p.CourtEnteredAt = model.At(elapsed)
			moved++
		case model.StatusPendingOut:
			p.Status = model.StatusBench
			p.BenchEnteredAt = model.At(elapsed)
			moved++
		}
		players[i] = p
	}
	if moved == 0 {
		return r, 0
	}
	return Roster{players: players}, moved
}

// Tick credits one second to every player who is playing.
func (r Roster) Tick() Roster {
	var players []model.Player
	for i, p := range r.players {
		if !p.Status.Playing() {
			continue
		}
		if players == nil {
			players = r.Players()
		}
		players[i].SecondsPlayed++
	}
	if players == nil {
		return r
	}
	return Roster{players: players}
}

// OnCourt lists playing players, earliest court entry first. PendingOut
// players stay in this list until the substitution commits.
func (r Roster) OnCourt() []model.Player {
	out := r.filter(func(p model.Player) bool { return p.Status.Playing() })
	sort.SliceStable(out, func(i, j int) bool {
		return model.Seconds(out[i].CourtEnteredAt) < model.Seconds(out[j].CourtEnteredAt)
	})
	return out
}

// OnCourtPendingFirst lists playing players with PendingOut players first,
// then by court entry.
func (r Roster) OnCourtPendingFirst() []model.Player {
	out := r.OnCourt()
	sort.SliceStable(out, func(i, j int) bool {
		pi := out[i].Status == model.StatusPendingOut
		pj := out[j].Status == model.StatusPendingOut
		return pi && !pj
	})
	return out
}

// PendingIn lists players marked to go in, in roster order.
func (r Roster) PendingIn() []model.Player {
	return r.filter(func(p model.Player) bool { return p.Status == model.StatusPendingIn })
}

// Bench lists benched players, longest waiting first. A player who has never
// left the bench has no bench timestamp and sorts as if benched at 0; ties
// keep roster order.
func (r Roster) Bench() []model.Player {
	out := r.filter(func(p model.Player) bool { return p.Status == model.StatusBench })
	sort.SliceStable(out, func(i, j int) bool {
		return model.Seconds(out[i].BenchEnteredAt) < model.Seconds(out[j].BenchEnteredAt)
	})
	return out
}

// Counts returns the number of players per status.
func (r Roster) Counts() map[model.Status]int {
	counts := map[model.Status]int{
		model.StatusBench:      0,
		model.StatusPendingIn:  0,
		model.StatusOnCourt:    0,
		model.StatusPendingOut: 0,
	}
	for _, p := range r.players {
		counts[p.Status]++
	}
	return counts
}

func (r Roster) filter(keep func(model.Player) bool) []model.Player {
	out := make([]model.Player, 0, len(r.players))
	for _, p := range r.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// StintSeconds is how long a playing player has been in since their last
// court entry. Non-playing players report 0.
func StintSeconds(p model.Player, elapsed int) int {
	if !p.Status.Playing() {
		return 0
	}
	return max(elapsed-model.Seconds(p.CourtEnteredAt), 0)
}
