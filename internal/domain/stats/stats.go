// Package stats derives per-player and per-team summaries from the roster and
// the event log. Nothing here is cached or stored: callers aggregate again
// whenever they display.
package stats

import (
	"strconv"

	"github.com/okian/benchcoach/internal/domain/model"
)

// Counts holds one counter per event kind. Every kind is present.
type Counts map[model.EventKind]int

// PlayerRow summarizes one player.
type PlayerRow struct {
	ID            string
	Name          string
	SecondsPlayed int
	Points        int
	Counts        Counts
}

// TeamRow summarizes a team sentinel: "us", "them", or the anonymous "team"
// bucket for events logged without a subject.
type TeamRow struct {
	Subject string
	Points  int
	Counts  Counts
}

// Snapshot is a read-only aggregation result.
type Snapshot struct {
	Players  []PlayerRow // roster order
	Teams    []TeamRow   // us, them, team
	Score    model.Score // maintained counters, not recomputed
	Timeline []string    // newest first
	Events   int
}

// Aggregate groups events by subject and builds the summary tables. It reads
// its arguments only and is safe to call repeatedly.
func Aggregate(players []model.Player, events []model.Event, score model.Score) Snapshot {
	grouped := Group(events)

	snap := Snapshot{
		Players:  make([]PlayerRow, 0, len(players)),
		Teams:    make([]TeamRow, 0, 3),
		Score:    score,
		Timeline: make([]string, 0, len(events)),
		Events:   len(events),
	}

	for _, p := range players {
		c := filled(grouped[p.Name])
		snap.Players = append(snap.Players, PlayerRow{
			ID:            p.ID,
			Name:          p.Name,
			SecondsPlayed: p.SecondsPlayed,
			Points:        Points(c),
			Counts:        c,
		})
	}

	for _, subject := range []string{model.SubjectUs, model.SubjectThem, model.SubjectTeam} {
		c := filled(grouped[subject])
		snap.Teams = append(snap.Teams, TeamRow{Subject: subject, Points: Points(c), Counts: c})
	}

	for _, e := range events {
		snap.Timeline = append(snap.Timeline, strconv.Itoa(e.TimestampSeconds)+"s: "+e.Message)
	}
	return snap
}

// Group counts events per subject and kind. Events without a subject are
// grouped under the team sentinel.
func Group(events []model.Event) map[string]map[model.EventKind]int {
	grouped := make(map[string]map[model.EventKind]int)
	for _, e := range events {
		subject := e.Subject
		if subject == "" {
			subject = model.SubjectTeam
		}
		if grouped[subject] == nil {
			grouped[subject] = make(map[model.EventKind]int)
		}
		grouped[subject][e.Kind]++
	}
	return grouped
}

// Points weighs scoring counts by their value.
func Points(c Counts) int {
	total := 0
	for kind, n := range c {
		total += kind.Points() * n
	}
	return total
}

// Team returns the row for subject.
func (s Snapshot) Team(subject string) (TeamRow, bool) {
	for _, t := range s.Teams {
		if t.Subject == subject {
			return t, true
		}
	}
	return TeamRow{}, false
}

// Player returns the row for a player name or id.
func (s Snapshot) Player(ref string) (PlayerRow, bool) {
	for _, p := range s.Players {
		if p.ID == ref || p.Name == ref {
			return p, true
		}
	}
	return PlayerRow{}, false
}

// Consistent reports whether the maintained score counters agree with the
// points recomputed from the log.
func (s Snapshot) Consistent() bool {
	us, _ := s.Team(model.SubjectUs)
	them, _ := s.Team(model.SubjectThem)
	return us.Points == s.Score.Us && them.Points == s.Score.Them
}

func filled(src map[model.EventKind]int) Counts {
	c := make(Counts, len(model.Kinds()))
	for _, k := range model.Kinds() {
		c[k] = src[k]
	}
	return c
}
