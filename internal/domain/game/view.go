package game

import (
	"fmt"

	"github.com/okian/benchcoach/internal/domain/clock"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/roster"
	"github.com/okian/benchcoach/internal/domain/stats"
	"github.com/okian/benchcoach/internal/domain/types"
)

// View returns the read model of the current state. The result shares no
// memory with the game.
func (g *Game) View() types.GameView {
	elapsed := g.stopwatch.Seconds()
	onCourt := g.roster.OnCourt()
	if g.pendingOutFirst {
		onCourt = g.roster.OnCourtPendingFirst()
	}
	armed, _ := g.log.Armed()
	score := g.log.Score()

	return types.GameView{
		Version:   g.version,
		Started:   g.Started(),
		OnCourt:   playerViews(onCourt, elapsed),
		PendingIn: playerViews(g.roster.PendingIn(), elapsed),
		Bench:     playerViews(g.roster.Bench(), elapsed),
		GameClock: types.ClockView{
			Seconds: elapsed,
			Display: Display(elapsed),
			Running: g.stopwatch.Running(),
		},
		ShotClock: types.ClockView{
			Seconds:  g.shot.Seconds(),
			Display:  Display(g.shot.Seconds()),
			Running:  g.shot.Running(),
			Duration: g.shot.Duration(),
			Expired:  g.shot.Expired(),
		},
		Score:        types.ScoreView{Us: score.Us, Them: score.Them},
		Armed:        string(armed),
		ConfirmReset: g.confirmReset,
		EventCount:   g.log.Len(),
	}
}

// Stats aggregates the roster and the log.
func (g *Game) Stats() stats.Snapshot {
	return stats.Aggregate(g.roster.Players(), g.log.Events(), g.log.Score())
}

// StatsView returns the stats read model.
func (g *Game) StatsView() types.StatsView {
	snap := g.Stats()
	out := types.StatsView{
		Version:    g.version,
		Players:    make([]types.PlayerStats, 0, len(snap.Players)),
		Teams:      make([]types.TeamStats, 0, len(snap.Teams)),
		Score:      types.ScoreView{Us: snap.Score.Us, Them: snap.Score.Them},
		Timeline:   snap.Timeline,
		Consistent: snap.Consistent(),
	}
	for _, p := range snap.Players {
		out.Players = append(out.Players, types.PlayerStats{
			ID:            p.ID,
			Name:          p.Name,
			SecondsPlayed: p.SecondsPlayed,
			PlayingTime:   Display(p.SecondsPlayed),
			Points:        p.Points,
			Counts:        countsView(p.Counts),
		})
	}
	for _, t := range snap.Teams {
		out.Teams = append(out.Teams, types.TeamStats{
			Subject: t.Subject,
			Points:  t.Points,
			Counts:  countsView(t.Counts),
		})
	}
	return out
}

// EventsView returns the log newest first.
func (g *Game) EventsView() []types.EventView {
	events := g.log.Events()
	out := make([]types.EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView(e))
	}
	return out
}

// EventView converts one event.
func EventView(e model.Event) types.EventView {
	return types.EventView{
		Seq:              e.Seq,
		Subject:          e.Subject,
		Kind:             string(e.Kind),
		TimestampSeconds: e.TimestampSeconds,
		Message:          e.Message,
	}
}

// KindViews lists every event kind in button order.
func KindViews() []types.KindView {
	kinds := model.Kinds()
	out := make([]types.KindView, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, types.KindView{
			Kind:     string(k),
			Phrase:   k.Phrase(),
			Category: string(k.Category()),
			Points:   k.Points(),
			TeamOnly: k.TeamOnly(),
		})
	}
	return out
}

// Display formats seconds as m:ss.
func Display(seconds int) string {
	m, s := clock.MinSec(seconds)
	return fmt.Sprintf("%d:%02d", m, s)
}

func playerViews(players []model.Player, elapsed int) []types.PlayerView {
	out := make([]types.PlayerView, 0, len(players))
	for _, p := range players {
		out = append(out, types.PlayerView{
			ID:             p.ID,
			Name:           p.Name,
			Status:         p.Status.String(),
			SecondsPlayed:  p.SecondsPlayed,
			StintSeconds:   roster.StintSeconds(p, elapsed),
			CourtEnteredAt: copyAt(p.CourtEnteredAt),
			BenchEnteredAt: copyAt(p.BenchEnteredAt),
		})
	}
	return out
}

func copyAt(at *int) *int {
	if at == nil {
		return nil
	}
	return model.At(*at)
}

func countsView(c stats.Counts) map[string]int {
	out := make(map[string]int, len(c))
	for k, v := range c {
		out[string(k)] = v
	}
	return out
}
