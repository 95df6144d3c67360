package gamesim

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/okian/benchcoach/internal/domain/types"
)

// Verification errors.
var (
	ErrPartition     = errors.New("roster partition broken")
	ErrScore         = errors.New("score mismatch")
	ErrInconsistent  = errors.New("stats inconsistent")
	ErrNotIdempotent = errors.New("stats changed between reads")
	ErrEventCount    = errors.New("event count mismatch")
	ErrReplayApplied = errors.New("replayed command applied twice")
)

// verifyPartition checks that every player appears in exactly one list with
// a status that matches it.
func verifyPartition(view types.GameView, players int) error {
	if !view.Started {
		return nil
	}
	seen := make(map[string]string, players)
	check := func(list string, ps []types.PlayerView, statuses ...string) error {
		for _, p := range ps {
			if prev, dup := seen[p.ID]; dup {
				return fmt.Errorf("%w: %s in both %s and %s", ErrPartition, p.Name, prev, list)
			}
			seen[p.ID] = list
			if !contains(statuses, p.Status) {
				return fmt.Errorf("%w: %s has status %s in %s", ErrPartition, p.Name, p.Status, list)
			}
		}
		return nil
	}
	if err := check("on_court", view.OnCourt, "on_court", "pending_out"); err != nil {
		return err
	}
	if err := check("pending_in", view.PendingIn, "pending_in"); err != nil {
		return err
	}
	if err := check("bench", view.Bench, "bench"); err != nil {
		return err
	}
	if len(seen) != players {
		return fmt.Errorf("%w: %d players listed, roster has %d", ErrPartition, len(seen), players)
	}
	return nil
}

// verifyScore checks the view and stats against what the simulator logged.
func verifyScore(view types.GameView, stats types.StatsView, want expected) error {
	if view.Score != want.score {
		return fmt.Errorf("%w: view %+v, logged %+v", ErrScore, view.Score, want.score)
	}
	if stats.Score != view.Score {
		return fmt.Errorf("%w: stats %+v, view %+v", ErrScore, stats.Score, view.Score)
	}
	if !stats.Consistent {
		return ErrInconsistent
	}
	if view.EventCount != want.events {
		return fmt.Errorf("%w: view %d, logged %d", ErrEventCount, view.EventCount, want.events)
	}
	return nil
}

// verifyIdempotent checks that two reads of an unchanged game agree.
func verifyIdempotent(a, b types.StatsView) error {
	if !reflect.DeepEqual(a, b) {
		return ErrNotIdempotent
	}
	return nil
}

// verifyReplay checks that resending a keyed command left the log and score alone.
func verifyReplay(first, again types.GameView) error {
	if again.EventCount != first.EventCount || again.Score != first.Score {
		return fmt.Errorf("%w: events %d -> %d, score %+v -> %+v",
			ErrReplayApplied, first.EventCount, again.EventCount, first.Score, again.Score)
	}
	return nil
}

// verifyEvents checks the log listing against the view.
func verifyEvents(view types.GameView, events eventsResponse) error {
	if events.Count != view.EventCount || len(events.Events) != view.EventCount {
		return fmt.Errorf("%w: listing %d (%d rows), view %d", ErrEventCount, events.Count, len(events.Events), view.EventCount)
	}
	for i := 1; i < len(events.Events); i++ {
		if events.Events[i].Seq >= events.Events[i-1].Seq {
			return fmt.Errorf("%w: events not newest first at %d", ErrEventCount, i)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
