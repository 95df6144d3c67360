package gamesim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/logger"
)

// ErrNotStarted is returned when the service did not start the simulated game.
var ErrNotStarted = errors.New("game did not start")

// Run plays one simulated game and verifies the results.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("gamesim")

	if config.Players < minPlayers {
		return stats, fmt.Errorf("need at least %d players, got %d", minPlayers, config.Players)
	}
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	log.Info(ctx, "starting simulated game",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.Players),
		logger.Int("seconds", config.Seconds),
		logger.Int("readers", config.Readers),
		logger.Any("seed", seed))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	kinds, err := client.kinds(ctx)
	if err != nil {
		return stats, fmt.Errorf("kinds retrieval failed: %w", err)
	}
	if len(kinds) == 0 {
		return stats, errors.New("service reported no event kinds")
	}

	// Step 2: Start from a clean game
	if err := resetGame(ctx, client); err != nil {
		return stats, fmt.Errorf("reset failed: %w", err)
	}
	view, err := client.view(ctx, http.MethodPost, "/game", map[string]any{"names": generateNames(rng, config.Players)})
	if err != nil {
		return stats, fmt.Errorf("start failed: %w", err)
	}
	if !view.Started {
		return stats, ErrNotStarted
	}

	// Step 3: Poll the view concurrently while the game runs
	readCtx, stopReaders := context.WithCancel(ctx)
	var wg sync.WaitGroup
	var firstViolation atomic.Value
	for i := 0; i < config.Readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			readViews(readCtx, client, config.Players, stats, &firstViolation)
		}()
	}

	// Step 4: Drive the game
	want, playErr := play(ctx, client, rng, config, kinds, view, stats)

	stopReaders()
	wg.Wait()
	if playErr != nil {
		return stats, playErr
	}

	// Step 5: Verify the final state
	if err := verifyFinal(ctx, client, config.Players, want); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}
	if v := stats.Violations; v > 0 {
		return stats, fmt.Errorf("%d of %d polled views failed: %v", v, stats.ViewsChecked, firstViolation.Load())
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "simulation completed successfully")
	return stats, nil
}

// resetGame clears any game left on the service. A service that has not
// published its first view yet answers 503, so that is retried.
func resetGame(ctx context.Context, client *HTTPClient) error {
	view, err := client.game(ctx)
	for attempt := 0; attempt < readyAttempts; attempt++ {
		var se *StatusError
		if !errors.As(err, &se) || se.Status != http.StatusServiceUnavailable {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readerInterval):
		}
		view, err = client.game(ctx)
	}
	if err != nil {
		return err
	}
	if !view.Started {
		return nil
	}
	if !view.ConfirmReset {
		if _, err := client.view(ctx, http.MethodPost, "/game/reset/confirm", nil); err != nil {
			return err
		}
	}
	view, err = client.view(ctx, http.MethodPost, "/game/reset", nil)
	if err != nil {
		return err
	}
	if view.Started {
		return errors.New("game still started after reset")
	}
	return nil
}

// play runs the clock for config.Seconds while sending actions, then pauses.
func play(ctx context.Context, client *HTTPClient, rng *rand.Rand, config *Config, kinds []types.KindView, view types.GameView, stats *Stats) (expected, error) {
	log := logger.Get().Named("gamesim")
	var want expected

	if _, err := client.view(ctx, http.MethodPost, "/clock/start", nil); err != nil {
		return want, fmt.Errorf("clock start failed: %w", err)
	}

	deadline := time.Now().Add(time.Duration(config.Seconds) * time.Second)
	ticker := time.NewTicker(actionInterval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return want, ctx.Err()
		case <-ticker.C:
		}

		a := nextAction(rng, view, kinds)
		before := view
		key := uuid.NewString()
		next, err := client.keyed(ctx, a.method, a.path, key, a.body)
		stats.Actions++
		if err != nil {
			stats.Failed++
			log.Warn(ctx, "action failed", logger.String("action", a.name), logger.Error(err))
			continue
		}
		log.Debug(ctx, "action", logger.String("action", a.name), logger.Any("version", next.Version))

		if a.logs && next.EventCount > before.EventCount {
			stats.EventsLogged++
			want.events = next.EventCount
			switch a.team {
			case "us":
				want.score.Us += a.points
			case "them":
				want.score.Them += a.points
			}

			// A retried tap must not log the play twice.
			again, err := client.keyed(ctx, a.method, a.path, key, a.body)
			if err != nil {
				stats.Failed++
				log.Warn(ctx, "replay failed", logger.String("action", a.name), logger.Error(err))
			} else if err := verifyReplay(next, again); err != nil {
				return want, fmt.Errorf("%s: %w", a.name, err)
			} else {
				stats.Replays++
			}
		}
		if a.path == "/substitutions" {
			stats.Substitutions++
			stats.PlayersMoved += len(before.PendingIn) + countStatus(before.OnCourt, "pending_out")
		}
		view = next
	}

	if _, err := client.view(ctx, http.MethodPost, "/clock/pause", nil); err != nil {
		return want, fmt.Errorf("clock pause failed: %w", err)
	}
	return want, nil
}

// readViews polls /game and checks every view it sees.
func readViews(ctx context.Context, client *HTTPClient, players int, stats *Stats, first *atomic.Value) {
	ticker := time.NewTicker(readerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		view, err := client.game(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		atomic.AddInt64(&stats.ViewsChecked, 1)
		if err := verifyPartition(view, players); err != nil {
			atomic.AddInt64(&stats.Violations, 1)
			first.CompareAndSwap(nil, err.Error())
		}
	}
}

// verifyFinal reads the paused game twice and checks it.
func verifyFinal(ctx context.Context, client *HTTPClient, players int, want expected) error {
	view, err := client.game(ctx)
	if err != nil {
		return err
	}
	if view.GameClock.Running {
		return errors.New("game clock still running after pause")
	}
	if err := verifyPartition(view, players); err != nil {
		return err
	}

	first, err := client.stats(ctx)
	if err != nil {
		return err
	}
	second, err := client.stats(ctx)
	if err != nil {
		return err
	}
	if err := verifyIdempotent(first, second); err != nil {
		return err
	}
	if err := verifyScore(view, first, want); err != nil {
		return err
	}

	events, err := client.events(ctx)
	if err != nil {
		return err
	}
	return verifyEvents(view, events)
}

func countStatus(ps []types.PlayerView, status string) int {
	n := 0
	for _, p := range ps {
		if p.Status == status {
			n++
		}
	}
	return n
}

// displayFinalStats logs the final simulation statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("actions", stats.Actions),
		logger.Int("failed", stats.Failed),
		logger.Int("substitutions", stats.Substitutions),
		logger.Int("playersMoved", stats.PlayersMoved),
		logger.Int("eventsLogged", stats.EventsLogged),
		logger.Int("replays", stats.Replays),
		logger.Any("viewsChecked", stats.ViewsChecked),
		logger.String("duration", stats.Duration.String()))
}
