package gamesim

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchcoach/internal/adapters/http/api"
	service "github.com/okian/benchcoach/internal/app"
	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func player(id, status string) types.PlayerView {
	return types.PlayerView{ID: id, Name: "P" + id, Status: status}
}

var testKinds = []types.KindView{
	{Kind: "2pt", Points: 2},
	{Kind: "Rebound"},
	{Kind: "Turnover", TeamOnly: true},
}

func TestGenerateNames(t *testing.T) {
	convey.Convey("Given a seeded generator", t, func() {
		names := generateNames(rand.New(rand.NewPCG(1, 1)), 30)
		again := generateNames(rand.New(rand.NewPCG(1, 1)), 30)

		convey.Convey("Then it should return the requested count deterministically", func() {
			convey.So(names, convey.ShouldHaveLength, 30)
			convey.So(names, convey.ShouldResemble, again)
		})

		convey.Convey("Then names should repeat only after the pool runs out", func() {
			seen := map[string]bool{}
			for _, n := range names[:len(firstNames)] {
				convey.So(seen[n], convey.ShouldBeFalse)
				seen[n] = true
			}
			convey.So(names[len(firstNames)], convey.ShouldEqual, names[0])
		})
	})
}

func TestNextAction(t *testing.T) {
	convey.Convey("Given a fresh game with everyone on the bench", t, func() {
		view := types.GameView{Started: true}
		for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
			view.Bench = append(view.Bench, player(id, "bench"))
		}
		rng := rand.New(rand.NewPCG(2, 2))

		convey.Convey("Then the next action should send someone in", func() {
			a := nextAction(rng, view, testKinds)
			convey.So(a.method, convey.ShouldEqual, http.MethodPost)
			convey.So(a.path, convey.ShouldEndWith, "/going-in")
		})
	})

	convey.Convey("Given a full court", t, func() {
		view := types.GameView{Started: true}
		for _, id := range []string{"1", "2", "3", "4", "5"} {
			view.OnCourt = append(view.OnCourt, player(id, "on_court"))
		}
		view.Bench = []types.PlayerView{player("6", "bench")}
		rng := rand.New(rand.NewPCG(3, 3))

		convey.Convey("Then scoring plays should only be predicted for real team subjects", func() {
			for i := 0; i < 200; i++ {
				a := nextAction(rng, view, testKinds)
				if a.team != "" {
					convey.So(a.team, convey.ShouldBeIn, "us", "them")
					convey.So(a.logs, convey.ShouldBeTrue)
				}
				if a.points > 0 {
					convey.So(a.points, convey.ShouldEqual, 2)
				}
			}
		})
	})

	convey.Convey("Given a team-only armed kind", t, func() {
		a := teamPlay(rand.New(rand.NewPCG(4, 4)), "Turnover", testKinds, "")

		convey.Convey("Then no score change should be expected", func() {
			convey.So(a.team, convey.ShouldBeEmpty)
			convey.So(a.points, convey.ShouldEqual, 0)
			convey.So(a.logs, convey.ShouldBeTrue)
		})
	})
}

func TestVerifyPartition(t *testing.T) {
	convey.Convey("Given views of a three player roster", t, func() {
		good := types.GameView{
			Started:   true,
			OnCourt:   []types.PlayerView{player("1", "on_court"), player("2", "pending_out")},
			PendingIn: []types.PlayerView{player("3", "pending_in")},
		}

		convey.Convey("Then a proper partition should pass", func() {
			convey.So(verifyPartition(good, 3), convey.ShouldBeNil)
		})

		convey.Convey("Then a player listed twice should fail", func() {
			bad := good
			bad.Bench = []types.PlayerView{player("1", "bench")}
			convey.So(errors.Is(verifyPartition(bad, 3), ErrPartition), convey.ShouldBeTrue)
		})

		convey.Convey("Then a missing player should fail", func() {
			convey.So(errors.Is(verifyPartition(good, 4), ErrPartition), convey.ShouldBeTrue)
		})

		convey.Convey("Then a status in the wrong list should fail", func() {
			bad := good
			bad.PendingIn = []types.PlayerView{player("3", "bench")}
			convey.So(errors.Is(verifyPartition(bad, 3), ErrPartition), convey.ShouldBeTrue)
		})

		convey.Convey("Then an unstarted game should pass trivially", func() {
			convey.So(verifyPartition(types.GameView{}, 3), convey.ShouldBeNil)
		})
	})
}

func TestVerifyScore(t *testing.T) {
	convey.Convey("Given a view and matching stats", t, func() {
		view := types.GameView{Score: types.ScoreView{Us: 5, Them: 2}, EventCount: 4}
		stats := types.StatsView{Score: view.Score, Consistent: true}
		want := expected{score: view.Score, events: 4}

		convey.Convey("Then they should verify", func() {
			convey.So(verifyScore(view, stats, want), convey.ShouldBeNil)
			convey.So(verifyIdempotent(stats, stats), convey.ShouldBeNil)
		})

		convey.Convey("Then a score the simulator did not log should fail", func() {
			want.score.Us = 3
			convey.So(errors.Is(verifyScore(view, stats, want), ErrScore), convey.ShouldBeTrue)
		})

		convey.Convey("Then inconsistent stats should fail", func() {
			stats.Consistent = false
			convey.So(verifyScore(view, stats, want), convey.ShouldEqual, ErrInconsistent)
		})

		convey.Convey("Then differing reads should fail", func() {
			other := stats
			other.Version = 9
			convey.So(verifyIdempotent(stats, other), convey.ShouldEqual, ErrNotIdempotent)
		})
	})
}

func TestVerifyReplay(t *testing.T) {
	convey.Convey("Given the view after a logged play", t, func() {
		first := types.GameView{Version: 3, Score: types.ScoreView{Us: 2}, EventCount: 1}

		convey.Convey("Then a replay that only moved the clock should verify", func() {
			again := first
			again.Version = 4
			convey.So(verifyReplay(first, again), convey.ShouldBeNil)
		})

		convey.Convey("Then a replay that logged again should fail", func() {
			again := first
			again.EventCount = 2
			again.Score.Us = 4
			convey.So(errors.Is(verifyReplay(first, again), ErrReplayApplied), convey.ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc := service.New(
			service.WithTickInterval(20*time.Millisecond),
			service.WithShotClock(30),
			service.WithShuffleSeed(5),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		convey.Convey("When a short game is simulated", func() {
			stats, err := Run(ctx, &Config{
				BaseURL: srv.URL,
				Players: 8,
				Seconds: 1,
				Readers: 2,
				Seed:    42,
				Timeout: 5 * time.Second,
			})

			convey.Convey("Then every check should pass", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stats.Actions, convey.ShouldBeGreaterThan, 0)
				convey.So(stats.Violations, convey.ShouldEqual, int64(0))
				convey.So(stats.Replays, convey.ShouldEqual, stats.EventsLogged)
				convey.So(stats.ViewsChecked, convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When the roster is too small", func() {
			_, err := Run(ctx, &Config{BaseURL: srv.URL, Players: 2, Timeout: time.Second})

			convey.Convey("Then it should refuse to play", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
