package roster_test

import (
	"fmt"
	"testing"

	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func newFactory() *roster.Factory {
	n := 0
	return roster.NewFactory(
		roster.WithShuffler(roster.NoShuffle),
		roster.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("p%d", n)
		}),
	)
}

func names(players []model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func status(r roster.Roster, ref string) model.Status {
	p, ok := r.Find(ref)
	So(ok, ShouldBeTrue)
	return p.Status
}

func TestRosterTransitions(t *testing.T) {
	Convey("Given a fresh roster of A, B, C", t, func() {
		r := newFactory().Reset([]string{"A", "B", "C"})

		Convey("Then everyone starts on the bench with zero seconds", func() {
			So(names(r.Bench()), ShouldResemble, []string{"A", "B", "C"})
			for _, p := range r.Players() {
				So(p.SecondsPlayed, ShouldEqual, 0)
				So(p.CourtEnteredAt, ShouldBeNil)
				So(p.BenchEnteredAt, ShouldBeNil)
			}
		})

		Convey("When A is marked going in", func() {
			next := r.MarkGoingIn("A")

			Convey("Then A is pending in and the old roster is untouched", func() {
				So(status(next, "A"), ShouldEqual, model.StatusPendingIn)
				So(status(r, "A"), ShouldEqual, model.StatusBench)
				So(names(next.PendingIn()), ShouldResemble, []string{"A"})
				So(names(next.Bench()), ShouldResemble, []string{"B", "C"})
			})

			Convey("And unmarking returns A to the bench", func() {
				So(status(next.UnmarkGoingIn("A"), "A"), ShouldEqual, model.StatusBench)
			})

			Convey("And marking again is a no-op", func() {
				So(next.MarkGoingIn("A"), ShouldResemble, next)
			})

			Convey("And toggling coming out on a pending-in player is a no-op", func() {
				So(next.ToggleComingOut("A"), ShouldResemble, next)
			})
		})

		Convey("When several players are marked at once", func() {
			next := r.MarkGoingIn("A").MarkGoingIn("B").MarkGoingIn("C")

			Convey("Then all are pending with no cap", func() {
				So(len(next.PendingIn()), ShouldEqual, 3)
			})
		})

		Convey("When an unknown player is referenced", func() {
			So(r.MarkGoingIn("Z"), ShouldResemble, r)
			So(r.UnmarkGoingIn("Z"), ShouldResemble, r)
			So(r.ToggleComingOut("Z"), ShouldResemble, r)
		})

		Convey("When players are referenced by id", func() {
			next := r.MarkGoingIn("p2")
			So(status(next, "B"), ShouldEqual, model.StatusPendingIn)
		})
	})
}

func TestSubstitute(t *testing.T) {
	Convey("Given A marked going in", t, func() {
		r := newFactory().Reset([]string{"A", "B", "C"}).MarkGoingIn("A")

		Convey("When substitute runs at elapsed 10", func() {
			after, moved := r.Substitute(10)

			Convey("Then A is on court with courtEnteredAt 10", func() {
				So(moved, ShouldEqual, 1)
				a, _ := after.Find("A")
				So(a.Status, ShouldEqual, model.StatusOnCourt)
				So(*a.CourtEnteredAt, ShouldEqual, 10)
				So(names(after.OnCourt()), ShouldResemble, []string{"A"})
				So(names(after.Bench()), ShouldResemble, []string{"B", "C"})
			})

			Convey("And the pre-substitute roster still shows A pending", func() {
				So(status(r, "A"), ShouldEqual, model.StatusPendingIn)
			})

			Convey("And a second substitute with nothing pending changes nothing", func() {
				again, movedAgain := after.Substitute(25)
				So(movedAgain, ShouldEqual, 0)
				So(again, ShouldResemble, after)
			})

			Convey("And A comes out at elapsed 40", func() {
				out, _ := after.ToggleComingOut("A").Substitute(40)

				Convey("Then the bench lists never-benched players before A", func() {
					So(names(out.Bench()), ShouldResemble, []string{"B", "C", "A"})
					a, _ := out.Find("A")
					So(*a.BenchEnteredAt, ShouldEqual, 40)
					So(out.OnCourt(), ShouldBeEmpty)
				})
			})

			Convey("And toggling coming out twice leaves A on court", func() {
				back := after.ToggleComingOut("A").ToggleComingOut("A")
				So(status(back, "A"), ShouldEqual, model.StatusOnCourt)
			})
		})
	})

	Convey("Given a mixed swap of ins and outs", t, func() {
		r := newFactory().Reset([]string{"A", "B", "C", "D"})
		r, _ = r.MarkGoingIn("A").MarkGoingIn("B").Substitute(5)
		r = r.ToggleComingOut("A").MarkGoingIn("C").MarkGoingIn("D")

		Convey("When substitute commits", func() {
			after, moved := r.Substitute(30)

			Convey("Then every pending player moved in one pass", func() {
				So(moved, ShouldEqual, 3)
				So(names(after.OnCourt()), ShouldResemble, []string{"B", "C", "D"})
				So(names(after.Bench()), ShouldResemble, []string{"A"})
				So(after.PendingIn(), ShouldBeEmpty)
			})
		})
	})
}

func TestTick(t *testing.T) {
	Convey("Given four players, one in each status", t, func() {
		r := newFactory().Reset([]string{"Bench", "PendingIn", "OnCourt", "PendingOut"})
		r, _ = r.MarkGoingIn("OnCourt").MarkGoingIn("PendingOut").Substitute(0)
		r = r.MarkGoingIn("PendingIn").ToggleComingOut("PendingOut")

		So(status(r, "Bench"), ShouldEqual, model.StatusBench)
		So(status(r, "PendingIn"), ShouldEqual, model.StatusPendingIn)
		So(status(r, "OnCourt"), ShouldEqual, model.StatusOnCourt)
		So(status(r, "PendingOut"), ShouldEqual, model.StatusPendingOut)

		Convey("When one tick passes", func() {
			after := r.Tick()

			Convey("Then only the on-court and pending-out counters change", func() {
				changed := 0
				for i, p := range after.Players() {
					if p.SecondsPlayed != r.Players()[i].SecondsPlayed {
						changed++
					}
				}
				So(changed, ShouldEqual, 2)
				p, _ := after.Find("OnCourt")
				So(p.SecondsPlayed, ShouldEqual, 1)
				p, _ = after.Find("PendingOut")
				So(p.SecondsPlayed, ShouldEqual, 1)
				p, _ = after.Find("Bench")
				So(p.SecondsPlayed, ShouldEqual, 0)
				p, _ = after.Find("PendingIn")
				So(p.SecondsPlayed, ShouldEqual, 0)
			})
		})

		Convey("Then each player appears in exactly one list", func() {
			seen := map[string]int{}
			for _, list := range [][]model.Player{r.OnCourt(), r.PendingIn(), r.Bench()} {
				for _, p := range list {
					seen[p.Name]++
				}
			}
			So(len(seen), ShouldEqual, 4)
			for _, n := range seen {
				So(n, ShouldEqual, 1)
			}
		})

		Convey("Then the pending-first ordering puts PendingOut ahead", func() {
			So(names(r.OnCourtPendingFirst()), ShouldResemble, []string{"PendingOut", "OnCourt"})
			So(names(r.OnCourt()), ShouldResemble, []string{"OnCourt", "PendingOut"})
		})

		Convey("Then counts cover every status", func() {
			counts := r.Counts()
			So(counts[model.StatusBench], ShouldEqual, 1)
			So(counts[model.StatusPendingIn], ShouldEqual, 1)
			So(counts[model.StatusOnCourt], ShouldEqual, 1)
			So(counts[model.StatusPendingOut], ShouldEqual, 1)
		})
	})

	Convey("Given nobody on court", t, func() {
		r := newFactory().Reset([]string{"A"})
		So(r.Tick(), ShouldResemble, r)
	})
}

func TestOrdering(t *testing.T) {
	Convey("Given players entering the court at different times", t, func() {
		r := newFactory().Reset([]string{"A", "B", "C"})
		r, _ = r.MarkGoingIn("C").Substitute(0)
		r, _ = r.MarkGoingIn("A").Substitute(20)
		r, _ = r.MarkGoingIn("B").Substitute(20)

		Convey("Then on-court is ascending by entry with roster order on ties", func() {
			So(names(r.OnCourt()), ShouldResemble, []string{"C", "A", "B"})
		})

		Convey("And the stint counts from the last entry", func() {
			a, _ := r.Find("A")
			So(roster.StintSeconds(a, 50), ShouldEqual, 30)
		})
	})
}

func TestFactory(t *testing.T) {
	Convey("Given raw roster input", t, func() {
		Convey("When names need trimming and contain duplicates", func() {
			r := newFactory().Reset([]string{" Noah ", "", "Luke", "Noah", "  "})

			Convey("Then blanks are dropped and repeats get a suffix", func() {
				So(names(r.Players()), ShouldResemble, []string{"Noah", "Luke", "Noah (2)"})
			})

			Convey("And each player has a distinct id", func() {
				ids := map[string]bool{}
				for _, p := range r.Players() {
					ids[p.ID] = true
				}
				So(len(ids), ShouldEqual, 3)
			})
		})

		Convey("When names read as team subjects", func() {
			r := newFactory().Reset([]string{"us", "Them", "TEAM", "Us"})

			Convey("Then each one gets a suffix", func() {
				So(names(r.Players()), ShouldResemble, []string{"us (2)", "Them (2)", "TEAM (2)", "Us (2)"})
			})
		})

		Convey("When parsing textarea text", func() {
			So(roster.ParseNames("A\n  B \n\nC\n"), ShouldResemble, []string{"A", "B", "C"})
		})

		Convey("When two factories share a seed", func() {
			in := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
			a := roster.NewFactory(roster.WithSeed(7)).Reset(in)
			b := roster.NewFactory(roster.WithSeed(7)).Reset(in)

			Convey("Then they shuffle identically and keep the input intact", func() {
				So(names(a.Players()), ShouldResemble, names(b.Players()))
				So(in[0], ShouldEqual, "A")
			})
		})

		Convey("When using the default factory", func() {
			r := roster.NewFactory().Reset([]string{"A", "B"})
			So(r.Len(), ShouldEqual, 2)
			So(r.Players()[0].ID, ShouldNotEqual, r.Players()[1].ID)
		})

		Convey("When the list is empty", func() {
			So(newFactory().Reset(nil).Empty(), ShouldBeTrue)
		})
	})
}
