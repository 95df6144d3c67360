package stats_test

import (
	"testing"

	"github.com/okian/benchcoach/internal/domain/eventlog"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/stats"
	"github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	convey.Convey("Given a roster and a log of plays", t, func() {
		players := []model.Player{
			{ID: "1", Name: "A", SecondsPlayed: 125},
			{ID: "2", Name: "B", SecondsPlayed: 60},
			{ID: "3", Name: "C"},
		}
		l := eventlog.New()
		l.Log(model.KindFreeThrow, "A", 10)
		l.Log(model.KindThree, "A", 20)
		l.Log(model.KindTwo, "A", 30)
		l.Log(model.KindGoodPass, "B", 40)
		l.Log(model.KindGoodPass, "B", 41)
		l.Log(model.KindTurnover, "B", 50)
		l.Log(model.KindTwo, "us", 60)
		l.Log(model.KindThree, "them", 70)

		snap := stats.Aggregate(players, l.Events(), l.Score())

		convey.Convey("Then player points weigh 1, 2 and 3 point makes", func() {
			a, ok := snap.Player("A")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(a.Points, convey.ShouldEqual, 6)
			convey.So(a.SecondsPlayed, convey.ShouldEqual, 125)
		})

		convey.Convey("Then kind counts come from the grouping", func() {
			b, _ := snap.Player("B")
			convey.So(b.Counts[model.KindGoodPass], convey.ShouldEqual, 2)
			convey.So(b.Counts[model.KindTurnover], convey.ShouldEqual, 0)
		})

		convey.Convey("Then a player with no events reads zero everywhere", func() {
			c, _ := snap.Player("3")
			convey.So(c.Points, convey.ShouldEqual, 0)
			convey.So(len(c.Counts), convey.ShouldEqual, len(model.Kinds()))
			for _, n := range c.Counts {
				convey.So(n, convey.ShouldEqual, 0)
			}
		})

		convey.Convey("Then team-only plays land in the anonymous team row", func() {
			team, ok := snap.Team(model.SubjectTeam)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(team.Counts[model.KindTurnover], convey.ShouldEqual, 1)
		})

		convey.Convey("Then team sentinels are keyed apart from players", func() {
			us, _ := snap.Team(model.SubjectUs)
			them, _ := snap.Team(model.SubjectThem)
			convey.So(us.Counts[model.KindTwo], convey.ShouldEqual, 1)
			convey.So(them.Counts[model.KindThree], convey.ShouldEqual, 1)
			convey.So(snap.Score, convey.ShouldResemble, model.Score{Us: 2, Them: 3})
			convey.So(snap.Consistent(), convey.ShouldBeTrue)
		})

		convey.Convey("Then the timeline is newest first", func() {
			convey.So(snap.Timeline[0], convey.ShouldEqual, "70s: They made a 3 pointer")
			convey.So(snap.Timeline[len(snap.Timeline)-1], convey.ShouldEqual, "10s: A made a free throw")
			convey.So(snap.Events, convey.ShouldEqual, 8)
		})

		convey.Convey("When aggregating twice with no mutation in between", func() {
			again := stats.Aggregate(players, l.Events(), l.Score())

			convey.Convey("Then the snapshots are equal", func() {
				convey.So(again, convey.ShouldResemble, snap)
			})
		})

		convey.Convey("When the counters drift from the log", func() {
			drifted := stats.Aggregate(players, l.Events(), model.Score{Us: 5})
			convey.So(drifted.Consistent(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given nothing at all", t, func() {
		snap := stats.Aggregate(nil, nil, model.Score{})
		convey.So(snap.Players, convey.ShouldBeEmpty)
		convey.So(len(snap.Teams), convey.ShouldEqual, 3)
		convey.So(snap.Consistent(), convey.ShouldBeTrue)
	})
}

func TestGroup(t *testing.T) {
	convey.Convey("Group buckets subjectless events under the team sentinel", t, func() {
		g := stats.Group([]model.Event{
			{Kind: model.KindOpenShot},
			{Kind: model.KindBadShot},
			{Subject: "A", Kind: model.KindSteal},
		})
		convey.So(g[model.SubjectTeam][model.KindOpenShot], convey.ShouldEqual, 1)
		convey.So(g[model.SubjectTeam][model.KindBadShot], convey.ShouldEqual, 1)
		convey.So(g["A"][model.KindSteal], convey.ShouldEqual, 1)
		convey.So(g[""], convey.ShouldBeNil)
	})
}
