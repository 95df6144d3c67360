package eventlog_test

import (
	"testing"

	"github.com/okian/benchcoach/internal/domain/eventlog"
	"github.com/okian/benchcoach/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestArmedSelection(t *testing.T) {
	Convey("Given an empty log", t, func() {
		l := eventlog.New()

		Convey("When nothing is armed", func() {
			_, ok := l.LogArmed("A", 5)

			Convey("Then logging is a no-op", func() {
				So(ok, ShouldBeFalse)
				So(l.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a kind is selected", func() {
			l.Select(model.KindGoodPass)
			kind, ok := l.Armed()
			So(ok, ShouldBeTrue)
			So(kind, ShouldEqual, model.KindGoodPass)

			Convey("And selected again", func() {
				l.Select(model.KindGoodPass)

				Convey("Then it is disarmed", func() {
					_, ok := l.Armed()
					So(ok, ShouldBeFalse)
				})
			})

			Convey("And another kind is selected", func() {
				l.Select(model.KindHussle)
				kind, _ := l.Armed()
				So(kind, ShouldEqual, model.KindHussle)
			})

			Convey("And a subject is clicked", func() {
				e, ok := l.LogArmed("A", 12)

				Convey("Then one event is logged and the selection is consumed", func() {
					So(ok, ShouldBeTrue)
					So(e.Subject, ShouldEqual, "A")
					So(e.Kind, ShouldEqual, model.KindGoodPass)
					So(e.TimestampSeconds, ShouldEqual, 12)
					So(e.Message, ShouldEqual, "A made a good pass")
					_, armed := l.Armed()
					So(armed, ShouldBeFalse)

					_, again := l.LogArmed("A", 13)
					So(again, ShouldBeFalse)
					So(l.Len(), ShouldEqual, 1)
				})
			})

			Convey("And it is cleared", func() {
				l.Clear()
				_, ok := l.Armed()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When an unknown kind is selected", func() {
			l.Select("Dunk")
			_, ok := l.Armed()
			So(ok, ShouldBeFalse)
		})
	})
}

func TestTeamScore(t *testing.T) {
	Convey("Given an empty log", t, func() {
		l := eventlog.New()

		Convey("When a 2pt make is logged for us", func() {
			e, _ := l.Log(model.KindTwo, "us", 30)

			Convey("Then our score rises by exactly 2 and theirs is unchanged", func() {
				So(l.Score(), ShouldResemble, model.Score{Us: 2, Them: 0})
				So(e.Message, ShouldEqual, "We made a 2pt basket")
			})
		})

		Convey("When a 3pt make is logged for them", func() {
			e, _ := l.Log(model.KindThree, "them", 31)
			So(l.Score(), ShouldResemble, model.Score{Us: 0, Them: 3})
			So(e.Message, ShouldEqual, "They made a 3 pointer")
		})

		Convey("When a player scores", func() {
			l.Log(model.KindFreeThrow, "A", 32)

			Convey("Then the team counters are untouched", func() {
				So(l.Score(), ShouldResemble, model.Score{})
			})
		})

		Convey("When a team-only kind is logged with a subject", func() {
			e, ok := l.Log(model.KindTurnover, "us", 40)

			Convey("Then the subject is cleared and no score moves", func() {
				So(ok, ShouldBeTrue)
				So(e.Subject, ShouldEqual, "")
				So(e.Message, ShouldEqual, "Turned the ball over")
				So(l.Score(), ShouldResemble, model.Score{})
			})
		})

		Convey("When an unknown kind is logged", func() {
			_, ok := l.Log("Dunk", "us", 1)
			So(ok, ShouldBeFalse)
			So(l.Len(), ShouldEqual, 0)
		})
	})
}

func TestOrdering(t *testing.T) {
	Convey("Given three logged events", t, func() {
		l := eventlog.New()
		l.Log(model.KindGoodShot, "A", 1)
		l.Log(model.KindGoodDef, "B", 2)
		l.Log(model.KindOpenShot, "", 3)

		Convey("Then Events is newest first", func() {
			events := l.Events()
			So(events[0].TimestampSeconds, ShouldEqual, 3)
			So(events[2].TimestampSeconds, ShouldEqual, 1)
			So(events[0].Seq, ShouldEqual, 3)
		})

		Convey("Then Chronological is oldest first", func() {
			events := l.Chronological()
			So(events[0].Subject, ShouldEqual, "A")
			So(events[2].Kind, ShouldEqual, model.KindOpenShot)
		})

		Convey("Then callers cannot rewrite history", func() {
			events := l.Events()
			events[0].Message = "edited"
			So(l.Events()[0].Message, ShouldEqual, "Defense gave up an open shot")
		})
	})
}
