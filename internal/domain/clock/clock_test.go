package clock

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStopwatch(t *testing.T) {
	Convey("Given a new stopwatch", t, func() {
		sw := NewStopwatch()

		Convey("Then it is stopped at zero", func() {
			So(sw.Seconds(), ShouldEqual, 0)
			So(sw.Running(), ShouldBeFalse)
		})

		Convey("When advanced while stopped", func() {
			So(sw.Advance(), ShouldBeFalse)

			Convey("Then no time passes", func() {
				So(sw.Seconds(), ShouldEqual, 0)
			})
		})

		Convey("When started and advanced three times", func() {
			sw.Start()
			sw.Advance()
			sw.Advance()
			sw.Advance()

			Convey("Then it reads three seconds", func() {
				So(sw.Seconds(), ShouldEqual, 3)
			})

			Convey("And pausing stops accrual at the boundary", func() {
				sw.Pause()
				So(sw.Advance(), ShouldBeFalse)
				So(sw.Seconds(), ShouldEqual, 3)
			})

			Convey("And reset without zeroing keeps the elapsed time", func() {
				sw.Reset(false)
				So(sw.Running(), ShouldBeFalse)
				So(sw.Seconds(), ShouldEqual, 3)
			})

			Convey("And reset to zero rewinds", func() {
				sw.Reset(true)
				So(sw.Seconds(), ShouldEqual, 0)
			})
		})

		Convey("When restarted with an offset", func() {
			sw.Start()
			sw.Restart(90)
			So(sw.Seconds(), ShouldEqual, 90)
			So(sw.Running(), ShouldBeFalse)
		})
	})
}

func TestCountdown(t *testing.T) {
	Convey("Given a countdown of two seconds", t, func() {
		cd := NewCountdown(2)

		Convey("Then it is stopped with the full duration", func() {
			So(cd.Seconds(), ShouldEqual, 2)
			So(cd.Duration(), ShouldEqual, 2)
			So(cd.Running(), ShouldBeFalse)
		})

		Convey("When it runs out", func() {
			cd.Start()
			cd.Advance()
			cd.Advance()

			Convey("Then it stops at zero and is expired", func() {
				So(cd.Seconds(), ShouldEqual, 0)
				So(cd.Running(), ShouldBeFalse)
				So(cd.Expired(), ShouldBeTrue)
				So(cd.Advance(), ShouldBeFalse)
			})

			Convey("And starting again keeps it stopped", func() {
				cd.Start()
				So(cd.Running(), ShouldBeFalse)
			})

			Convey("And reset to zero reloads the duration", func() {
				cd.Reset(true)
				So(cd.Seconds(), ShouldEqual, 2)
				So(cd.Expired(), ShouldBeFalse)
			})
		})

		Convey("When restarted with an explicit duration", func() {
			cd.Start()
			cd.Restart(120)
			So(cd.Seconds(), ShouldEqual, 120)
			So(cd.Duration(), ShouldEqual, 120)
			So(cd.Running(), ShouldBeFalse)
		})

		Convey("When restarted with a negative duration", func() {
			cd.Restart(-5)
			So(cd.Seconds(), ShouldEqual, 0)
			So(cd.Expired(), ShouldBeFalse)
		})
	})
}

func TestSourceContract(t *testing.T) {
	Convey("Both clocks satisfy Source", t, func() {
		var sources = []Source{NewStopwatch(), NewCountdown(10)}
		for _, s := range sources {
			s.Start()
			So(s.Running(), ShouldBeTrue)
			So(s.Advance(), ShouldBeTrue)
		}
	})
}

func TestMinSec(t *testing.T) {
	Convey("MinSec splits seconds", t, func() {
		m, s := MinSec(125)
		So(m, ShouldEqual, 2)
		So(s, ShouldEqual, 5)
	})
}
