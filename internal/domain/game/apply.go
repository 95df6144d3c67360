package game

import "github.com/okian/benchcoach/internal/domain/model"

// Outcome reports what a command did.
type Outcome struct {
	Changed bool
	Moved   int
	Ticked  bool
	Logged  *model.Event
}

// Apply runs one command against the game. Unknown commands are no-ops.
func (g *Game) Apply(cmd model.Command) Outcome {
	switch cmd.Kind {
	case model.CmdStartGame:
		return Outcome{Changed: g.Start(cmd.Names)}
	case model.CmdMarkGoingIn:
		return Outcome{Changed: g.MarkGoingIn(cmd.Ref)}
	case model.CmdUnmarkGoingIn:
		return Outcome{Changed: g.UnmarkGoingIn(cmd.Ref)}
	case model.CmdToggleComingOut:
		return Outcome{Changed: g.ToggleComingOut(cmd.Ref)}
	case model.CmdSubstitute:
		moved := g.Substitute()
		return Outcome{Changed: moved > 0, Moved: moved}
	case model.CmdTick:
		ok := g.Tick()
		return Outcome{Changed: ok, Ticked: ok}
	case model.CmdStartClock:
		return Outcome{Changed: g.StartClock()}
	case model.CmdPauseClock:
		return Outcome{Changed: g.PauseClock()}
	case model.CmdAdjustShotClock:
		return Outcome{Changed: g.AdjustShotClock(cmd.Steps)}
	case model.CmdResetShotClock:
		return Outcome{Changed: g.ResetShotClock()}
	case model.CmdSelectKind:
		return Outcome{Changed: g.SelectKind(cmd.Event)}
	case model.CmdClearKind:
		return Outcome{Changed: g.ClearKind()}
	case model.CmdLogEvent:
		e, ok := g.LogEvent(cmd.Event, cmd.Subject)
		if !ok {
			return Outcome{}
		}
		return Outcome{Changed: true, Logged: &e}
	case model.CmdToggleConfirmReset:
		return Outcome{Changed: g.ToggleConfirmReset()}
	case model.CmdReset:
		return Outcome{Changed: g.Reset()}
	}
	return Outcome{}
}
