package model

import "time"

// CommandKind names one mutating operation on the game.
type CommandKind string

// Command kinds accepted by the writer.
const (
	CmdStartGame          CommandKind = "start_game"
	CmdMarkGoingIn        CommandKind = "mark_going_in"
	CmdUnmarkGoingIn      CommandKind = "unmark_going_in"
	CmdToggleComingOut    CommandKind = "toggle_coming_out"
	CmdSubstitute         CommandKind = "substitute"
	CmdTick               CommandKind = "tick"
	CmdStartClock         CommandKind = "start_clock"
	CmdPauseClock         CommandKind = "pause_clock"
	CmdAdjustShotClock    CommandKind = "adjust_shot_clock"
	CmdResetShotClock     CommandKind = "reset_shot_clock"
	CmdSelectKind         CommandKind = "select_kind"
	CmdClearKind          CommandKind = "clear_kind"
	CmdLogEvent           CommandKind = "log_event"
	CmdToggleConfirmReset CommandKind = "toggle_confirm_reset"
	CmdReset              CommandKind = "reset"
)

// Command is a request to mutate the game, applied by the single writer.
// Only the fields relevant to Kind are read.
type Command struct {
	ID      string
	Key     string // client idempotency key; a repeated key is not applied again
	Kind    CommandKind
	Ref     string    // player id or name
	Names   []string  // roster names for CmdStartGame
	Event   EventKind // kind for CmdSelectKind, or explicit kind for CmdLogEvent
	Subject string    // subject for CmdLogEvent
	Steps   int       // shot clock adjustment steps, may be negative
	At      time.Time // enqueue time, for latency metrics
}
