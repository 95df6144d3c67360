package model

// Subject sentinels for team-level events.
const (
	SubjectUs   = "us"
	SubjectThem = "them"
	// SubjectTeam is the grouping key for events logged without a subject.
	SubjectTeam = "team"
)

// Event is one logged play. Events are immutable once appended to the log.
type Event struct {
	Seq              int // append order, 1-based
	Subject          string
	Kind             EventKind
	TimestampSeconds int
	Message          string
}

// Score holds the team counters. Both only ever grow during a game.
type Score struct {
	Us   int
	Them int
}
