// Package eventlog records plays against the game clock and keeps the team
// score counters in step with them.
package eventlog

import (
	"strings"

	"github.com/okian/benchcoach/internal/domain/model"
)

// Log is an append-only play log, newest first. It also owns the armed event
// kind: the one selection a coach makes before clicking a subject.
//
// Log is not safe for concurrent use; the game's single writer owns it.
type Log struct {
	events []model.Event
	score  model.Score
	armed  model.EventKind
	seq    int
}

// New returns an empty log with no kind armed.
func New() *Log {
	return &Log{}
}

// Select arms kind. Selecting the armed kind again disarms it. Unknown kinds
// are ignored.
func (l *Log) Select(kind model.EventKind) {
	if !kind.Valid() {
		return
	}
	if l.armed == kind {
		l.armed = ""
		return
	}
	l.armed = kind
}

// Clear disarms any selection.
func (l *Log) Clear() { l.armed = "" }

// Armed returns the armed kind, if any.
func (l *Log) Armed() (model.EventKind, bool) {
	return l.armed, l.armed != ""
}

// LogArmed logs the armed kind for subject and disarms it. With nothing armed
// it does nothing.
func (l *Log) LogArmed(subject string, elapsed int) (model.Event, bool) {
	kind, ok := l.Armed()
	if !ok {
		return model.Event{}, false
	}
	return l.Log(kind, subject, elapsed)
}

// Log appends an event of kind for subject at elapsed seconds and disarms
// any selection. Team-only kinds drop the subject. Scoring kinds credited to
// "us" or "them" add their points to that team.
func (l *Log) Log(kind model.EventKind, subject string, elapsed int) (model.Event, bool) {
	if !kind.Valid() {
		return model.Event{}, false
	}
	l.armed = ""

	subject = strings.TrimSpace(subject)
	if kind.TeamOnly() {
		subject = ""
	}

	l.seq++
	e := model.Event{
		Seq:              l.seq,
		Subject:          subject,
		Kind:             kind,
		TimestampSeconds: elapsed,
		Message:          Message(kind, subject),
	}

	switch subject {
	case model.SubjectUs:
		l.score.Us += kind.Points()
	case model.SubjectThem:
		l.score.Them += kind.Points()
	}

	events := make([]model.Event, 0, len(l.events)+1)
	events = append(events, e)
	l.events = append(events, l.events...)
	return e, true
}

// Events returns the log newest first.
func (l *Log) Events() []model.Event {
	out := make([]model.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Chronological returns the log oldest first.
func (l *Log) Chronological() []model.Event {
	n := len(l.events)
	out := make([]model.Event, n)
	for i, e := range l.events {
		out[n-1-i] = e
	}
	return out
}

// Len returns the number of logged events.
func (l *Log) Len() int { return len(l.events) }

// Score returns the team counters.
func (l *Log) Score() model.Score { return l.score }

// Message renders the description of a play.
func Message(kind model.EventKind, subject string) string {
	switch subject {
	case "":
		return kind.Phrase()
	case model.SubjectUs:
		return "We " + kind.Phrase()
	case model.SubjectThem:
		return "They " + kind.Phrase()
	default:
		return subject + " " + kind.Phrase()
	}
}
