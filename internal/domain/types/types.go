// Package types contains the read shapes handed to the view layer.
package types

// PlayerView is one player as displayed in a roster list.
type PlayerView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	SecondsPlayed  int    `json:"seconds_played"`
	StintSeconds   int    `json:"stint_seconds"`
	CourtEnteredAt *int   `json:"court_entered_at,omitempty"`
	BenchEnteredAt *int   `json:"bench_entered_at,omitempty"`
}

// ClockView is a clock reading.
type ClockView struct {
	Seconds  int    `json:"seconds"`
	Display  string `json:"display"`
	Running  bool   `json:"running"`
	Duration int    `json:"duration,omitempty"`
	Expired  bool   `json:"expired,omitempty"`
}

// ScoreView holds the team counters.
type ScoreView struct {
	Us   int `json:"us"`
	Them int `json:"them"`
}

// GameView is the complete state a view layer renders after a mutation.
type GameView struct {
	Version      uint64       `json:"version"`
	Started      bool         `json:"started"`
	OnCourt      []PlayerView `json:"on_court"`
	PendingIn    []PlayerView `json:"pending_in"`
	Bench        []PlayerView `json:"bench"`
	GameClock    ClockView    `json:"game_clock"`
	ShotClock    ClockView    `json:"shot_clock"`
	Score        ScoreView    `json:"score"`
	Armed        string       `json:"armed,omitempty"`
	ConfirmReset bool         `json:"confirm_reset"`
	EventCount   int          `json:"event_count"`
}

// EventView is one logged play.
type EventView struct {
	Seq              int    `json:"seq"`
	Subject          string `json:"subject,omitempty"`
	Kind             string `json:"kind"`
	TimestampSeconds int    `json:"timestamp_seconds"`
	Message          string `json:"message"`
}

// PlayerStats is one row of the per-player stats table.
type PlayerStats struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	SecondsPlayed int            `json:"seconds_played"`
	PlayingTime   string         `json:"playing_time"`
	Points        int            `json:"points"`
	Counts        map[string]int `json:"counts"`
}

// TeamStats is one row of the team stats table.
type TeamStats struct {
	Subject string         `json:"subject"`
	Points  int            `json:"points"`
	Counts  map[string]int `json:"counts"`
}

// StatsView is the stats screen.
type StatsView struct {
	Version    uint64        `json:"version"`
	Players    []PlayerStats `json:"players"`
	Teams      []TeamStats   `json:"teams"`
	Score      ScoreView     `json:"score"`
	Timeline   []string      `json:"timeline"`
	Consistent bool          `json:"consistent"`
}

// KindView describes one event kind for building event buttons.
type KindView struct {
	Kind     string `json:"kind"`
	Phrase   string `json:"phrase"`
	Category string `json:"category"`
	Points   int    `json:"points,omitempty"`
	TeamOnly bool   `json:"team_only,omitempty"`
}

// Preset is a named roster list offered on the start screen.
type Preset struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}
