package gamesim

import (
	"time"

	"github.com/okian/benchcoach/internal/domain/types"
)

// Config holds configuration for a simulated game.
type Config struct {
	BaseURL string        // Base URL of the service
	Players int           // Roster size
	Seconds int           // Wall seconds to keep the game clock running
	Readers int           // Concurrent view pollers
	Seed    uint64        // Action seed; 0 picks one
	Timeout time.Duration // HTTP request timeout
	LogFile string        // Log file for simulator output
	Verbose bool          // Log every action
}

// Stats holds simulation statistics.
type Stats struct {
	Actions       int
	Failed        int
	Substitutions int
	PlayersMoved  int
	EventsLogged  int
	Replays       int
	ViewsChecked  int64
	Violations    int64
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// expected is the score the simulator predicts from what it logged.
type expected struct {
	score  types.ScoreView
	events int
}
