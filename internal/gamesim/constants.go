package gamesim

import "time"

// Runner configuration constants.
const (
	actionInterval  = 100 * time.Millisecond
	readerInterval  = 20 * time.Millisecond
	minPlayers      = 5
	courtSize       = 5
	shotClockAdjust = 1
	readyAttempts   = 50
)
