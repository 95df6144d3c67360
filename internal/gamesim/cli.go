package gamesim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/okian/benchcoach/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to the console and, when logFile is set, a file.
func SetupLogging(logFile string, verbose bool) error {
	out := io.Writer(os.Stdout)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return nil
}

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Bench Coach Game Simulator
==========================

Plays a randomized game against a running service while concurrent readers
poll the game view, then checks what came back.

Checks:
  * every player is in exactly one of on_court, pending_in, bench
  * the score matches the us/them points the simulator logged
  * /stats reports consistent totals and is identical when read twice

Usage:
  go run ./cmd/game-sim [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -players int
        Roster size (default 10)
  -seconds int
        Wall seconds to keep the game clock running (default 10)
  -readers int
        Concurrent view pollers (default 4)
  -seed uint
        Action seed, 0 picks one (default 0)
  -timeout duration
        HTTP request timeout (default 5s)
  -log string
        Also write output to this file
  -verbose
        Log every action
  -help
        Show this help message

Examples:
  # A quick game against a local service
  go run ./cmd/game-sim

  # A longer, reproducible game
  go run ./cmd/game-sim -seconds 60 -players 12 -seed 42 -verbose
`)
}
