package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/benchcoach/internal/gamesim"
)

// Default configuration constants.
const (
	defaultPlayers     = 10
	defaultSeconds     = 10
	defaultReaders     = 4
	defaultTimeout     = 5 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		players = flag.Int("players", defaultPlayers, "Roster size")
		seconds = flag.Int("seconds", defaultSeconds, "Wall seconds to keep the game clock running")
		readers = flag.Int("readers", defaultReaders, "Concurrent view pollers")
		seed    = flag.Uint64("seed", 0, "Action seed, 0 picks one")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Also write output to this file")
		verbose = flag.Bool("verbose", false, "Log every action")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		gamesim.ShowHelp()
		return
	}

	if err := gamesim.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &gamesim.Config{
		BaseURL: *baseURL,
		Players: *players,
		Seconds: *seconds,
		Readers: *readers,
		Seed:    *seed,
		Timeout: *timeout,
		LogFile: *logFile,
		Verbose: *verbose,
	}

	if _, err := gamesim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
