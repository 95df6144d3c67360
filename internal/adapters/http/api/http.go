// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/types"
)

// idempotencyHeader carries a client key that makes a mutation safe to retry.
const idempotencyHeader = "Idempotency-Key"

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Do runs one command on the game's writer and returns the new view.
	Do(ctx context.Context, cmd model.Command) (types.GameView, error)
	Preset(name string) (types.Preset, bool)

	Game(ctx context.Context) (types.GameView, error)
	Stats(ctx context.Context) (types.StatsView, error)
	Events(ctx context.Context) ([]types.EventView, error)
	Presets() []types.Preset
	Kinds() []types.KindView
}

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler  *HealthHandler
	statusHandler  *StatusHandler
	gameHandler    *GameHandler
	playersHandler *PlayersHandler
	clockHandler   *ClockHandler
	eventsHandler  *EventsHandler
	statsHandler   *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statusProvider StatusProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statusHandler:  NewStatusHandler(statusProvider),
		gameHandler:    NewGameHandler(deps),
		playersHandler: NewPlayersHandler(deps),
		clockHandler:   NewClockHandler(deps),
		eventsHandler:  NewEventsHandler(deps),
		statsHandler:   NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(h, endpoint))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /status", "status", s.statusHandler.HandleStatus)

	route("GET /game", "game", s.gameHandler.HandleGet)
	route("POST /game", "game", s.gameHandler.HandleStart)
	route("GET /presets", "presets", s.gameHandler.HandlePresets)
	route("POST /game/reset/confirm", "reset_confirm", s.gameHandler.HandleToggleConfirm)
	route("POST /game/reset", "reset", s.gameHandler.HandleReset)

	route("POST /players/{ref}/going-in", "going_in", s.playersHandler.HandleMarkGoingIn)
	route("DELETE /players/{ref}/going-in", "going_in", s.playersHandler.HandleUnmarkGoingIn)
	route("POST /players/{ref}/coming-out", "coming_out", s.playersHandler.HandleToggleComingOut)
	route("POST /substitutions", "substitutions", s.playersHandler.HandleSubstitute)

	route("POST /clock/start", "clock", s.clockHandler.HandleStart)
	route("POST /clock/pause", "clock", s.clockHandler.HandlePause)
	route("POST /shot-clock/adjust", "shot_clock", s.clockHandler.HandleAdjustShotClock)
	route("POST /shot-clock/reset", "shot_clock", s.clockHandler.HandleResetShotClock)

	route("GET /kinds", "kinds", s.eventsHandler.HandleKinds)
	route("PUT /events/armed", "armed", s.eventsHandler.HandleSelect)
	route("DELETE /events/armed", "armed", s.eventsHandler.HandleClear)
	route("POST /events", "events", s.eventsHandler.HandleLog)
	route("GET /events", "events", s.eventsHandler.HandleList)

	route("GET /stats", "stats", s.statsHandler.HandleStats)
}

// command runs cmd and writes the resulting view.
// A request repeating an earlier Idempotency-Key gets the current view
// without being applied again.
func command(w http.ResponseWriter, r *http.Request, deps Dependencies, op string, cmd model.Command) {
	cmd.Key = strings.TrimSpace(r.Header.Get(idempotencyHeader))
	v, err := deps.Do(r.Context(), cmd)
	if err != nil {
		fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
