package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/okian/benchcoach/internal/app"
	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/roster"
	"github.com/okian/benchcoach/internal/domain/types"
)

// startRequest starts a game from a names list, a newline separated text
// block, or a preset name. The first non-empty one wins in that order:
// preset, names, text.
type startRequest struct {
	Names  []string `json:"names"`
	Text   string   `json:"text"`
	Preset string   `json:"preset"`
}

func (s startRequest) validate() error {
	if strings.TrimSpace(s.Preset) == "" && len(s.Names) == 0 && strings.TrimSpace(s.Text) == "" {
		return errors.New("one of names, text or preset is required")
	}
	return nil
}

type presetsResponse struct {
	Presets []types.Preset `json:"presets"`
}

// GameHandler serves the game lifecycle endpoints.
type GameHandler struct {
	deps Dependencies
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps Dependencies) *GameHandler {
	return &GameHandler{deps: deps}
}

// HandleGet handles GET /game.
func (h *GameHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	v, err := h.deps.Game(r.Context())
	if err != nil {
		fail(w, "api.get_game", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleStart handles POST /game.
func (h *GameHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_game"
	var req startRequest
	if err := decode(r, &req, false); err != nil {
		fail(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		fail(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	names := req.Names
	switch {
	case strings.TrimSpace(req.Preset) != "":
		p, ok := h.deps.Preset(req.Preset)
		if !ok {
			fail(w, op, WrapKind(op, ErrNotFound, fmt.Errorf("%w: %q", service.ErrUnknownPreset, req.Preset)))
			return
		}
		names = p.Players
	case len(names) == 0:
		names = roster.ParseNames(req.Text)
	}
	command(w, r, h.deps, op, model.Command{Kind: model.CmdStartGame, Names: names})
}

// HandlePresets handles GET /presets.
func (h *GameHandler) HandlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{Presets: h.deps.Presets()})
}

// HandleToggleConfirm handles POST /game/reset/confirm.
func (h *GameHandler) HandleToggleConfirm(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.toggle_confirm_reset", model.Command{Kind: model.CmdToggleConfirmReset})
}

// HandleReset handles POST /game/reset. Without a prior confirmation the
// game is returned unchanged.
func (h *GameHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.reset", model.Command{Kind: model.CmdReset})
}
