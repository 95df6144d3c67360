package api

import (
	"errors"
	"net/http"

	"github.com/okian/benchcoach/internal/domain/model"
)

type adjustRequest struct {
	Steps *int `json:"steps"`
}

// ClockHandler serves the game clock and shot clock controls.
type ClockHandler struct {
	deps Dependencies
}

// NewClockHandler creates a new clock handler.
func NewClockHandler(deps Dependencies) *ClockHandler {
	return &ClockHandler{deps: deps}
}

// HandleStart handles POST /clock/start.
func (h *ClockHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.start_clock", model.Command{Kind: model.CmdStartClock})
}

// HandlePause handles POST /clock/pause.
func (h *ClockHandler) HandlePause(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.pause_clock", model.Command{Kind: model.CmdPauseClock})
}

// HandleAdjustShotClock handles POST /shot-clock/adjust.
func (h *ClockHandler) HandleAdjustShotClock(w http.ResponseWriter, r *http.Request) {
	const op = "api.adjust_shot_clock"
	var req adjustRequest
	if err := decode(r, &req, false); err != nil {
		fail(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Steps == nil {
		fail(w, op, WrapKind(op, ErrBadRequest, errors.New("missing steps")))
		return
	}
	command(w, r, h.deps, op, model.Command{Kind: model.CmdAdjustShotClock, Steps: *req.Steps})
}

// HandleResetShotClock handles POST /shot-clock/reset.
func (h *ClockHandler) HandleResetShotClock(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.reset_shot_clock", model.Command{Kind: model.CmdResetShotClock})
}
