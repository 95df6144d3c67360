package api

import (
	"net/http"
	"strings"

	"github.com/okian/benchcoach/internal/domain/model"
)

// PlayersHandler serves the roster transitions.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

func (h *PlayersHandler) transition(w http.ResponseWriter, r *http.Request, op string, kind model.CommandKind) {
	ref := strings.TrimSpace(r.PathValue("ref"))
	if ref == "" {
		fail(w, op, NewKind(op, ErrBadRequest))
		return
	}
	command(w, r, h.deps, op, model.Command{Kind: kind, Ref: ref})
}

// HandleMarkGoingIn handles POST /players/{ref}/going-in.
func (h *PlayersHandler) HandleMarkGoingIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "api.mark_going_in", model.CmdMarkGoingIn)
}

// HandleUnmarkGoingIn handles DELETE /players/{ref}/going-in.
func (h *PlayersHandler) HandleUnmarkGoingIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "api.unmark_going_in", model.CmdUnmarkGoingIn)
}

// HandleToggleComingOut handles POST /players/{ref}/coming-out.
func (h *PlayersHandler) HandleToggleComingOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "api.toggle_coming_out", model.CmdToggleComingOut)
}

// HandleSubstitute handles POST /substitutions.
func (h *PlayersHandler) HandleSubstitute(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.substitute", model.Command{Kind: model.CmdSubstitute})
}
