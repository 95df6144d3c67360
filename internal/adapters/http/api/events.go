package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/types"
)

type armRequest struct {
	Kind string `json:"kind"`
}

// logRequest logs a play. Without a kind the armed kind is used.
type logRequest struct {
	Subject string `json:"subject"`
	Kind    string `json:"kind"`
}

type eventsResponse struct {
	Events []types.EventView `json:"events"`
	Count  int               `json:"count"`
}

type kindsResponse struct {
	Kinds []types.KindView `json:"kinds"`
}

func parseKind(s string) (model.EventKind, error) {
	k, ok := model.ParseKind(strings.TrimSpace(s))
	if !ok {
		return "", fmt.Errorf("unknown event kind %q", s)
	}
	return k, nil
}

// EventsHandler serves the event log and the armed kind.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleKinds handles GET /kinds.
func (h *EventsHandler) HandleKinds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, kindsResponse{Kinds: h.deps.Kinds()})
}

// HandleSelect handles PUT /events/armed. Selecting the armed kind again
// disarms it.
func (h *EventsHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_kind"
	var req armRequest
	if err := decode(r, &req, false); err != nil {
		fail(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		fail(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	command(w, r, h.deps, op, model.Command{Kind: model.CmdSelectKind, Event: kind})
}

// HandleClear handles DELETE /events/armed.
func (h *EventsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	command(w, r, h.deps, "api.clear_kind", model.Command{Kind: model.CmdClearKind})
}

// HandleLog handles POST /events.
func (h *EventsHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	const op = "api.log_event"
	var req logRequest
	if err := decode(r, &req, true); err != nil {
		fail(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	cmd := model.Command{Kind: model.CmdLogEvent, Subject: strings.TrimSpace(req.Subject)}
	if strings.TrimSpace(req.Kind) != "" {
		kind, err := parseKind(req.Kind)
		if err != nil {
			fail(w, op, WrapKind(op, ErrBadRequest, err))
			return
		}
		cmd.Event = kind
	}
	command(w, r, h.deps, op, cmd)
}

// HandleList handles GET /events.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.deps.Events(r.Context())
	if err != nil {
		fail(w, "api.list_events", err)
		return
	}
	if events == nil {
		events = []types.EventView{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: events, Count: len(events)})
}
