package gamesim

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"

	"github.com/okian/benchcoach/internal/domain/types"
)

var firstNames = []string{
	"Sawyer", "Kalim", "Brody", "Caleb", "Wesley", "John", "Jaxson", "Travis",
	"Killian", "Danny", "Adrian", "Chris", "Henry", "Noah", "Keaton", "Logan",
	"Kamden", "Hudson", "August", "Bode", "Axel", "Tucker", "Luke", "Odin",
}

// action is one request the simulator sends.
type action struct {
	name   string
	method string
	path   string
	body   any

	// team and points are set for plays that should move the score.
	team   string
	points int
	logs   bool
}

type logBody struct {
	Subject string `json:"subject,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

type armBody struct {
	Kind string `json:"kind"`
}

type adjustBody struct {
	Steps int `json:"steps"`
}

// generateNames returns n roster names. Names repeat once the pool runs out.
func generateNames(rng *rand.Rand, n int) []string {
	pool := append([]string(nil), firstNames...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	names := make([]string, n)
	for i := range names {
		names[i] = pool[i%len(pool)]
	}
	return names
}

// nextAction picks a request that makes sense for the current view.
func nextAction(rng *rand.Rand, view types.GameView, kinds []types.KindView) action {
	var comingOut, stayingOn []types.PlayerView
	for _, p := range view.OnCourt {
		if p.Status == "pending_out" {
			comingOut = append(comingOut, p)
		} else {
			stayingOn = append(stayingOn, p)
		}
	}
	incoming := len(view.OnCourt) - len(comingOut) + len(view.PendingIn)

	switch {
	case len(view.PendingIn) > 0 && rng.IntN(3) == 0:
		return action{name: "substitute", method: http.MethodPost, path: "/substitutions"}
	case len(view.Bench) > 0 && incoming < courtSize:
		p := view.Bench[rng.IntN(len(view.Bench))]
		return playerAction("going in "+p.Name, http.MethodPost, p, "going-in")
	}

	switch rng.IntN(10) {
	case 0:
		if len(view.PendingIn) > 0 {
			p := view.PendingIn[rng.IntN(len(view.PendingIn))]
			return playerAction("back to bench "+p.Name, http.MethodDelete, p, "going-in")
		}
	case 1:
		if len(stayingOn) > 0 && len(view.Bench) > 0 {
			out := stayingOn[rng.IntN(len(stayingOn))]
			return playerAction("coming out "+out.Name, http.MethodPost, out, "coming-out")
		}
	case 2:
		if len(comingOut) > 0 {
			p := comingOut[rng.IntN(len(comingOut))]
			return playerAction("staying on "+p.Name, http.MethodPost, p, "coming-out")
		}
	case 3:
		if len(comingOut) > 0 && len(view.Bench) > 0 {
			p := view.Bench[rng.IntN(len(view.Bench))]
			return playerAction("going in "+p.Name, http.MethodPost, p, "going-in")
		}
	case 4:
		if view.Armed == "" {
			k := kinds[rng.IntN(len(kinds))]
			return action{name: "arm " + k.Kind, method: http.MethodPut, path: "/events/armed", body: armBody{Kind: k.Kind}}
		}
		return teamPlay(rng, view.Armed, kinds, "")
	case 5:
		if rng.IntN(2) == 0 {
			return action{name: "shot clock reset", method: http.MethodPost, path: "/shot-clock/reset"}
		}
		return action{
			name:   "shot clock adjust",
			method: http.MethodPost,
			path:   "/shot-clock/adjust",
			body:   adjustBody{Steps: shotClockAdjust - 2*rng.IntN(2)},
		}
	case 6, 7:
		if len(view.OnCourt) > 0 {
			k := playerKind(rng, kinds)
			p := view.OnCourt[rng.IntN(len(view.OnCourt))]
			return action{
				name:   fmt.Sprintf("%s by %s", k.Kind, p.Name),
				method: http.MethodPost,
				path:   "/events",
				body:   logBody{Subject: p.Name, Kind: k.Kind},
				logs:   true,
			}
		}
	}

	k := kinds[rng.IntN(len(kinds))]
	return teamPlay(rng, "", kinds, k.Kind)
}

// teamPlay logs kind for us or them. An empty kind logs the armed kind.
func teamPlay(rng *rand.Rand, armed string, kinds []types.KindView, kind string) action {
	team := "us"
	if rng.IntN(2) == 0 {
		team = "them"
	}
	effective := kind
	if effective == "" {
		effective = armed
	}
	a := action{
		name:   fmt.Sprintf("%s for %s", effective, team),
		method: http.MethodPost,
		path:   "/events",
		body:   logBody{Subject: team, Kind: kind},
		logs:   true,
	}
	// Team-only kinds drop the subject and never score.
	if k, ok := findKind(kinds, effective); ok && !k.TeamOnly {
		a.team = team
		a.points = k.Points
	}
	return a
}

func playerAction(name, method string, p types.PlayerView, leaf string) action {
	return action{name: name, method: method, path: "/players/" + url.PathEscape(p.ID) + "/" + leaf}
}

func playerKind(rng *rand.Rand, kinds []types.KindView) types.KindView {
	candidates := make([]types.KindView, 0, len(kinds))
	for _, k := range kinds {
		if !k.TeamOnly {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return kinds[rng.IntN(len(kinds))]
	}
	return candidates[rng.IntN(len(candidates))]
}

func findKind(kinds []types.KindView, kind string) (types.KindView, bool) {
	for _, k := range kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return types.KindView{}, false
}
