package session

import "meetx_server/models"

// GateState is the profile gate's blocking state. Blocked suspends deck
// interaction; the underlying subscriptions keep running so the transition
// back is immediate once the profile becomes complete.
type GateState string

const (
	GateUnknown   GateState = "unknown"
	GateBlocked   GateState = "blocked"
	GateUnblocked GateState = "unblocked"
)

// Gate is the continuously re-evaluated predicate over the viewer's own
// profile. Unknown until the first read, then toggles on every change, and
// always falls back to Blocked on sign-out.
type Gate struct {
	state GateState
}

func NewGate() *Gate {
	return &Gate{state: GateUnknown}
}

func (g *Gate) State() GateState {
	return g.state
}

// Observe re-evaluates the gate against the viewer's current profile.
// Returns the new state and whether it changed.
func (g *Gate) Observe(profile models.Profile) (GateState, bool) {
	next := GateBlocked
	if profile.IsComplete() {
		next = GateUnblocked
	}
	changed := next != g.state
	g.state = next
	return next, changed
}

// SignOut forces the gate closed.
func (g *Gate) SignOut() (GateState, bool) {
	changed := g.state != GateBlocked
	g.state = GateBlocked
	return GateBlocked, changed
}
