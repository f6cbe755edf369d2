package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meetx_server/models"
)

func TestGateTransitions(t *testing.T) {
	g := NewGate()
	assert.Equal(t, GateUnknown, g.State())

	incomplete := models.Profile{UserID: "me", FullName: "Me"}
	state, changed := g.Observe(incomplete)
	assert.Equal(t, GateBlocked, state)
	assert.True(t, changed)

	complete := models.Profile{UserID: "me", FullName: "Me", PhotoURL: "p", Skills: []string{"go"}}
	state, changed = g.Observe(complete)
	assert.Equal(t, GateUnblocked, state)
	assert.True(t, changed)

	// No transition on a repeat observation.
	_, changed = g.Observe(complete)
	assert.False(t, changed)

	// Removing the photo re-blocks immediately.
	state, changed = g.Observe(incomplete)
	assert.Equal(t, GateBlocked, state)
	assert.True(t, changed)
}

func TestGateSignOutForcesBlocked(t *testing.T) {
	g := NewGate()
	g.Observe(models.Profile{FullName: "Me", PhotoURL: "p", Skills: []string{"go"}})

	state, changed := g.SignOut()
	assert.Equal(t, GateBlocked, state)
	assert.True(t, changed)

	_, changed = g.SignOut()
	assert.False(t, changed)
}
