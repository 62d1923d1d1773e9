package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_InitiallyAccepting(t *testing.T) {
	var g gate
	assert.False(t, g.isShutdown())
	shuttingDown := g.rlock()
	g.runlock()
	assert.False(t, shuttingDown)
}

func TestGate_CloseTransitionsOnce(t *testing.T) {
	var g gate
	assert.True(t, g.close())
	assert.True(t, g.isShutdown())

	// A second close does not re-transition.
	assert.False(t, g.close())
	assert.True(t, g.isShutdown())
}

func TestGate_RlockObservesCloseAfterTheFact(t *testing.T) {
	var g gate
	g.close()

	shuttingDown := g.rlock()
	g.runlock()
	assert.True(t, shuttingDown)
}
