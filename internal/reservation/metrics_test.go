package reservation

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilRegistererDisablesMetrics(t *testing.T) {
	m := newMetrics(nil)
	assert.Nil(t, m)

	// Every method must tolerate a nil receiver without panicking.
	m.setAvailable(classUDP, 1)
	m.setPending(1)
	m.setLive(1)
	m.incShutdowns()
}

func TestMetrics_RegistersAgainstRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)

	m.setAvailable(classUDP, 3)
	m.setPending(2)
	m.setLive(1)
	m.incShutdowns()

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
