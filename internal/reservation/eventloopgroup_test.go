package reservation

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEventLoopGroup_RunsSubmittedWork(t *testing.T) {
	g := NewEventLoopGroup(2)
	defer g.Close()

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		g.Submit(func() {
			defer wg.Done()
			n.Add(1)
		})
	}
	wg.Wait()

	assert.Equal(t, int32(5), n.Load())
}

func TestDefaultEventLoopGroup_BoundsConcurrency(t *testing.T) {
	g := NewEventLoopGroup(1)
	defer g.Close()

	var inFlight atomic.Int32
	var maxInFlight atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		g.Submit(func() {
			defer wg.Done()
			cur := inFlight.Add(1)
			if cur > maxInFlight.Load() {
				maxInFlight.Store(cur)
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestDefaultEventLoopGroup_CloseWaitsForInFlightWork(t *testing.T) {
	g := NewEventLoopGroup(1)

	var ran atomic.Bool
	g.Submit(func() {
		time.Sleep(10 * time.Millisecond)
		ran.Store(true)
	})

	g.Close()
	assert.True(t, ran.Load())
}

func TestDefaultEventLoopGroup_SubmitAfterCloseIsNoOp(t *testing.T) {
	g := NewEventLoopGroup(1)
	g.Close()

	var ran atomic.Bool
	g.Submit(func() { ran.Store(true) })
	time.Sleep(10 * time.Millisecond)
	assert.False(t, ran.Load())
}
