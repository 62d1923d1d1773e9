package reservation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTask struct {
	id         int
	started    chan struct{}
	release    chan struct{}
	order      *[]int
	orderMu    *sync.Mutex
	failedWith error
}

func (r *recordingTask) run() {
	r.orderMu.Lock()
	*r.order = append(*r.order, r.id)
	r.orderMu.Unlock()
	close(r.started)
	<-r.release
}

func (r *recordingTask) fail(err error) {
	r.failedWith = err
}

func TestSerialExecutor_RunsTasksInSubmissionOrder(t *testing.T) {
	e := newSerialExecutor()

	var order []int
	var mu sync.Mutex

	var tasks []*recordingTask
	for i := 0; i < 3; i++ {
		task := &recordingTask{
			id:      i,
			started: make(chan struct{}),
			release: make(chan struct{}),
			order:   &order,
			orderMu: &mu,
		}
		tasks = append(tasks, task)
		require.True(t, e.submit(task))
	}

	for _, task := range tasks {
		select {
		case <-task.started:
		case <-time.After(time.Second):
			t.Fatalf("task %d never started", task.id)
		}
		close(task.release)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestSerialExecutor_PendingRequests(t *testing.T) {
	e := newSerialExecutor()

	blocker := &recordingTask{id: 0, started: make(chan struct{}), release: make(chan struct{}), order: new([]int), orderMu: new(sync.Mutex)}
	require.True(t, e.submit(blocker))
	<-blocker.started

	second := &recordingTask{id: 1, started: make(chan struct{}), release: make(chan struct{}), order: new([]int), orderMu: new(sync.Mutex)}
	require.True(t, e.submit(second))

	assert.Equal(t, 1, e.pendingRequests())
	close(blocker.release)
	<-second.started
	close(second.release)
}

func TestSerialExecutor_DrainFailsPendingTasksAndRejectsSubmit(t *testing.T) {
	e := newSerialExecutor()

	blocker := &recordingTask{id: 0, started: make(chan struct{}), release: make(chan struct{}), order: new([]int), orderMu: new(sync.Mutex)}
	require.True(t, e.submit(blocker))
	<-blocker.started

	pending := &recordingTask{id: 1, started: make(chan struct{}), release: make(chan struct{}), order: new([]int), orderMu: new(sync.Mutex)}
	require.True(t, e.submit(pending))

	drained := make(chan struct{})
	wantErr := assert.AnError
	go func() {
		e.drain(wantErr)
		close(drained)
	}()

	// Release the blocker only once drain has closed the executor and taken
	// the pending task off the queue; otherwise the worker could dequeue and
	// start that task before drain sees it.
	for {
		e.mu.Lock()
		closed := e.closed
		e.mu.Unlock()
		if closed {
			break
		}
	}
	close(blocker.release)
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatal("drain never returned")
	}

	assert.Equal(t, wantErr, pending.failedWith)
	assert.False(t, e.submit(&recordingTask{id: 2, started: make(chan struct{}), release: make(chan struct{}), order: new([]int), orderMu: new(sync.Mutex)}))
}
