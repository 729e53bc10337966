package pool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkersIdentifyFirst(t *testing.T) {
	r := &MockRunner{}
	p := New[int](3, r.Run, testLogger())
	require.Equal(t, 3, p.Size())
	p.Start(context.Background())

	ready := map[int]bool{}
	for range p.Size() {
		res := <-p.Results()
		assert.True(t, res.Ready)
		ready[res.Worker] = true
	}
	assert.Len(t, ready, 3)

	p.ReleaseAll()
	for range p.Results() {
		t.Fatal("no result expected after release")
	}
	require.NoError(t, p.Wait())
	r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestAssignRunsJobOnThatWorker(t *testing.T) {
	r := &MockRunner{}
	r.On("Run", mock.Anything, 7).Return(5*time.Millisecond, nil).Once()
	r.On("Run", mock.Anything, 8).Return(6*time.Millisecond, nil).Once()

	p := New[int](2, r.Run, testLogger())
	p.Start(context.Background())

	jobs := map[int]int{0: 7, 1: 8}
	got := map[int]time.Duration{}
	for res := range p.Results() {
		if res.Ready {
			p.Assign(res.Worker, jobs[res.Worker])
			continue
		}
		got[res.Worker] = res.Elapsed
		p.Release(res.Worker)
	}
	require.NoError(t, p.Wait())
	assert.Equal(t, map[int]time.Duration{0: 5 * time.Millisecond, 1: 6 * time.Millisecond}, got)
	r.AssertExpectations(t)
}

func TestExecErrorCancelsPool(t *testing.T) {
	boom := errors.New("boom")
	r := &MockRunner{}
	r.On("Run", mock.Anything, 1).Return(time.Duration(0), boom)

	p := New[int](2, r.Run, testLogger())
	ctx := p.Start(context.Background())

	for res := range p.Results() {
		if res.Ready && res.Worker == 0 {
			p.Assign(0, 1)
		}
	}
	err := p.Wait()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "worker 0")
	assert.Error(t, ctx.Err())
}

func TestCancelStopsIdleWorkers(t *testing.T) {
	r := &MockRunner{}
	p := New[int](4, r.Run, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	for range p.Results() {
	}
	require.NoError(t, p.Wait())
	assert.False(t, p.Released(0))
}

func TestReleaseIsIdempotent(t *testing.T) {
	r := &MockRunner{}
	p := New[int](1, r.Run, testLogger())
	p.Start(context.Background())
	<-p.Results()

	p.Release(0)
	assert.NotPanics(t, func() { p.Release(0) })
	assert.True(t, p.Released(0))
	require.NoError(t, p.Wait())
}

func TestDefaultSize(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultSize(), 1)
}
