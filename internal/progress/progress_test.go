package progress

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestSnapshotPercent(t *testing.T) {
	s := Snapshot{Generated: 200, Executed: 50, Discarded: 50}
	assert.Equal(t, int64(100), s.Done())
	assert.InDelta(t, 50.0, s.Percent(), 1e-9)
	assert.InDelta(t, 100.0, Snapshot{}.Percent(), 1e-9)
}

func TestReport(t *testing.T) {
	src := &MockSource{}
	src.On("Progress").Return(Snapshot{Generated: 12000, Executed: 1500, Discarded: 500, Pending: 10000})
	logger, buf := bufferLogger()

	New(src, time.Minute, logger).report()

	out := buf.String()
	assert.Contains(t, out, "benchmark progress")
	assert.Contains(t, out, "done=2,000")
	assert.Contains(t, out, "generated=12,000")
	assert.Contains(t, out, "percent=16.7")
	src.AssertExpectations(t)
}

func TestRunReportsOnTickAndExit(t *testing.T) {
	src := &MockSource{}
	src.On("Progress").Return(Snapshot{Generated: 10, Executed: 5})
	logger, _ := bufferLogger()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(src, 5*time.Millisecond, logger).Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	src.AssertCalled(t, "Progress")
	assert.GreaterOrEqual(t, len(src.Calls), 2)
}

func TestRunDisabledInterval(t *testing.T) {
	src := &MockSource{}
	src.On("Progress").Return(Snapshot{}).Once()
	logger, _ := bufferLogger()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	New(src, 0, logger).Run(ctx)

	src.AssertExpectations(t)
}
