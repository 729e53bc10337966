package pool

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRunner records the jobs handed to workers.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, job int) (time.Duration, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(time.Duration), args.Error(1)
}
