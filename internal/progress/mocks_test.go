package progress

import "github.com/stretchr/testify/mock"

// MockSource mocks the Source interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Progress() Snapshot {
	args := m.Called()
	return args.Get(0).(Snapshot)
}
