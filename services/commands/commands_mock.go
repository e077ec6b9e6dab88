package commands

import (
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
)

// MockCommandsService is a mock implementation of the command registry
type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) Lookup(name string) mo.Option[Command] {
	args := m.Called(name)
	return args.Get(0).(mo.Option[Command])
}

func (m *MockCommandsService) Prefix() string {
	args := m.Called()
	return args.String(0)
}
