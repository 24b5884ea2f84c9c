package mocks

import (
	"milvus-server/feature/standalone"

	"github.com/stretchr/testify/mock"
)

// Reporter is a mock implementation of standalone.Reporter
type Reporter struct {
	mock.Mock
}

func (m *Reporter) Status() standalone.Status {
	args := m.Called()
	return args.Get(0).(standalone.Status)
}

func (m *Reporter) ConfigItems() []standalone.ConfigItem {
	args := m.Called()
	if items, ok := args.Get(0).([]standalone.ConfigItem); ok {
		return items
	}
	return nil
}
