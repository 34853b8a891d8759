package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// MockEventSink records the events a service fans out.
type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) PublishGameEvent(ctx context.Context, event service.GameEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventSink) PublishStandings(ctx context.Context, rows []standings.Row) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}
