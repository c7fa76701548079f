package expire_pending

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

type mockFinder struct{ mock.Mock }

func (m *mockFinder) GetStalePending(ctx context.Context, before time.Time, limit uint64) ([]string, error) {
	args := m.Called(ctx, before, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) Execute(ctx context.Context, req *update_status.Request) (*update_status.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*update_status.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRun_CancelsStaleBookings(t *testing.T) {
	finder, updater := &mockFinder{}, &mockUpdater{}
	job := NewJob(finder, updater, 1, nopLogger{})
	job.now = func() time.Time { return time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	cutoff := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	finder.On("GetStalePending", ctx, cutoff, uint64(100)).Return([]string{"a", "b", "c"}, nil)

	isExpiry := func(id string) interface{} {
		return mock.MatchedBy(func(r *update_status.Request) bool {
			return r.AppointmentID == id && r.NewStatus == "Cancelled" && r.Reason == "expired" && r.ChangedBy == "system"
		})
	}
	updater.On("Execute", ctx, isExpiry("a")).Return(&update_status.Response{}, nil)
	updater.On("Execute", ctx, isExpiry("b")).Return(nil, update_status.ErrInvalidTransition)
	updater.On("Execute", ctx, isExpiry("c")).Return(&update_status.Response{}, nil)

	n, err := job.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	updater.AssertNumberOfCalls(t, "Execute", 3)
}

func TestRun_FinderError(t *testing.T) {
	finder, updater := &mockFinder{}, &mockUpdater{}
	job := NewJob(finder, updater, 0, nopLogger{})
	finder.On("GetStalePending", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := job.Run(context.Background())
	assert.Error(t, err)
	updater.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", NewJob(&mockFinder{}, &mockUpdater{}, 1, nopLogger{}), nopLogger{})
	assert.Error(t, err)

	s, err := NewScheduler("@every 1h", NewJob(&mockFinder{}, &mockUpdater{}, 1, nopLogger{}), nopLogger{})
	require.NoError(t, err)
	s.Start()
	s.Stop(context.Background())
}
