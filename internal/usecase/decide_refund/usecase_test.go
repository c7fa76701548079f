package decide_refund

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	refundRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/refund"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
)

type mockRefundRepo struct{ mock.Mock }

func (m *mockRefundRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.RefundRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.RefundRequest)
	return r, args.Error(1)
}

func (m *mockRefundRepo) UpdateStatus(ctx context.Context, id int64, status domain.RefundStatus, decidedAt time.Time) error {
	return m.Called(ctx, id, status, decidedAt).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, id string, version int64, upd domain.BookingUpdate) (int64, error) {
	args := m.Called(ctx, id, version, upd)
	return args.Get(0).(int64), args.Error(1)
}

type mockHistoryRepo struct{ mock.Mock }

func (m *mockHistoryRepo) Create(ctx context.Context, entry *domain.StatusHistory) (*domain.StatusHistory, error) {
	return entry, m.Called(ctx, entry).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, event notifications.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncRefundDecision(decision string)   { m.Called(decision) }
func (m *mockMetrics) IncStatusTransition(from, to string) { m.Called(from, to) }

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	refunds  *mockRefundRepo
	bookings *mockBookingRepo
	history  *mockHistoryRepo
	notifier *mockNotifier
	metrics  *mockMetrics
	uc       *UseCase
	now      time.Time
}

func newFixture() *fixture {
	f := &fixture{
		refunds:  &mockRefundRepo{},
		bookings: &mockBookingRepo{},
		history:  &mockHistoryRepo{},
		notifier: &mockNotifier{},
		metrics:  &mockMetrics{},
		now:      time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewUseCase(f.refunds, f.bookings, f.history, f.notifier, f.metrics, passTx{}, nopLogger{})
	f.uc.timeProvider = fixedTime{now: f.now}
	return f
}

func pendingRefund() *domain.RefundRequest {
	return &domain.RefundRequest{
		ID:        11,
		Customer:  7,
		Amount:    200,
		Reason:    "shop closed",
		BookingID: "appt-1",
		OwnerID:   3,
		Status:    domain.RefundPending,
	}
}

func TestExecute_ApproveCascadesToBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.refunds.On("GetByIDForUpdate", ctx, int64(11)).Return(pendingRefund(), nil)
	f.refunds.On("UpdateStatus", ctx, int64(11), domain.RefundApproved, f.now).Return(nil)
	f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(&domain.Booking{
		AppointmentID: "appt-1",
		Status:        domain.StatusCompleted,
		PaidAmount:    500,
		Version:       9,
	}, nil)
	f.bookings.On("Update", ctx, "appt-1", int64(9), mock.MatchedBy(func(u domain.BookingUpdate) bool {
		return *u.PaidAmount == 0 &&
			*u.PaymentStatus == domain.PaymentRefunded &&
			*u.Status == domain.StatusCancelled
	})).Return(int64(10), nil)
	f.history.On("Create", ctx, mock.MatchedBy(func(h *domain.StatusHistory) bool {
		return h.OldStatus == domain.StatusCompleted &&
			h.NewStatus == domain.StatusCancelled &&
			h.ChangedBy == domain.ChangedByRefund
	})).Return(nil)
	f.metrics.On("IncRefundDecision", "Approved").Return()
	f.metrics.On("IncStatusTransition", "Completed", "Cancelled").Return()
	f.notifier.On("Notify", ctx, mock.MatchedBy(func(e notifications.Event) bool {
		return e.Kind == notifications.KindRefundDecided && e.Status == "Approved" && e.Amount == 200
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{RefundID: 11, Status: "approved", DecidedBy: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.RefundApproved, resp.Status)
	require.NotNil(t, resp.BookingStatus)
	assert.Equal(t, domain.StatusCancelled, *resp.BookingStatus)

	f.refunds.AssertExpectations(t)
	f.bookings.AssertExpectations(t)
	f.history.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestExecute_RejectLeavesBookingUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.refunds.On("GetByIDForUpdate", ctx, int64(11)).Return(pendingRefund(), nil)
	f.refunds.On("UpdateStatus", ctx, int64(11), domain.RefundRejected, f.now).Return(nil)
	f.metrics.On("IncRefundDecision", "Rejected").Return()
	f.notifier.On("Notify", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{RefundID: 11, Status: "Rejected"})
	require.NoError(t, err)
	assert.Nil(t, resp.BookingStatus)

	f.bookings.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	decided := pendingRefund()
	decided.Status = domain.RefundApproved

	tests := []struct {
		name    string
		req     *Request
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "invalid decision",
			req:     &Request{RefundID: 11, Status: "Maybe"},
			setup:   func(f *fixture) {},
			wantErr: ErrInvalidStatus,
		},
		{
			name: "refund not found",
			req:  &Request{RefundID: 11, Status: "Approved"},
			setup: func(f *fixture) {
				f.refunds.On("GetByIDForUpdate", ctx, int64(11)).Return(nil, refundRepo.ErrRefundNotFound)
			},
			wantErr: ErrRefundNotFound,
		},
		{
			name: "already decided",
			req:  &Request{RefundID: 11, Status: "Rejected"},
			setup: func(f *fixture) {
				f.refunds.On("GetByIDForUpdate", ctx, int64(11)).Return(decided, nil)
			},
			wantErr: ErrRefundAlreadyDecided,
		},
		{
			name: "not the shop owner",
			req:  &Request{RefundID: 11, Status: "Approved", DecidedBy: 99},
			setup: func(f *fixture) {
				f.refunds.On("GetByIDForUpdate", ctx, int64(11)).Return(pendingRefund(), nil)
			},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.refunds.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}
