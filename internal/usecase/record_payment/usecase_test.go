package record_payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
	"github.com/m04kA/SMC-CarwashBooking/pkg/ptr"
)

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

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	p.CreatedAt = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return p, nil
}

func (m *mockPaymentRepo) SumByAppointment(ctx context.Context, id string) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

type mockGuard struct{ mock.Mock }

func (m *mockGuard) Acquire(ctx context.Context, scope, key string) error {
	return m.Called(ctx, scope, key).Error(0)
}

func (m *mockGuard) Release(ctx context.Context, scope, key string) error {
	return m.Called(ctx, scope, key).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, event notifications.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) ObservePayment(status string, amount float64) {
	m.Called(status, amount)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	bookings *mockBookingRepo
	payments *mockPaymentRepo
	guard    *mockGuard
	notifier *mockNotifier
	metrics  *mockMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &mockBookingRepo{},
		payments: &mockPaymentRepo{},
		guard:    &mockGuard{},
		notifier: &mockNotifier{},
		metrics:  &mockMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.payments, f.guard, f.notifier, f.metrics, passTx{}, nopLogger{})
	f.uc.newID = func() string { return "pay-1" }
	return f
}

func confirmedBooking(price float64) *domain.Booking {
	return &domain.Booking{
		AppointmentID: "appt-1",
		UserID:        7,
		Price:         price,
		Status:        domain.StatusConfirmed,
		Version:       2,
	}
}

func TestExecute_PartialThenAutoPaid(t *testing.T) {
	tests := []struct {
		name       string
		paidBefore float64
		amount     string
		override   string
		wantStatus domain.PaymentStatus
		wantPaid   float64
	}{
		{name: "first partial payment", paidBefore: 0, amount: "300", wantStatus: domain.PaymentPartial, wantPaid: 300},
		{name: "second payment reaches price", paidBefore: 300, amount: "200", wantStatus: domain.PaymentPaid, wantPaid: 500},
		{name: "explicit override wins", paidBefore: 0, amount: "100", override: "paid", wantStatus: domain.PaymentPaid, wantPaid: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(confirmedBooking(500), nil)
			f.payments.On("SumByAppointment", ctx, "appt-1").Return(tt.paidBefore, nil)
			f.payments.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
				return p.PaymentID == "pay-1" && p.Method == "GCash" && p.PaymentStatus == tt.wantStatus && p.UserID == 7
			})).Return(nil)
			f.bookings.On("Update", ctx, "appt-1", int64(2), mock.MatchedBy(func(u domain.BookingUpdate) bool {
				return *u.PaidAmount == tt.wantPaid && *u.PaymentStatus == tt.wantStatus
			})).Return(int64(3), nil)
			f.metrics.On("ObservePayment", string(tt.wantStatus), mock.Anything).Return()
			f.notifier.On("Notify", ctx, mock.MatchedBy(func(e notifications.Event) bool {
				return e.Kind == notifications.KindPaymentRecorded && e.Status == string(tt.wantStatus)
			})).Return(nil)

			resp, err := f.uc.Execute(ctx, &Request{
				AppointmentID: "appt-1",
				UserID:        7,
				Amount:        tt.amount,
				Method:        "gcash",
				PaymentStatus: tt.override,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.PaymentStatus)
			assert.Equal(t, tt.wantPaid, resp.PaidAmount)
			assert.Equal(t, 500-tt.wantPaid, resp.Remaining)

			f.guard.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
			f.bookings.AssertExpectations(t)
			f.payments.AssertExpectations(t)
			f.notifier.AssertExpectations(t)
		})
	}
}

func TestExecute_ValidationSkipsStore(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "zero amount", req: &Request{AppointmentID: "a", UserID: 1, Amount: "0", Method: "Cash"}, wantErr: ErrInvalidAmount},
		{name: "negative amount", req: &Request{AppointmentID: "a", UserID: 1, Amount: "-5", Method: "Cash"}, wantErr: ErrInvalidAmount},
		{name: "not a number", req: &Request{AppointmentID: "a", UserID: 1, Amount: "abc", Method: "Cash"}, wantErr: ErrInvalidAmount},
		{name: "nan", req: &Request{AppointmentID: "a", UserID: 1, Amount: "NaN", Method: "Cash"}, wantErr: ErrInvalidAmount},
		{name: "missing method", req: &Request{AppointmentID: "a", UserID: 1, Amount: "10"}, wantErr: ErrValidation},
		{name: "blank method", req: &Request{AppointmentID: "a", UserID: 1, Amount: "10", Method: "   "}, wantErr: ErrValidation},
		{name: "method too long", req: &Request{AppointmentID: "a", UserID: 1, Amount: "10", Method: strings.Repeat("m", domain.MaxPaymentMethodLength+1)}, wantErr: ErrValidation},
		{name: "missing amount", req: &Request{AppointmentID: "a", UserID: 1, Method: "Cash"}, wantErr: ErrValidation},
		{name: "blank amount", req: &Request{AppointmentID: "a", UserID: 1, Amount: "  ", Method: "Cash"}, wantErr: ErrValidation},
		{name: "missing user", req: &Request{AppointmentID: "a", Amount: "10", Method: "Cash"}, wantErr: ErrValidation},
		{name: "bad override", req: &Request{AppointmentID: "a", UserID: 1, Amount: "10", Method: "Cash", PaymentStatus: "Refunded"}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.bookings.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_AcceptsAnyNonEmptyMethod(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(confirmedBooking(500), nil)
	f.payments.On("SumByAppointment", ctx, "appt-1").Return(0.0, nil)
	f.payments.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Method == "PayMaya"
	})).Return(nil)
	f.bookings.On("Update", ctx, "appt-1", int64(2), mock.Anything).Return(int64(3), nil)
	f.metrics.On("ObservePayment", string(domain.PaymentPartial), mock.Anything).Return()
	f.notifier.On("Notify", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{AppointmentID: "appt-1", UserID: 7, Amount: "100", Method: "  PayMaya "})
	require.NoError(t, err)
	assert.Equal(t, "PayMaya", resp.Method)
	f.payments.AssertExpectations(t)
}

func TestExecute_RejectsOverpay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(confirmedBooking(500), nil)
	f.payments.On("SumByAppointment", ctx, "appt-1").Return(450.0, nil)

	_, err := f.uc.Execute(ctx, &Request{AppointmentID: "appt-1", UserID: 7, Amount: "50.01", Method: "Cash"})
	assert.ErrorIs(t, err, ErrAmountExceedsBalance)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ClosedBookings(t *testing.T) {
	for _, b := range []*domain.Booking{
		{AppointmentID: "appt-1", Price: 500, Status: domain.StatusCancelled},
		{AppointmentID: "appt-1", Price: 500, Status: domain.StatusDeclined},
		{AppointmentID: "appt-1", Price: 500, Status: domain.StatusConfirmed, PaymentStatus: ptr.Ptr(domain.PaymentRefunded)},
	} {
		f := newFixture()
		ctx := context.Background()
		f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(b, nil)

		_, err := f.uc.Execute(ctx, &Request{AppointmentID: "appt-1", UserID: 7, Amount: "10", Method: "Cash"})
		assert.ErrorIs(t, err, ErrBookingClosed)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.uc.Execute(ctx, &Request{AppointmentID: "appt-1", UserID: 7, Amount: "10", Method: "Cash"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_IdempotencyKey(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		f.guard.On("Acquire", ctx, "payment", "appt-1:k-1").Return(idempotency.ErrDuplicate)

		_, err := f.uc.Execute(ctx, &Request{AppointmentID: "appt-1", UserID: 7, Amount: "10", Method: "Cash", IdempotencyKey: "k-1"})
		assert.ErrorIs(t, err, ErrDuplicatePayment)
		f.bookings.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("released on failure", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		f.guard.On("Acquire", ctx, "payment", "appt-1:k-2").Return(nil)
		f.guard.On("Release", ctx, "payment", "appt-1:k-2").Return(nil)
		f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(nil, errors.New("db down"))

		_, err := f.uc.Execute(ctx, &Request{AppointmentID: "appt-1", UserID: 7, Amount: "10", Method: "Cash", IdempotencyKey: "k-2"})
		assert.ErrorIs(t, err, ErrInternal)
		f.guard.AssertExpectations(t)
	})
}

func TestExecuteRemaining(t *testing.T) {
	t.Run("pays the balance", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(confirmedBooking(500), nil)
		f.payments.On("SumByAppointment", ctx, "appt-1").Return(125.5, nil)
		f.payments.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Amount == 374.5 && p.PaymentStatus == domain.PaymentPaid
		})).Return(nil)
		f.bookings.On("Update", ctx, "appt-1", int64(2), mock.Anything).Return(int64(3), nil)
		f.metrics.On("ObservePayment", "Paid", 374.5).Return()
		f.notifier.On("Notify", ctx, mock.Anything).Return(nil)

		resp, err := f.uc.ExecuteRemaining(ctx, &RemainingRequest{AppointmentID: "appt-1", UserID: 7, Method: "Card"})
		require.NoError(t, err)
		assert.Equal(t, 374.5, resp.Amount)
		assert.Equal(t, 0.0, resp.Remaining)
	})

	t.Run("nothing to pay", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		f.bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(confirmedBooking(500), nil)
		f.payments.On("SumByAppointment", ctx, "appt-1").Return(500.0, nil)

		_, err := f.uc.ExecuteRemaining(ctx, &RemainingRequest{AppointmentID: "appt-1", UserID: 7, Method: "Card"})
		assert.ErrorIs(t, err, ErrNothingToPay)
	})
}
