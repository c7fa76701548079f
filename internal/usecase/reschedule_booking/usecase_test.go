package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/pkg/ptr"
	"github.com/m04kA/SMC-CarwashBooking/pkg/types"
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

type mockPersonnelRepo struct{ mock.Mock }

func (m *mockPersonnelRepo) GetByID(ctx context.Context, id int64) (*domain.Personnel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Personnel)
	return p, args.Error(1)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// понедельник, 08:00
var mondayMorning = fixedTime{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weekdayWorker() *domain.Personnel {
	return &domain.Personnel{ID: 5, ShopID: 3, DayAvailable: "Mon,Tue,Wed", TimeAvailable: "8:00 AM - 3:00 PM"}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		booking   *domain.Booking
		req       *Request
		wantErr   error
		wantWrite bool
	}{
		{
			name:      "assigned personnel available",
			booking:   &domain.Booking{AppointmentID: "appt-1", UserID: 7, PersonnelID: ptr.Ptr(int64(5)), Status: domain.StatusConfirmed, Version: 1},
			req:       &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "15:00"},
			wantWrite: true,
		},
		{
			name:      "no personnel skips check",
			booking:   &domain.Booking{AppointmentID: "appt-1", UserID: 7, Status: domain.StatusPending, Version: 1},
			req:       &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-15", ScheduleTime: "22:00"},
			wantWrite: true,
		},
		{
			name:    "saturday is not a working day",
			booking: &domain.Booking{AppointmentID: "appt-1", UserID: 7, PersonnelID: ptr.Ptr(int64(5)), Status: domain.StatusPending, Version: 1},
			req:     &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-15", ScheduleTime: "09:00"},
			wantErr: ErrDayUnavailable,
		},
		{
			name:    "after hours",
			booking: &domain.Booking{AppointmentID: "appt-1", UserID: 7, PersonnelID: ptr.Ptr(int64(5)), Status: domain.StatusPending, Version: 1},
			req:     &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "15:01"},
			wantErr: ErrTimeUnavailable,
		},
		{
			name:    "date already passed",
			booking: &domain.Booking{AppointmentID: "appt-1", UserID: 7, Status: domain.StatusPending, Version: 1},
			req:     &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-07", ScheduleTime: "10:00"},
			wantErr: ErrScheduleInPast,
		},
		{
			name:    "time today already passed",
			booking: &domain.Booking{AppointmentID: "appt-1", UserID: 7, Status: domain.StatusPending, Version: 1},
			req:     &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "07:59"},
			wantErr: ErrScheduleInPast,
		},
		{
			name:    "completed booking",
			booking: &domain.Booking{AppointmentID: "appt-1", UserID: 7, Status: domain.StatusCompleted, Version: 1},
			req:     &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "09:00"},
			wantErr: ErrBookingClosed,
		},
		{
			name:    "someone else's booking",
			booking: &domain.Booking{AppointmentID: "appt-1", UserID: 8, Status: domain.StatusPending, Version: 1},
			req:     &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "09:00"},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, personnel := &mockBookingRepo{}, &mockPersonnelRepo{}
			bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(tt.booking, nil)
			personnel.On("GetByID", ctx, int64(5)).Return(weekdayWorker(), nil)
			bookings.On("Update", ctx, "appt-1", int64(1), mock.MatchedBy(func(u domain.BookingUpdate) bool {
				return u.ScheduleDate != nil && *u.ScheduleTime == types.TimeString(tt.req.ScheduleTime) && u.Status == nil
			})).Return(int64(2), nil)

			uc := NewUseCase(bookings, personnel, passTx{}, nopLogger{})
			uc.timeProvider = mondayMorning
			resp, err := uc.Execute(ctx, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.ScheduleDate, resp.ScheduleDate.Format(domain.DateFormat))
			bookings.AssertNumberOfCalls(t, "Update", 1)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	bookings := &mockBookingRepo{}
	uc := NewUseCase(bookings, &mockPersonnelRepo{}, passTx{}, nopLogger{})
	uc.timeProvider = mondayMorning

	for _, req := range []*Request{
		{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "10/03/2025", ScheduleTime: "09:00"},
		{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "9am"},
		{UserID: 7, ScheduleDate: "2025-03-10", ScheduleTime: "09:00"},
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation)
	}
	bookings.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

func TestExecute_PastScheduleSkipsStore(t *testing.T) {
	bookings := &mockBookingRepo{}
	uc := NewUseCase(bookings, &mockPersonnelRepo{}, passTx{}, nopLogger{})
	uc.timeProvider = mondayMorning

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: "appt-1", UserID: 7, ScheduleDate: "2025-03-09", ScheduleTime: "23:00"})
	assert.ErrorIs(t, err, ErrScheduleInPast)
	assert.ErrorIs(t, err, domain.ErrDateInPast)
	bookings.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}
