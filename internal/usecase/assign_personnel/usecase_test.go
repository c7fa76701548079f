package assign_personnel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	personnelRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/personnel"
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

type mockShopRepo struct{ mock.Mock }

func (m *mockShopRepo) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Shop)
	return s, args.Error(1)
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mondayBooking(at string) *domain.Booking {
	return &domain.Booking{
		AppointmentID: "appt-1",
		ShopID:        3,
		ScheduleDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ScheduleTime:  types.TimeString(at),
		Status:        domain.StatusConfirmed,
		Version:       6,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	worker := &domain.Personnel{ID: 5, ShopID: 3, FullName: "Ana Cruz", DayAvailable: "Mon, Tue", TimeAvailable: "8:00 AM - 3:00 PM"}
	stranger := &domain.Personnel{ID: 6, ShopID: 4, DayAvailable: "Mon", TimeAvailable: "8:00 AM - 3:00 PM"}

	tests := []struct {
		name        string
		owner       int64
		personnelID int64
		booking     *domain.Booking
		wantErr     error
	}{
		{name: "assigns available worker", owner: 42, personnelID: 5, booking: mondayBooking("08:00")},
		{name: "not the shop owner", owner: 41, personnelID: 5, booking: mondayBooking("08:00"), wantErr: ErrForbidden},
		{name: "worker from another shop", owner: 42, personnelID: 6, booking: mondayBooking("08:00"), wantErr: ErrPersonnelNotFound},
		{name: "unknown worker", owner: 42, personnelID: 9, booking: mondayBooking("08:00"), wantErr: ErrPersonnelNotFound},
		{name: "booking before shift", owner: 42, personnelID: 5, booking: mondayBooking("07:59"), wantErr: ErrTimeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, shops, personnel := &mockBookingRepo{}, &mockShopRepo{}, &mockPersonnelRepo{}
			bookings.On("GetByIDForUpdate", ctx, "appt-1").Return(tt.booking, nil)
			shops.On("GetByID", ctx, int64(3)).Return(&domain.Shop{ID: 3, OwnerID: 42}, nil)
			personnel.On("GetByID", ctx, int64(5)).Return(worker, nil)
			personnel.On("GetByID", ctx, int64(6)).Return(stranger, nil)
			personnel.On("GetByID", ctx, int64(9)).Return(nil, personnelRepo.ErrPersonnelNotFound)
			bookings.On("Update", ctx, "appt-1", int64(6), mock.MatchedBy(func(u domain.BookingUpdate) bool {
				return u.PersonnelID != nil && *u.PersonnelID == tt.personnelID
			})).Return(int64(7), nil)

			uc := NewUseCase(bookings, shops, personnel, passTx{}, nopLogger{})
			resp, err := uc.Execute(ctx, &Request{AppointmentID: "appt-1", OwnerID: tt.owner, PersonnelID: tt.personnelID})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana Cruz", resp.FullName)
		})
	}
}
