package history

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
)

var historyColumns = []string{"id", "appointment_id", "old_status", "new_status", "changed_by", "reason", "changed_at"}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	changedAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO booking_status_history (appointment_id,old_status,new_status,changed_by,reason,changed_at)")).
		WithArgs("a-1", "Pending", "Confirmed", "system", "", changedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	entry, err := NewRepository(db).Create(context.Background(), &domain.StatusHistory{
		AppointmentID: "a-1",
		OldStatus:     domain.StatusPending,
		NewStatus:     domain.StatusConfirmed,
		ChangedBy:     domain.ChangedBySystem,
		ChangedAt:     changedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetLatestByAppointment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY changed_at DESC, id DESC LIMIT 1")).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow(int64(3), "a-1", "Pending", "declined", "system", "No slots left", time.Now()))

	entry, err := repo.GetLatestByAppointment(context.Background(), "a-1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "No slots left", entry.Reason)
	assert.Equal(t, domain.StatusDeclined, entry.NewStatus)

	mock.ExpectQuery("FROM booking_status_history").
		WithArgs("a-2").
		WillReturnRows(sqlmock.NewRows(historyColumns))

	entry, err = repo.GetLatestByAppointment(context.Background(), "a-2")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByAppointment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY changed_at ASC, id ASC")).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow(int64(1), "a-1", "", "Pending", "customer:7", "", time.Now()).
			AddRow(int64(2), "a-1", "Pending", "Confirmed", "system", "", time.Now()))

	entries, err := NewRepository(db).ListByAppointment(context.Background(), "a-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.BookingStatus(""), entries[0].OldStatus)
	assert.Equal(t, domain.StatusConfirmed, entries[1].NewStatus)
}
